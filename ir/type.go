package ir

import "fmt"

// Type is the variant of a Node.
type Type int

const (
	StringType Type = iota
	NumberType
	MacroType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		StringType: "String",
		NumberType: "Number",
		MacroType:  "Macro",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"String": StringType,
		"Number": NumberType,
		"Macro":  MacroType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		StringType,
		NumberType,
		MacroType,
	}
}

// IsLiteral reports whether nodes of type t expand to their own text.
func (t Type) IsLiteral() bool {
	return t != MacroType
}
