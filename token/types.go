package token

import (
	"fmt"
)

type TokenType int

const (
	TBraced TokenType = iota
	TQuoted
	TNumber
	TIdent
	TConcat
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TBraced: "TBraced",
		TQuoted: "TQuoted",
		TNumber: "TNumber",
		TIdent:  "TIdent",
		TConcat: "TConcat",
	}[t]
}

type Token struct {
	Type  TokenType
	Pos   *Pos
	Bytes []byte
}

// Info describes the token type and position.
func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}

// End returns the offset just past the token.
func (t *Token) End() int {
	return t.Pos.I + len(t.Bytes)
}

// String returns the token text with any enclosing delimiters removed.
func (t *Token) String() string {
	switch t.Type {
	case TBraced, TQuoted:
		return string(t.Bytes[1 : len(t.Bytes)-1])
	default:
		return string(t.Bytes)
	}
}
