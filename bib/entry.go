package bib

import (
	"slices"
	"strings"

	"github.com/signadot/bibstr/ir"
)

// CrossRefField names the field holding the key of an entry's parent.
const CrossRefField = "crossref"

type field struct {
	name  string
	value *ir.Value
}

// Entry is a bibliography record. Field names are case-insensitive and
// keep the order in which they were first set.
type Entry struct {
	// Type is the lower-cased entry type, such as "article".
	Type   string
	Key    string
	fields []field
}

func NewEntry(typ, key string) *Entry {
	return &Entry{Type: strings.ToLower(typ), Key: key}
}

func (e *Entry) index(name string) int {
	return slices.IndexFunc(e.fields, func(f field) bool {
		return strings.EqualFold(f.name, name)
	})
}

// Field returns the entry's own value of name, or nil.
func (e *Entry) Field(name string) *ir.Value {
	i := e.index(name)
	if i == -1 {
		return nil
	}
	return e.fields[i].value
}

// SetField sets name to v, keeping the position and spelling of an
// existing field. A nil v removes the field.
func (e *Entry) SetField(name string, v *ir.Value) {
	i := e.index(name)
	switch {
	case v == nil && i != -1:
		e.fields = slices.Delete(e.fields, i, i+1)
	case v == nil:
	case i == -1:
		e.fields = append(e.fields, field{name: name, value: v})
	default:
		e.fields[i].value = v
	}
}

// FieldNames returns the names of the entry's own fields, in order, as
// written.
func (e *Entry) FieldNames() []string {
	res := make([]string, len(e.fields))
	for i := range e.fields {
		res[i] = e.fields[i].name
	}
	return res
}

// CrossRef returns the key of the entry's parent, or "".
func (e *Entry) CrossRef() string {
	v := e.Field(CrossRefField)
	if v == nil {
		return ""
	}
	return strings.TrimSpace(v.Expanded())
}
