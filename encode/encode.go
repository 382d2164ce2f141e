package encode

import (
	"io"
	"slices"
	"strings"

	"github.com/signadot/bibstr/bib"
	"github.com/signadot/bibstr/ir"
)

type EncState struct {
	quotes bool
	indent int
	db     *bib.Database

	Color func(ir.Type, ColorAttr, string) string
}

func newEncState(opts []EncodeOption) *EncState {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

// Encode writes the BibTeX form of v followed by a newline.
func Encode(v *ir.Value, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	return writeString(w, es.value(v)+"\n")
}

func (es *EncState) value(v *ir.Value) string {
	nodes := v.Nodes()
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		s := n.BibTeX(es.quotes)
		if v.IsInherited() {
			parts[i] = es.color(n.Type(), InheritedColor, s)
			continue
		}
		parts[i] = es.color(n.Type(), ValueColor, s)
	}
	return strings.Join(parts, es.color(ir.StringType, SepColor, " # "))
}

// EncodeMacros writes one @string block per definition, sorted by name
// ignoring case.
func EncodeMacros(defs map[string]*ir.Value, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if c := strings.Compare(ir.NormalizeName(a), ir.NormalizeName(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	for _, name := range names {
		if err := writeString(w, es.macro(name, defs[name])+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func (es *EncState) macro(name string, v *ir.Value) string {
	return es.color(ir.StringType, TagColor, "@string") +
		es.color(ir.StringType, SepColor, "{") +
		es.color(ir.MacroType, FieldColor, name) +
		es.color(ir.StringType, SepColor, " = ") +
		es.value(v) +
		es.color(ir.StringType, SepColor, "}")
}

// EncodeEntry writes e as an entry block. With Inherited, fields e inherits
// through crossrefs are written after its own.
func EncodeEntry(e *bib.Entry, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	return writeString(w, es.entry(e))
}

func (es *EncState) entry(e *bib.Entry) string {
	var sb strings.Builder
	sb.WriteString(es.color(ir.StringType, TagColor, "@"+e.Type))
	sb.WriteString(es.color(ir.StringType, SepColor, "{"))
	sb.WriteString(es.color(ir.MacroType, KeyColor, e.Key))
	names := e.FieldNames()
	if es.db != nil {
		names = es.db.FieldNames(e)
	}
	pad := strings.Repeat(" ", es.indent)
	for _, name := range names {
		v := e.Field(name)
		if v == nil && es.db != nil {
			v = es.db.Resolve(e, name)
		}
		if v == nil {
			continue
		}
		sb.WriteString(es.color(ir.StringType, SepColor, ","))
		sb.WriteString("\n" + pad)
		sb.WriteString(es.color(ir.StringType, FieldColor, name))
		sb.WriteString(es.color(ir.StringType, SepColor, " = "))
		sb.WriteString(es.value(v))
	}
	if len(names) != 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(es.color(ir.StringType, SepColor, "}"))
	sb.WriteString("\n")
	return sb.String()
}

// EncodeDatabase writes the preamble, the macros defined by db's own
// table and the entries of db, separated by blank lines.
func EncodeDatabase(db *bib.Database, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	var sections []string
	if len(db.Preamble) != 0 {
		var sb strings.Builder
		for _, v := range db.Preamble {
			sb.WriteString(es.color(ir.StringType, TagColor, "@preamble"))
			sb.WriteString(es.color(ir.StringType, SepColor, "{"))
			sb.WriteString(es.value(v))
			sb.WriteString(es.color(ir.StringType, SepColor, "}"))
			sb.WriteString("\n")
		}
		sections = append(sections, sb.String())
	}
	if defs := db.Macros.Definitions(); len(defs) != 0 {
		var sb strings.Builder
		if err := EncodeMacros(defs, &sb, opts...); err != nil {
			return err
		}
		sections = append(sections, sb.String())
	}
	for _, e := range db.Entries {
		sections = append(sections, es.entry(e))
	}
	return writeString(w, strings.Join(sections, "\n"))
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
