package encode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/bibstr/bib"
	"github.com/signadot/bibstr/ir"
	"github.com/signadot/bibstr/macro"
	"github.com/signadot/bibstr/parse"
)

func TestEncodeValue(t *testing.T) {
	r := macro.New(nil, nil)
	tests := []struct {
		in     string
		want   string
		quoted string
	}{
		{`{Foo} # Bar # "1234"`, `{Foo} # Bar # {1234}`, `"Foo" # Bar # "1234"`},
		{`"plain"`, `{plain}`, `"plain"`},
		{`2024`, `2024`, `2024`},
		{`{say "hi"}`, `{say "hi"}`, `{say "hi"}`},
		{`{a {"} b}`, `{a {"} b}`, `"a {"} b"`},
		{`jan # { 1}`, `jan # { 1}`, `jan # " 1"`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v := parse.MustValue(tt.in, r)
			if got := MustString(v); got != tt.want {
				t.Errorf("got %s want %s", got, tt.want)
			}
			if got := MustString(v, EncodeQuotes(true)); got != tt.quoted {
				t.Errorf("quoted: got %s want %s", got, tt.quoted)
			}
		})
	}
}

func TestEncodeUnbalanced(t *testing.T) {
	v := ir.PlainValue("a } b")
	if got := MustString(v); got != `"a } b"` {
		t.Errorf("got %s", got)
	}
	buf := bytes.NewBuffer(nil)
	if err := Encode(v, buf); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("Encode ends with a newline")
	}
}

func TestEncodeMacros(t *testing.T) {
	r := macro.New(nil, nil)
	for name, text := range map[string]string{
		"zeta": `{Z}`,
		"Acm":  `{ACM} # { Press}`,
		"beta": `zeta # 2`,
	} {
		if err := r.SetMacro(name, parse.MustValue(text, r)); err != nil {
			t.Fatal(err)
		}
	}
	buf := bytes.NewBuffer(nil)
	if err := EncodeMacros(r.Definitions(), buf); err != nil {
		t.Fatal(err)
	}
	want := `@string{Acm = {ACM} # { Press}}
@string{beta = zeta # 2}
@string{zeta = {Z}}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

const entryBib = `
@preamble{"x"}
@string{pub = {Springer}}
@book{parent, publisher = pub, year = 2001}
@InCollection{child,
  title = {Chapter},
  crossref = {parent},
}
@misc{bare}
`

func TestEncodeEntry(t *testing.T) {
	db, err := bib.Load([]byte(entryBib), nil)
	if err != nil {
		t.Fatal(err)
	}
	child := db.Entry("child")

	buf := bytes.NewBuffer(nil)
	if err := EncodeEntry(child, buf); err != nil {
		t.Fatal(err)
	}
	want := `@incollection{child,
  title = {Chapter},
  crossref = {parent}
}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	buf.Reset()
	if err := EncodeEntry(child, buf, Inherited(db), Indent(4)); err != nil {
		t.Fatal(err)
	}
	want = `@incollection{child,
    title = {Chapter},
    crossref = {parent},
    publisher = pub,
    year = 2001
}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("inherited (-want +got):\n%s", diff)
	}
}

func TestEncodeDatabase(t *testing.T) {
	db, err := bib.Load([]byte(entryBib), nil)
	if err != nil {
		t.Fatal(err)
	}
	buf := bytes.NewBuffer(nil)
	if err := EncodeDatabase(db, buf); err != nil {
		t.Fatal(err)
	}
	want := `@preamble{{x}}

@string{pub = {Springer}}

@book{parent,
  publisher = pub,
  year = 2001
}

@incollection{child,
  title = {Chapter},
  crossref = {parent}
}

@misc{bare}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	again, err := bib.Load(buf.Bytes(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(again.Entries) != len(db.Entries) {
		t.Errorf("got %d entries", len(again.Entries))
	}
}

func TestEncodeColors(t *testing.T) {
	c := &Colors{
		Default: colorDefault,
		Map: map[Colorable]func(string, ...any) string{
			{Type: ir.MacroType, Attr: ValueColor}: func(s string, _ ...any) string { return "<" + s + ">" },
			{Type: ir.StringType, Attr: SepColor}:  func(s string, _ ...any) string { return "|" },
			{Type: ir.StringType, Attr: InheritedColor}: func(s string, _ ...any) string {
				return "~" + s
			},
		},
	}
	v := parse.MustValue(`{a} # b`, nil)
	if got := MustString(v, EncodeColors(c)); got != "{a}|<b>" {
		t.Errorf("got %s", got)
	}
	if got := MustString(v.AsInherited(), EncodeColors(c)); got != "~{a}|b" {
		t.Errorf("inherited: got %s", got)
	}
	if got := MustString(v, EncodeColors(c), EncodeColors(nil)); got != "{a} # b" {
		t.Errorf("no colors: got %s", got)
	}
	if NewColors().Get(ir.NumberType, KeyColor) == nil {
		t.Error("missing colors fall back to the default")
	}
}
