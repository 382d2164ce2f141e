package libdiff

import (
	"errors"
	"testing"

	"github.com/signadot/bibstr/ir"
	"github.com/signadot/bibstr/parse"
)

func TestNodes(t *testing.T) {
	from := parse.MustValue(`{a} # b # 2`, nil)
	to := parse.MustValue(`{a} # B # {c}`, nil)
	edits := Nodes(from, to)
	if got, want := Format(edits, false), "{a} # b # [-2-] # {+{c}+}"; got != want {
		t.Errorf("got %s want %s", got, want)
	}
	if Same(edits) {
		t.Error("values differ")
	}
	if !Same(Nodes(from, parse.MustValue(`{a} # B # 2`, nil))) {
		t.Error("macro names match ignoring case")
	}
}

func TestNodesPatch(t *testing.T) {
	tests := []struct {
		from, to string
	}{
		{`{a} # b # 2`, `{a} # B # {c}`},
		{`{a}`, `x # {a} # y`},
		{`x # {a} # y`, `{a}`},
		{`{a}`, `{b}`},
		{`jan # { 1}`, `feb # { 1} # 2000`},
	}
	for _, tt := range tests {
		t.Run(tt.from+" to "+tt.to, func(t *testing.T) {
			from := parse.MustValue(tt.from, nil)
			to := parse.MustValue(tt.to, nil)
			edits := Nodes(from, to)
			got, err := PatchNodes(from, edits)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(to) {
				t.Errorf("patched: got %s want %s", got.BibTeXString(), to.BibTeXString())
			}
			back, err := PatchNodes(to, Reverse(edits))
			if err != nil {
				t.Fatal(err)
			}
			if !back.Equal(from) {
				t.Errorf("reversed: got %s want %s", back.BibTeXString(), from.BibTeXString())
			}
		})
	}
}

func TestPatchNodesMismatch(t *testing.T) {
	edits := Nodes(parse.MustValue(`{a} # b`, nil), parse.MustValue(`{a}`, nil))
	if _, err := PatchNodes(parse.MustValue(`{x} # b`, nil), edits); !errors.Is(err, ErrPatch) {
		t.Errorf("got %v", err)
	}
	if _, err := PatchNodes(parse.MustValue(`{a} # b # c`, nil), edits); !errors.Is(err, ErrPatch) {
		t.Errorf("got %v", err)
	}
	got, err := PatchNodes(ir.PlainValue("a"), []Edit{{Op: Delete, Nodes: []*ir.Node{ir.StringNode("a")}}})
	if err != nil {
		t.Fatal(err)
	}
	if got.IsComplex() || got.Expanded() != "" {
		t.Errorf("got %s", got)
	}
}

func TestExpansion(t *testing.T) {
	edits := Expansion("FooBaz1234", "FooBar1234")
	if got, want := Format(edits, false), "FooBa[-z-]{+r+}1234"; got != want {
		t.Errorf("got %s want %s", got, want)
	}
	if !Same(Expansion("same", "same")) {
		t.Error("equal text")
	}
	for _, tt := range [][2]string{
		{"FooBaz1234", "FooBar1234"},
		{"", "new"},
		{"old", ""},
		{"line one\nline two\n", "line one\nline 2\nline three\n"},
	} {
		edits := Expansion(tt[0], tt[1])
		got, err := PatchText(tt[0], edits)
		if err != nil || got != tt[1] {
			t.Errorf("patch %q: got %q, %v", tt[0], got, err)
		}
		back, err := PatchText(tt[1], Reverse(edits))
		if err != nil || back != tt[0] {
			t.Errorf("reverse patch %q: got %q, %v", tt[1], back, err)
		}
	}
	if _, err := PatchText("other", edits); !errors.Is(err, ErrPatch) {
		t.Errorf("got %v", err)
	}
}

func TestFormatColors(t *testing.T) {
	edits := Expansion("ab", "ac")
	plain := Format(edits, false)
	colored := Format(edits, true)
	if plain == colored {
		t.Errorf("colors have no effect: %q", colored)
	}
}
