package eval

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/bibstr/macro"
	"github.com/signadot/bibstr/parse"
)

func testResolver(t *testing.T) *macro.Resolver {
	t.Helper()
	r := macro.New(nil, macro.Standard(nil))
	for _, def := range [][2]string{
		{"acm", `{ACM}`},
		{"jacm", `{J. } # acm`},
		{"tods", `acm # { Trans. Database Syst.}`},
		{"when", `jan # { } # 2001`},
		{"n", `12`},
	} {
		if err := r.SetMacro(def[0], parse.MustValue(def[1], r)); err != nil {
			t.Fatal(err)
		}
	}
	return r
}

func selected(t *testing.T, src string, all bool) []string {
	t.Helper()
	f, err := Compile(src)
	if err != nil {
		t.Fatal(err)
	}
	defs, err := f.Select(testResolver(t), all)
	if err != nil {
		t.Fatal(err)
	}
	var res []string
	for name := range defs {
		res = append(res, name)
	}
	slices.Sort(res)
	return res
}

func TestFilter(t *testing.T) {
	tests := []struct {
		src  string
		all  bool
		want []string
	}{
		{src: `true`, want: []string{"acm", "jacm", "n", "tods", "when"}},
		{src: `complex`, want: []string{"jacm", "n", "tods", "when"}},
		{src: `not complex`, want: []string{"acm"}},
		{src: `dependsOn("ACM")`, want: []string{"jacm", "tods"}},
		{src: `"jan" in macros`, want: []string{"when"}},
		{src: `expanded contains "Trans"`, want: []string{"tods"}},
		{src: `value == "12"`, want: []string{"n"}},
		{src: `name startsWith "j"`, want: []string{"jacm", "jan", "jul", "jun"}, all: true},
		{src: `expand("acm") == "ACM" && expanded endsWith "2001"`, want: []string{"when"}},
		{src: `getenv("BIBSTR_TEST_UNSET_VAR") == "" && name == "n"`, want: []string{"n"}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, selected(t, tt.src, tt.all)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterErrors(t *testing.T) {
	for _, src := range []string{`name +`, `name`, `nope == 1`, `dependsOn(1)`} {
		if _, err := Compile(src); !errors.Is(err, ErrFilter) {
			t.Errorf("%s: got %v", src, err)
		}
	}
}

func TestNilFilter(t *testing.T) {
	var f *Filter
	defs, err := f.Select(testResolver(t), false)
	if err != nil {
		t.Fatal(err)
	}
	if len(defs) != 5 {
		t.Errorf("got %d", len(defs))
	}
}
