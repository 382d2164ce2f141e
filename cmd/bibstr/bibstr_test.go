package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/scott-cotton/cli"
)

const testConfig = `
macros:
  acm: "{ACM}"
files:
  - strings.bib
color: false
`

func testMain(t *testing.T) *MainConfig {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bibstr.yaml"), []byte(testConfig), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "strings.bib"), []byte(`@string{tods = acm # { TODS}}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := &MainConfig{
		ConfigFile: filepath.Join(dir, "bibstr.yaml"),
		Main:       &cli.Command{},
	}
	for _, m := range []string{"jacm={J. } # acm", "tods={Overridden}"} {
		if _, err := cfg.macroOpt(nil, m); err != nil {
			t.Fatal(err)
		}
	}
	if err := cfg.setup(); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestSetup(t *testing.T) {
	cfg := testMain(t)
	for name, want := range map[string]string{
		"acm":  "ACM",
		"jacm": "J. ACM",
		"tods": "Overridden",
		"feb":  "February",
	} {
		if got := cfg.db.Macros.Expand(name); got != want {
			t.Errorf("%s: got %q want %q", name, got, want)
		}
	}
	if cfg.scope() != "default" {
		t.Errorf("got scope %q", cfg.scope())
	}
	if cfg.useColor(os.Stdout) {
		t.Error("configuration turns color off")
	}
}

func TestMacroOpt(t *testing.T) {
	cfg := &MainConfig{}
	for _, bad := range []string{"noequals", "=x", "2nd x=y"} {
		if _, err := cfg.macroOpt(nil, bad); !errors.Is(err, cli.ErrUsage) {
			t.Errorf("%q: got %v", bad, err)
		}
	}
	if _, err := cfg.macroOpt(nil, " a = {b=c}"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([][2]string{{"a", " {b=c}"}}, cfg.MacroDefs); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestInputs(t *testing.T) {
	got, err := inputs(strings.NewReader("acm\n\n  {x} # y  \n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"acm", "{x} # y"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	got, _ = inputs(strings.NewReader("ignored"), []string{"a"})
	if diff := cmp.Diff([]string{"a"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDiffValues(t *testing.T) {
	mainCfg := testMain(t)
	tests := []struct {
		a, b    string
		reverse bool
		want    string
	}{
		{a: `jacm`, b: `jacm`},
		{
			a:    `{J. } # acm`,
			b:    `{J. } # ieee`,
			want: "nodes: {J. } # [-acm-] # {+ieee+}\ntext:  J. [-ACM-]{+ieee+}\n",
		},
		{
			a:       `{x}`,
			b:       `{x} # acm`,
			reverse: true,
			want:    "nodes: {x} # [-acm-]\ntext:  x[-ACM-]\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.a+" "+tt.b, func(t *testing.T) {
			cfg := &DiffConfig{MainConfig: mainCfg, Reverse: tt.reverse}
			a, err := cfg.value(tt.a)
			if err != nil {
				t.Fatal(err)
			}
			b, err := cfg.value(tt.b)
			if err != nil {
				t.Fatal(err)
			}
			var buf bytes.Buffer
			differs, err := diffValues(cfg, &buf, a, b)
			if err != nil {
				t.Fatal(err)
			}
			if differs != (tt.want != "") {
				t.Errorf("differs: got %t", differs)
			}
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestSynopses(t *testing.T) {
	if len(synopses) != 11 {
		t.Errorf("got %d synopses", len(synopses))
	}
	for name, syn := range synopses {
		if !strings.HasPrefix(syn, name+" ") {
			t.Errorf("%s: synopsis %q says nothing beyond the name", name, syn)
		}
	}
}
