package eval

import (
	"errors"
	"fmt"
	"os"

	"github.com/signadot/bibstr/debug"
	"github.com/signadot/bibstr/ir"
	"github.com/signadot/bibstr/macro"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

var ErrFilter = errors.New("bad filter")

// Env is the environment a filter expression runs in.
type Env map[string]any

// NewEnv returns the environment describing the macro name defined as v
// in r.
//
//	name      the macro name as written
//	value     the definition in BibTeX form
//	expanded  the expansion of the definition
//	complex   whether the definition is complex
//	macros    names the definition refers to directly
//	dependsOn(m)  whether the definition depends on macro m
//	expand(m)     the expansion of macro m, or ""
func NewEnv(r *macro.Resolver, name string, v *ir.Value) Env {
	return Env{
		"name":     name,
		"value":    v.BibTeXString(),
		"expanded": v.Expanded(),
		"complex":  v.IsComplex(),
		"macros":   v.MacroNames(),
		"dependsOn": func(m string) bool {
			return r.DependsOnMacro(v, m)
		},
		"expand": func(m string) string {
			return r.Expand(m)
		},
	}
}

func exprOpts() []expr.Option {
	sample := NewEnv(macro.New(nil, nil), "", ir.PlainValue(""))
	return []expr.Option{
		expr.Env(map[string]any(sample)),
		expr.AsBool(),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}

// Filter is a compiled boolean expression over macro definitions.
type Filter struct {
	src string
	prg *vm.Program
}

func Compile(src string) (*Filter, error) {
	prg, err := expr.Compile(src, exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrFilter, src, err)
	}
	return &Filter{src: src, prg: prg}, nil
}

func (f *Filter) String() string {
	return f.src
}

// Match reports whether the definition of name as v in r satisfies f. A
// nil filter matches everything.
func (f *Filter) Match(r *macro.Resolver, name string, v *ir.Value) (bool, error) {
	if f == nil {
		return true, nil
	}
	res, err := expr.Run(f.prg, map[string]any(NewEnv(r, name, v)))
	if err != nil {
		return false, fmt.Errorf("%w %q on %s: %w", ErrFilter, f.src, name, err)
	}
	ok, _ := res.(bool)
	if debug.Macros() {
		debug.Logf("filter %q on %s: %t\n", f.src, name, ok)
	}
	return ok, nil
}

// Select returns the definitions of r which match f. With all, definitions
// inherited from parent resolvers are considered too.
func (f *Filter) Select(r *macro.Resolver, all bool) (map[string]*ir.Value, error) {
	defs := r.Definitions()
	if all {
		defs = r.AllMacroDefinitions()
	}
	res := make(map[string]*ir.Value, len(defs))
	for name, v := range defs {
		ok, err := f.Match(r, name, v)
		if err != nil {
			return nil, err
		}
		if ok {
			res[name] = v
		}
	}
	return res, nil
}
