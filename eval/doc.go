// Package eval filters macro definitions with expr-lang expressions.
//
//	f, err := eval.Compile(`complex && dependsOn("acm")`)
//	defs, err := f.Select(resolver, false)
//
// See NewEnv for the names an expression can use.
package eval
