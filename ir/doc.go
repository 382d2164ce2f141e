// Package ir provides the representation of BibTeX field values.
//
// # Nodes
//
// A [Node] is one piece of a field value. It is a closed tagged union of
// three variants:
//
//   - StringType: a literal run of text, written `{...}` or `"..."`
//   - NumberType: a bare number such as `1999`
//   - MacroType: a bare macro name such as `jan`, resolved at expansion time
//
// Nodes are immutable and never refer to other nodes.
//
// # Values
//
// A [Value] is a whole field value: the `#` concatenation of one or more
// nodes. A value made of a single literal is "simple" and behaves exactly
// like a plain string; anything else is "complex".
//
//	v, err := ir.NewValue([]*ir.Node{
//	    ir.StringNode("Proc. of "),
//	    ir.MustMacroNode("conf"),
//	}, resolver)
//	v.Expanded()     // "Proc. of " + the expansion of conf
//	v.BibTeXString() // {Proc. of } # conf
//
// Equality and ordering are defined on the representation, not on the
// expansion: the complex value `{a} # {b}` is not equal to the simple value
// `ab`.
//
// Expansion consults a [Resolver], which is not owned by the value. The
// result follows the resolver's definitions at call time.
package ir
