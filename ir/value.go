package ir

import (
	"fmt"
	"slices"
	"strings"
)

// Resolver expands macro references. Implementations own the traversal of
// macro definitions, including the guard against circular definitions.
type Resolver interface {
	ExpandNodes(nodes []*Node) string
}

// Value is a field value: either a simple string, or a complex string
// made of an ordered sequence of nodes joined by concatenation.
//
// A sequence holding a single String node is never stored as complex; it
// collapses to a simple value, so simple values are interchangeable with
// plain strings everywhere.
//
// An inherited value stands in for the value of the same field on a
// cross-referenced parent record. It keeps the parent's representation for
// display and caches the parent's expansion at the time it was inherited.
type Value struct {
	// nil for simple values
	nodes []*Node
	// the simple text, or the cached expansion of an inherited value
	text      string
	resolver  Resolver
	inherited bool
}

// NewValue builds a value from nodes, expanding macros with r.
func NewValue(nodes []*Node, r Resolver) (*Value, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: empty node sequence", ErrInvalidArgument)
	}
	for i, n := range nodes {
		if n == nil {
			return nil, fmt.Errorf("%w: nil node at %d", ErrInvalidArgument, i)
		}
	}
	if len(nodes) == 1 && nodes[0].typ == StringType {
		return &Value{text: nodes[0].text, resolver: r}, nil
	}
	return &Value{nodes: slices.Clone(nodes), resolver: r}, nil
}

// MustValue is like NewValue but panics on error.
func MustValue(nodes []*Node, r Resolver) *Value {
	v, err := NewValue(nodes, r)
	if err != nil {
		panic(err)
	}
	return v
}

// PlainValue returns the simple value s.
func PlainValue(s string) *Value {
	return &Value{text: s}
}

// IsComplex reports whether v has more than one node or a non-literal node.
func (v *Value) IsComplex() bool {
	return v.nodes != nil
}

func (v *Value) IsInherited() bool {
	return v.inherited
}

func (v *Value) Resolver() Resolver {
	return v.resolver
}

// WithResolver returns a copy of v which expands macros with r.
func (v *Value) WithResolver(r Resolver) *Value {
	res := *v
	res.resolver = r
	return &res
}

// Nodes returns the node sequence of v. A simple value yields a single
// String node.
func (v *Value) Nodes() []*Node {
	if v.nodes == nil {
		return []*Node{StringNode(v.text)}
	}
	return slices.Clone(v.nodes)
}

// MacroNames returns the macro names referenced directly by v, in order
// of first appearance, as written.
func (v *Value) MacroNames() []string {
	var res []string
	seen := map[string]bool{}
	for _, n := range v.nodes {
		if n.typ != MacroType {
			continue
		}
		key := n.Name()
		if seen[key] {
			continue
		}
		seen[key] = true
		res = append(res, n.text)
	}
	return res
}

// Expanded returns v with every macro resolved and all nodes concatenated
// in order, with no separators. An inherited value returns the expansion
// cached when it was inherited.
func (v *Value) Expanded() string {
	if v.inherited || v.nodes == nil {
		return v.text
	}
	if v.resolver == nil {
		var sb strings.Builder
		for _, n := range v.nodes {
			sb.WriteString(n.text)
		}
		return sb.String()
	}
	return v.resolver.ExpandNodes(v.nodes)
}

// BibTeXString renders v unexpanded: literals in braces, numbers and macro
// names bare, nodes joined by " # ".
func (v *Value) BibTeXString() string {
	return v.bibtex(false)
}

func (v *Value) bibtex(quotes bool) string {
	if v.nodes == nil {
		return StringNode(v.text).BibTeX(quotes)
	}
	parts := make([]string, len(v.nodes))
	for i, n := range v.nodes {
		parts[i] = n.BibTeX(quotes)
	}
	return strings.Join(parts, " # ")
}

// CopyUninherited returns a first class copy of v which no longer defers
// to a cross-referenced parent. The representation is kept.
func (v *Value) CopyUninherited() *Value {
	if v.nodes == nil {
		return &Value{text: v.text, resolver: v.resolver}
	}
	return &Value{nodes: slices.Clone(v.nodes), resolver: v.resolver}
}

// AsInherited returns a placeholder for v as seen from a record which
// inherits it through a cross-reference.
func (v *Value) AsInherited() *Value {
	if v.inherited {
		res := *v
		return &res
	}
	return &Value{
		nodes:     v.nodes,
		text:      v.Expanded(),
		resolver:  v.resolver,
		inherited: true,
	}
}

// String returns the expansion of v.
func (v *Value) String() string {
	return v.Expanded()
}
