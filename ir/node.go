package ir

import (
	"fmt"
	"strings"

	"github.com/signadot/bibstr/token"
)

// Node is one constituent of a field value: a literal string, a bare
// number or a macro reference. Nodes are immutable.
type Node struct {
	typ  Type
	text string
}

// StringNode returns a literal node. The text is stored as given.
func StringNode(text string) *Node {
	return &Node{typ: StringType, text: text}
}

// NumberNode returns a bare number node, keeping the original digits.
func NumberNode(text string) *Node {
	return &Node{typ: NumberType, text: text}
}

// MacroNode returns a reference to the macro name.
func MacroNode(name string) (*Node, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: empty macro name", ErrInvalidArgument)
	}
	return &Node{typ: MacroType, text: name}, nil
}

// MustMacroNode is like MacroNode but panics on an empty name.
func MustMacroNode(name string) *Node {
	n, err := MacroNode(name)
	if err != nil {
		panic(err)
	}
	return n
}

// NormalizeName case-folds a macro name. Macro tables are keyed by the
// normalized name.
func NormalizeName(name string) string {
	return strings.ToLower(name)
}

func (n *Node) Type() Type {
	return n.typ
}

// Text returns the literal text, the digits of a number or the macro name
// as written.
func (n *Node) Text() string {
	return n.text
}

// Name returns the normalized macro name, or "" for literal nodes.
func (n *Node) Name() string {
	if n.typ != MacroType {
		return ""
	}
	return NormalizeName(n.text)
}

func (n *Node) Equal(o *Node) bool {
	if n == o {
		return true
	}
	if n == nil || o == nil {
		return false
	}
	if n.typ != o.typ {
		return false
	}
	if n.typ == MacroType {
		return NormalizeName(n.text) == NormalizeName(o.text)
	}
	return n.text == o.text
}

// BibTeX renders the node as it appears in a field value: literals
// delimited, numbers and macro names bare.
func (n *Node) BibTeX(quotes bool) string {
	if n.typ == StringType {
		return token.Delimit(n.text, quotes)
	}
	return n.text
}

func (n *Node) String() string {
	return fmt.Sprintf("%s(%q)", n.typ, n.text)
}
