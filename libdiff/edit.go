package libdiff

import (
	"errors"
	"strings"

	"github.com/signadot/bibstr/ir"
)

var ErrPatch = errors.New("cannot patch")

type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

func (o Op) String() string {
	switch o {
	case Equal:
		return "="
	case Insert:
		return "+"
	case Delete:
		return "-"
	}
	return "?"
}

// Edit is one run of a diff. Node diffs fill Nodes; text diffs fill Text
// only.
type Edit struct {
	Op    Op
	Nodes []*ir.Node
	Text  string
}

func (e Edit) String() string {
	return e.Op.String() + e.Text
}

func nodesText(nodes []*ir.Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.BibTeX(false)
	}
	return strings.Join(parts, " # ")
}

// Same reports whether edits contain no insertion or deletion.
func Same(edits []Edit) bool {
	for i := range edits {
		if edits[i].Op != Equal {
			return false
		}
	}
	return true
}

// Reverse returns the diff from the target back to the source.
func Reverse(edits []Edit) []Edit {
	res := make([]Edit, len(edits))
	for i, e := range edits {
		switch e.Op {
		case Insert:
			e.Op = Delete
		case Delete:
			e.Op = Insert
		}
		res[i] = e
	}
	return res
}
