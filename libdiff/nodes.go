package libdiff

import (
	"fmt"

	"github.com/signadot/bibstr/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Nodes diffs the node sequences of two values. Each distinct node is
// mapped to a rune and the rune sequences are diffed, so nodes match only
// as a whole, macro names ignoring case.
func Nodes(from, to *ir.Value) []Edit {
	m := map[string]rune{}
	fromNodes, toNodes := from.Nodes(), to.Nodes()
	fromRunes := mapNodes(m, fromNodes)
	toRunes := mapNodes(m, toNodes)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)

	res := make([]Edit, 0, len(diffs))
	fi, ti := 0, 0
	for i := range diffs {
		diff := &diffs[i]
		n := len([]rune(diff.Text))
		var e Edit
		switch diff.Type {
		case diffpatch.DiffDelete:
			e = Edit{Op: Delete, Nodes: fromNodes[fi : fi+n]}
			fi += n
		case diffpatch.DiffInsert:
			e = Edit{Op: Insert, Nodes: toNodes[ti : ti+n]}
			ti += n
		case diffpatch.DiffEqual:
			e = Edit{Op: Equal, Nodes: fromNodes[fi : fi+n]}
			fi += n
			ti += n
		}
		e.Text = nodesText(e.Nodes)
		res = append(res, e)
	}
	return res
}

func mapNodes(m map[string]rune, nodes []*ir.Node) []rune {
	rs := make([]rune, len(nodes))
	for i, n := range nodes {
		sum := summaryStr(n)
		r, ok := m[sum]
		if !ok {
			r = rune(len(m))
			m[sum] = r
		}
		rs[i] = r
	}
	return rs
}

func summaryStr(n *ir.Node) string {
	if n.Type() == ir.MacroType {
		return n.Type().String() + "-" + n.Name()
	}
	return n.Type().String() + "-" + n.Text()
}

// PatchNodes applies node edits to the nodes of v. The nodes edits expect
// to keep or delete must be present in order.
func PatchNodes(v *ir.Value, edits []Edit) (*ir.Value, error) {
	nodes := v.Nodes()
	var res []*ir.Node
	fi := 0
	for _, e := range edits {
		if e.Op == Insert {
			res = append(res, e.Nodes...)
			continue
		}
		for _, n := range e.Nodes {
			if fi >= len(nodes) || !nodes[fi].Equal(n) {
				return nil, fmt.Errorf("%w: expected %s at node %d", ErrPatch, n, fi)
			}
			if e.Op == Equal {
				res = append(res, nodes[fi])
			}
			fi++
		}
	}
	if fi != len(nodes) {
		return nil, fmt.Errorf("%w: %d nodes left over", ErrPatch, len(nodes)-fi)
	}
	if len(res) == 0 {
		return ir.PlainValue(""), nil
	}
	return ir.NewValue(res, v.Resolver())
}
