package ir

import (
	"cmp"
	"strings"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	rankA := rank(a.typ)
	rankB := rank(b.typ)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}
	if a.typ == MacroType {
		return strings.Compare(NormalizeName(a.text), NormalizeName(b.text))
	}
	return strings.Compare(a.text, b.text)
}

// rank returns the sorting rank of a type.
// Order: String < Number < Macro
func rank(t Type) int {
	switch t {
	case StringType:
		return 0
	case NumberType:
		return 1
	case MacroType:
		return 2
	}
	return 100
}

func compareNodes(a, b []*Node) int {
	lenA := len(a)
	lenB := len(b)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}
