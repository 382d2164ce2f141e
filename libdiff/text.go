package libdiff

import (
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Expansion diffs two expansions character by character. Multi-line text
// is diffed line first.
func Expansion(from, to string) []Edit {
	dmp := diffpatch.New()
	doMultiLine := strings.Contains(from, "\n") && strings.Contains(to, "\n")
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(from, to, doMultiLine))
	res := make([]Edit, 0, len(diffs))
	for i := range diffs {
		diff := &diffs[i]
		e := Edit{Text: diff.Text}
		switch diff.Type {
		case diffpatch.DiffInsert:
			e.Op = Insert
		case diffpatch.DiffDelete:
			e.Op = Delete
		}
		res = append(res, e)
	}
	return res
}

// PatchText applies text edits to s.
func PatchText(s string, edits []Edit) (string, error) {
	var sb strings.Builder
	i := 0
	for _, e := range edits {
		if e.Op == Insert {
			sb.WriteString(e.Text)
			continue
		}
		if !strings.HasPrefix(s[i:], e.Text) {
			return "", fmt.Errorf("%w, unexpected text %q, expected %q", ErrPatch, s[i:], e.Text)
		}
		if e.Op == Equal {
			sb.WriteString(e.Text)
		}
		i += len(e.Text)
	}
	if i != len(s) {
		return "", fmt.Errorf("%w, text left over: %q", ErrPatch, s[i:])
	}
	return sb.String(), nil
}
