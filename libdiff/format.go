package libdiff

import (
	"strings"

	"github.com/fatih/color"
)

// Format renders edits in word-diff style: deletions as [-text-] and
// insertions as {+text+}. Node edits are joined by " # ". With colors,
// deletions are red and insertions green regardless of the terminal.
func Format(edits []Edit, colors bool) string {
	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)
	if colors {
		del.EnableColor()
		ins.EnableColor()
	} else {
		del.DisableColor()
		ins.DisableColor()
	}
	var sb strings.Builder
	for i, e := range edits {
		if i > 0 && e.Nodes != nil {
			sb.WriteString(" # ")
		}
		switch e.Op {
		case Delete:
			sb.WriteString(del.Sprint("[-" + e.Text + "-]"))
		case Insert:
			sb.WriteString(ins.Sprint("{+" + e.Text + "+}"))
		default:
			sb.WriteString(e.Text)
		}
	}
	return sb.String()
}
