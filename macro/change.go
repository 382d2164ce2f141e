package macro

import (
	"fmt"

	"github.com/signadot/bibstr/ir"
)

type ChangeKind int

const (
	Added ChangeKind = iota
	Removed
	Redefined
	Renamed
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Redefined:
		return "redefined"
	case Renamed:
		return "renamed"
	}
	return "<unknown change>"
}

// Change describes one edit of a resolver.
type Change struct {
	Kind ChangeKind
	// Name is the macro name after the edit; for Removed, the removed name.
	Name string
	// OldName is the previous name of a Renamed macro, or the spelling a
	// Redefined macro had before the edit.
	OldName string
	// Old is the value before the edit, nil for Added.
	Old *ir.Value
	// New is the value after the edit, nil for Removed.
	New *ir.Value
}

func (c Change) String() string {
	switch c.Kind {
	case Added:
		return fmt.Sprintf("%s %s = %s", c.Kind, c.Name, c.New.BibTeXString())
	case Removed:
		return fmt.Sprintf("%s %s (was %s)", c.Kind, c.Name, c.Old.BibTeXString())
	case Redefined:
		return fmt.Sprintf("%s %s = %s (was %s)", c.Kind, c.Name, c.New.BibTeXString(), c.Old.BibTeXString())
	case Renamed:
		return fmt.Sprintf("%s %s to %s", c.Kind, c.OldName, c.Name)
	}
	return c.Kind.String()
}

// Inverse returns the change which undoes c.
func (c Change) Inverse() Change {
	switch c.Kind {
	case Added:
		return Change{Kind: Removed, Name: c.Name, Old: c.New}
	case Removed:
		return Change{Kind: Added, Name: c.Name, New: c.Old}
	case Redefined:
		name := c.OldName
		if name == "" {
			name = c.Name
		}
		return Change{Kind: Redefined, Name: name, OldName: c.Name, Old: c.New, New: c.Old}
	case Renamed:
		return Change{Kind: Renamed, Name: c.OldName, OldName: c.Name, Old: c.New, New: c.Old}
	}
	return c
}

// Apply performs c on r. The edit is recorded like any other.
func (r *Resolver) Apply(c Change) error {
	switch c.Kind {
	case Added, Redefined:
		return r.SetMacro(c.Name, c.New)
	case Removed:
		return r.RemoveMacro(c.Name)
	case Renamed:
		return r.ChangeMacroName(c.OldName, c.Name)
	}
	return fmt.Errorf("unknown change kind %d", c.Kind)
}

// UndoLog records resolver edits.
type UndoLog interface {
	Record(c Change)
}

// History is an UndoLog keeping undo and redo stacks in memory.
type History struct {
	undo, redo []Change
	replaying  bool
}

func (h *History) Record(c Change) {
	if h.replaying {
		return
	}
	h.undo = append(h.undo, c)
	h.redo = nil
}

func (h *History) CanUndo() bool {
	return len(h.undo) != 0
}

func (h *History) CanRedo() bool {
	return len(h.redo) != 0
}

// Undo reverts the most recent recorded change on r.
func (h *History) Undo(r *Resolver) error {
	n := len(h.undo)
	if n == 0 {
		return ErrNothingToDo
	}
	c := h.undo[n-1]
	if err := h.replay(r, c.Inverse()); err != nil {
		return fmt.Errorf("could not undo %s: %w", c, err)
	}
	h.undo = h.undo[:n-1]
	h.redo = append(h.redo, c)
	return nil
}

// Redo performs again the most recently undone change on r.
func (h *History) Redo(r *Resolver) error {
	n := len(h.redo)
	if n == 0 {
		return ErrNothingToDo
	}
	c := h.redo[n-1]
	if err := h.replay(r, c); err != nil {
		return fmt.Errorf("could not redo %s: %w", c, err)
	}
	h.redo = h.redo[:n-1]
	h.undo = append(h.undo, c)
	return nil
}

func (h *History) replay(r *Resolver, c Change) error {
	h.replaying = true
	defer func() { h.replaying = false }()
	return r.Apply(c)
}
