package macro

import (
	"errors"
	"fmt"

	"github.com/signadot/bibstr/ir"
)

var (
	ErrNoSuchMacro = errors.New("no such macro")
	ErrMacroExists = errors.New("macro already defined")
	ErrInvalidName = fmt.Errorf("%w: invalid macro name", ir.ErrInvalidArgument)
	ErrNilValue    = fmt.Errorf("%w: nil macro value", ir.ErrInvalidArgument)
	ErrNothingToDo = errors.New("nothing to undo")
)
