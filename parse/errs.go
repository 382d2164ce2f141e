package parse

import (
	"errors"
	"fmt"
)

var (
	ErrParse          = errors.New("parse error")
	ErrMalformedValue = fmt.Errorf("%w: malformed value", ErrParse)
	ErrDanglingConcat = errors.New("# without operand")
	ErrMissingConcat  = errors.New("missing # between pieces")
	ErrEmptyValue     = errors.New("empty value")
	ErrBlock          = fmt.Errorf("%w: malformed block", ErrParse)
)

// MalformedError reports a field value which could not be parsed, with the
// offending span of input.
type MalformedError struct {
	Text       string
	Start, End int
	Line, Col  int
	Err        error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: %v: %q at offset %d (line=%d, col=%d)",
		ErrMalformedValue, e.Err, e.Text, e.Start, e.Line, e.Col)
}

func (e *MalformedError) Unwrap() []error {
	return []error{ErrMalformedValue, e.Err}
}
