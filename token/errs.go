package token

import (
	"errors"
	"fmt"
)

var (
	ErrBadUTF8      = errors.New("bad utf8")
	ErrUnterminated = errors.New("unterminated")
	ErrImbalanced   = errors.New("imbalanced braces")
	ErrUnexpected   = errors.New("unexpected character")
	ErrEmpty        = errors.New("empty value")
)

// TokenizeErr records a lexical error together with the span of input
// it applies to.
type TokenizeErr struct {
	Err error
	Pos Pos
	End int
}

func (t *TokenizeErr) Unwrap() error {
	return t.Err
}

func (e *TokenizeErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}

// Text returns the offending input span.
func (e *TokenizeErr) Text() string {
	return e.Pos.D.Slice(e.Pos.I, e.End)
}

func NewTokenizeErr(e error, p *Pos, end int) *TokenizeErr {
	if end < p.I {
		end = p.I
	}
	return &TokenizeErr{Err: e, Pos: *p, End: end}
}

func UnexpectedErr(what string, p *Pos) error {
	return NewTokenizeErr(fmt.Errorf("%w %s", ErrUnexpected, what), p, p.I+1)
}

func UnterminatedErr(what string, p *Pos, end int) error {
	return NewTokenizeErr(fmt.Errorf("%w %s", ErrUnterminated, what), p, end)
}
