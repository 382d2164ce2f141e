package ir

import (
	"errors"
)

var (
	// ErrInvalidArgument is returned for empty node sequences and empty macro names.
	ErrInvalidArgument = errors.New("invalid argument")
)
