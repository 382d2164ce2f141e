package storage

import "errors"

var (
	ErrNoSuchScope = errors.New("no such scope")
	ErrCorrupt     = errors.New("corrupt macro table")
)
