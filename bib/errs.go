package bib

import "errors"

var (
	ErrDuplicateKey = errors.New("duplicate entry key")
	ErrNoSuchEntry  = errors.New("no such entry")
	ErrNoSuchField  = errors.New("no such field")
	ErrCrossRef     = errors.New("bad crossref")
)
