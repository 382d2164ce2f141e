package parse

type parseOpts struct {
	comments  bool
	positions bool
}

type ParseOption func(*parseOpts)

// ParseComments keeps @comment blocks in the result of File.
func ParseComments(v bool) ParseOption {
	return func(o *parseOpts) { o.comments = v }
}

// ParsePositions records the byte span of each block read by File.
func ParsePositions(v bool) ParseOption {
	return func(o *parseOpts) { o.positions = v }
}
