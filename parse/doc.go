// Package parse parses BibTeX text.
//
// # Usage
//
//	// Parse a field value
//	v, err := parse.ValueString(`{Proc. of } # conf # " 2001"`, resolver)
//	if err != nil {
//	    return err
//	}
//
//	// Read the blocks of a .bib file
//	blocks, err := parse.File(data, resolver)
//
// Value errors are returned as *[MalformedError], which matches
// [ErrMalformedValue] with errors.Is. [File] keeps going after a bad field
// or block and returns everything it could read together with the joined
// errors.
//
// # Related Packages
//
//   - github.com/signadot/bibstr/ir - value representation
//   - github.com/signadot/bibstr/encode - rendering values as BibTeX
//   - github.com/signadot/bibstr/token - tokenization
package parse
