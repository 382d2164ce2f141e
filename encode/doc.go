// Package encode renders field values, macro tables and entries as BibTeX
// text.
//
// # Usage
//
//	v := parse.MustValue(`{Foo} # bar`, r)
//	encode.Encode(v, os.Stdout)                     // {Foo} # bar
//	encode.Encode(v, os.Stdout, encode.EncodeQuotes(true)) // "Foo" # bar
//
//	// @string blocks sorted by name
//	encode.EncodeMacros(r.Definitions(), os.Stdout)
//
// Literal text whose braces do not balance cannot be delimited with braces
// and is written in quotes; such text does not parse back.
//
// # Related Packages
//
//   - github.com/signadot/bibstr/ir - values and nodes
//   - github.com/signadot/bibstr/parse - parse BibTeX text to values
package encode
