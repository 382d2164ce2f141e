// Package token provides tokenization support for BibTeX field values
// and the block structure of .bib files.
//
// [Tokenize] splits a field value such as `{Foo} # bar # 1999` into
// delimited literal runs, bare identifiers, bare numbers and the `#`
// concatenation operator.
//
// [TokenizeAt] does the same starting at an offset into a larger document
// and stops at the first field terminator, which is how the block reader in
// package parse extracts field values from entries.
package token
