// Package storage keeps macro tables in a sqlite database.
//
// Tables are saved under a scope name, typically one per document. Each
// definition is stored node by node, so values round-trip exactly even
// when their literal text could not be written as BibTeX; the BibTeX form
// is stored alongside for inspection with the sqlite shell.
package storage
