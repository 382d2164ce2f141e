package encode

import "github.com/signadot/bibstr/bib"

type EncodeOption func(*EncState)

// EncodeQuotes delimits literal text with double quotes where the text
// allows it, instead of braces.
func EncodeQuotes(v bool) EncodeOption {
	return func(es *EncState) { es.quotes = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}

// Indent sets the indentation of entry fields.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// Inherited makes EncodeEntry write the fields an entry inherits through
// crossrefs in db.
func Inherited(db *bib.Database) EncodeOption {
	return func(es *EncState) { es.db = db }
}
