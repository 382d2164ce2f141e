package macro

import "github.com/signadot/bibstr/ir"

var months = [][2]string{
	{"jan", "January"},
	{"feb", "February"},
	{"mar", "March"},
	{"apr", "April"},
	{"may", "May"},
	{"jun", "June"},
	{"jul", "July"},
	{"aug", "August"},
	{"sep", "September"},
	{"oct", "October"},
	{"nov", "November"},
	{"dec", "December"},
}

// Standard returns a resolver defining the month abbreviations every
// BibTeX style provides. It is meant to be the parent of document
// resolvers. Defining the months is not recorded in owner's undo log.
func Standard(owner Owner, opts ...Option) *Resolver {
	r := New(nil, nil, opts...)
	for _, m := range months {
		if err := r.SetMacro(m[0], ir.PlainValue(m[1])); err != nil {
			panic(err)
		}
	}
	r.owner = owner
	return r
}
