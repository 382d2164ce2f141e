package bib

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/signadot/bibstr/ir"
	"github.com/signadot/bibstr/macro"
	"github.com/signadot/bibstr/parse"
)

// Database holds the records of one or more .bib files together with the
// macro table their values expand with.
type Database struct {
	Macros   *macro.Resolver
	Preamble []*ir.Value
	Entries  []*Entry

	byKey map[string]*Entry
	log   *slog.Logger
}

type Option func(*Database)

func WithLogger(l *slog.Logger) Option {
	return func(db *Database) { db.log = l }
}

// New returns an empty database whose values expand with macros. A nil
// macros gets a fresh table with the standard month macros as parent.
func New(macros *macro.Resolver, opts ...Option) *Database {
	db := &Database{byKey: map[string]*Entry{}}
	for _, opt := range opts {
		opt(db)
	}
	if db.log == nil {
		db.log = slog.Default()
	}
	if macros == nil {
		macros = macro.New(nil, macro.Standard(nil, macro.WithLogger(db.log)), macro.WithLogger(db.log))
	}
	db.Macros = macros
	return db
}

// Load reads a .bib file into a new database. On error the database holds
// everything which could be read.
func Load(d []byte, macros *macro.Resolver, opts ...Option) (*Database, error) {
	db := New(macros, opts...)
	return db, db.Read(d)
}

// Read adds the blocks of a .bib file. @string blocks are defined in
// order, a later definition replacing an earlier one.
func (db *Database) Read(d []byte) error {
	blocks, err := parse.File(d, db.Macros)
	var errs []error
	if err != nil {
		errs = append(errs, err)
	}
	for i := range blocks {
		b := &blocks[i]
		switch b.Type {
		case parse.StringBlock:
			f := b.Fields[0]
			if err := db.Macros.SetMacro(f.Name, f.Value); err != nil {
				errs = append(errs, fmt.Errorf("@string{%s}: %w", f.Name, err))
			}
		case parse.PreambleBlock:
			db.Preamble = append(db.Preamble, b.Value)
		case parse.EntryBlock:
			e := NewEntry(b.EntryType, b.Key)
			for _, f := range b.Fields {
				e.SetField(f.Name, f.Value)
			}
			if err := db.Add(e); err != nil {
				errs = append(errs, err)
			}
		}
	}
	db.log.Debug("read bib", "entries", len(db.Entries), "macros", db.Macros.Len(), "errors", len(errs))
	return errors.Join(errs...)
}

// Add appends e. Keys are case-insensitive and unique.
func (db *Database) Add(e *Entry) error {
	k := strings.ToLower(e.Key)
	if _, ok := db.byKey[k]; ok {
		return fmt.Errorf("%w %q", ErrDuplicateKey, e.Key)
	}
	db.byKey[k] = e
	db.Entries = append(db.Entries, e)
	return nil
}

// Entry returns the entry with key, or nil.
func (db *Database) Entry(key string) *Entry {
	return db.byKey[strings.ToLower(key)]
}

// Resolve returns the value of field for e: its own value if it has one,
// otherwise the value inherited through its chain of crossrefs. Inherited
// values are placeholders as given by ir.Value.AsInherited. Resolve
// returns nil when no record in the chain has the field.
func (db *Database) Resolve(e *Entry, name string) *ir.Value {
	if v := e.Field(name); v != nil {
		return v
	}
	if strings.EqualFold(name, CrossRefField) {
		return nil
	}
	visited := map[*Entry]bool{e: true}
	for p := db.parent(e); p != nil; p = db.parent(p) {
		if visited[p] {
			db.log.Warn("circular crossref", "entry", e.Key, "parent", p.Key)
			return nil
		}
		visited[p] = true
		if v := p.Field(name); v != nil {
			return v.AsInherited()
		}
	}
	return nil
}

func (db *Database) parent(e *Entry) *Entry {
	key := e.CrossRef()
	if key == "" {
		return nil
	}
	p := db.Entry(key)
	if p == nil {
		db.log.Debug("crossref to missing entry", "entry", e.Key, "crossref", key)
	}
	return p
}

// Promote makes the inherited value of field a first class value of e,
// so later changes to the parent no longer affect it. It does nothing if
// e has its own value.
func (db *Database) Promote(e *Entry, name string) error {
	v := db.Resolve(e, name)
	if v == nil {
		if key := e.CrossRef(); key != "" && db.Entry(key) == nil {
			return fmt.Errorf("%w %q in %s: crossref %w %q", ErrNoSuchField, name, e.Key, ErrNoSuchEntry, key)
		}
		return fmt.Errorf("%w %q in %s", ErrNoSuchField, name, e.Key)
	}
	if !v.IsInherited() {
		return nil
	}
	e.SetField(name, v.CopyUninherited())
	return nil
}

// CheckCrossRefs reports every entry whose crossref names a missing
// entry or leads back to itself.
func (db *Database) CheckCrossRefs() error {
	var errs []error
	for _, e := range db.Entries {
		key := e.CrossRef()
		if key == "" {
			continue
		}
		if db.Entry(key) == nil {
			errs = append(errs, fmt.Errorf("%w: %s: %w %q", ErrCrossRef, e.Key, ErrNoSuchEntry, key))
			continue
		}
		visited := map[*Entry]bool{}
		for x := e; x != nil; x = db.Entry(x.CrossRef()) {
			if visited[x] {
				if x == e {
					errs = append(errs, fmt.Errorf("%w: %s is part of a crossref cycle", ErrCrossRef, e.Key))
				}
				break
			}
			visited[x] = true
		}
	}
	return errors.Join(errs...)
}

// FieldNames returns the names of the fields e has or inherits: its own
// fields first, then those of each parent in crossref order.
func (db *Database) FieldNames(e *Entry) []string {
	res := e.FieldNames()
	seen := map[string]bool{}
	for _, name := range res {
		seen[strings.ToLower(name)] = true
	}
	seen[CrossRefField] = true
	visited := map[*Entry]bool{e: true}
	for p := db.parent(e); p != nil && !visited[p]; p = db.parent(p) {
		visited[p] = true
		for _, name := range p.FieldNames() {
			k := strings.ToLower(name)
			if seen[k] {
				continue
			}
			seen[k] = true
			res = append(res, name)
		}
	}
	return res
}
