package bib

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/bibstr/ir"
	"github.com/signadot/bibstr/macro"
	"github.com/signadot/bibstr/parse"
)

const crossrefBib = `
@string{pub = {Springer}}
@string{lncs = {LNCS}}
@string{pub = {Springer} # { Verlag}}

@proceedings{conf,
  title = {Proceedings},
  publisher = pub,
  series = lncs # { } # 1234,
  year = 1999,
}

@inproceedings{paper,
  Title = {A Paper},
  CrossRef = {conf},
}

@inproceedings{deep, crossref = {paper}}
@misc{loopa, crossref = {loopb}}
@misc{loopb, crossref = {loopa}}
@misc{orphan, crossref = {nowhere}}
`

func loadCrossref(t *testing.T) *Database {
	t.Helper()
	db, err := Load([]byte(crossrefBib), nil)
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func TestLoad(t *testing.T) {
	db := loadCrossref(t)
	var keys []string
	for _, e := range db.Entries {
		keys = append(keys, e.Type+":"+e.Key)
	}
	want := []string{
		"proceedings:conf",
		"inproceedings:paper",
		"inproceedings:deep",
		"misc:loopa",
		"misc:loopb",
		"misc:orphan",
	}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("entries (-want +got):\n%s", diff)
	}
	if got := db.Macros.Expand("pub"); got != "Springer Verlag" {
		t.Errorf("later definition wins, got %q", got)
	}
	if got := db.Macros.Expand("jan"); got != "January" {
		t.Errorf("standard macros are visible, got %q", got)
	}
	if got := db.Entry("CONF").Field("series").Expanded(); got != "LNCS 1234" {
		t.Errorf("got %q", got)
	}
}

func TestLoadPartial(t *testing.T) {
	d := `
@misc{a, note = {x}}
@misc{A, note = {y}}
@string{12 = {bad}}
@misc{b, note = {x} {y}, title = {t}}
`
	db, err := Load([]byte(d), nil)
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("got %v", err)
	}
	if !errors.Is(err, macro.ErrInvalidName) {
		t.Errorf("got %v", err)
	}
	if !errors.Is(err, parse.ErrMalformedValue) {
		t.Errorf("got %v", err)
	}
	if len(db.Entries) != 2 {
		t.Fatalf("got %d entries", len(db.Entries))
	}
	if diff := cmp.Diff([]string{"title"}, db.Entry("b").FieldNames()); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}
}

func TestResolve(t *testing.T) {
	db := loadCrossref(t)
	paper := db.Entry("paper")
	deep := db.Entry("deep")

	if v := db.Resolve(paper, "title"); v.IsInherited() || v.Expanded() != "A Paper" {
		t.Errorf("own field: got %s", v)
	}
	v := db.Resolve(paper, "publisher")
	if v == nil || !v.IsInherited() {
		t.Fatalf("got %v", v)
	}
	if v.Expanded() != "Springer Verlag" || v.BibTeXString() != "pub" {
		t.Errorf("got %q %q", v.Expanded(), v.BibTeXString())
	}
	if v := db.Resolve(deep, "YEAR"); v == nil || v.Expanded() != "1999" {
		t.Errorf("chained crossref: got %v", v)
	}
	if v := db.Resolve(deep, "title"); v == nil || v.Expanded() != "A Paper" {
		t.Errorf("nearest parent wins: got %v", v)
	}
	if v := db.Resolve(deep, "crossref"); v == nil || v.Expanded() != "paper" {
		t.Errorf("got %v", v)
	}
	if v := db.Resolve(paper, "editor"); v != nil {
		t.Errorf("got %v", v)
	}
	if v := db.Resolve(db.Entry("loopa"), "title"); v != nil {
		t.Errorf("got %v", v)
	}
	if v := db.Resolve(db.Entry("orphan"), "title"); v != nil {
		t.Errorf("got %v", v)
	}
}

func TestInheritedSnapshot(t *testing.T) {
	db := loadCrossref(t)
	paper := db.Entry("paper")
	inherited := db.Resolve(paper, "publisher")

	if err := db.Macros.SetMacro("pub", ir.PlainValue("ACM")); err != nil {
		t.Fatal(err)
	}
	if got := inherited.Expanded(); got != "Springer Verlag" {
		t.Errorf("inherited value keeps its expansion, got %q", got)
	}
	if got := db.Resolve(paper, "publisher").Expanded(); got != "ACM" {
		t.Errorf("resolving again sees the change, got %q", got)
	}
}

func TestPromote(t *testing.T) {
	db := loadCrossref(t)
	paper := db.Entry("paper")
	if err := db.Promote(paper, "series"); err != nil {
		t.Fatal(err)
	}
	v := paper.Field("series")
	if v == nil || v.IsInherited() {
		t.Fatalf("got %v", v)
	}
	if !v.Equal(db.Entry("conf").Field("series")) {
		t.Errorf("promoted value keeps the representation, got %s", v.BibTeXString())
	}
	if err := db.Macros.SetMacro("lncs", ir.PlainValue("Lecture Notes")); err != nil {
		t.Fatal(err)
	}
	if got := v.Expanded(); got != "Lecture Notes 1234" {
		t.Errorf("promoted value expands live, got %q", got)
	}
	if err := db.Promote(paper, "title"); err != nil {
		t.Errorf("own field: %v", err)
	}
	if err := db.Promote(paper, "editor"); !errors.Is(err, ErrNoSuchField) || errors.Is(err, ErrNoSuchEntry) {
		t.Errorf("got %v", err)
	}
	err := db.Promote(db.Entry("orphan"), "title")
	if !errors.Is(err, ErrNoSuchField) || !errors.Is(err, ErrNoSuchEntry) {
		t.Errorf("missing parent: got %v", err)
	}
}

func TestCheckCrossRefs(t *testing.T) {
	db := loadCrossref(t)
	err := db.CheckCrossRefs()
	if !errors.Is(err, ErrCrossRef) {
		t.Fatalf("got %v", err)
	}
	var msgs []string
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		msgs = append(msgs, e.Error())
	}
	want := []string{
		"bad crossref: loopa is part of a crossref cycle",
		"bad crossref: loopb is part of a crossref cycle",
		`bad crossref: orphan: no such entry "nowhere"`,
	}
	if diff := cmp.Diff(want, msgs); diff != "" {
		t.Errorf("errors (-want +got):\n%s", diff)
	}
	if !errors.Is(err, ErrNoSuchEntry) {
		t.Errorf("missing parent: got %v", err)
	}
}

func TestEntryFields(t *testing.T) {
	e := NewEntry("Article", "k")
	e.SetField("Title", ir.PlainValue("a"))
	e.SetField("year", ir.PlainValue("1"))
	e.SetField("TITLE", ir.PlainValue("b"))
	if diff := cmp.Diff([]string{"Title", "year"}, e.FieldNames()); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}
	if e.Type != "article" || e.Field("title").Expanded() != "b" {
		t.Errorf("got %s %s", e.Type, e.Field("title"))
	}
	e.SetField("title", nil)
	e.SetField("nope", nil)
	if diff := cmp.Diff([]string{"year"}, e.FieldNames()); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}
}

func TestResolvedFieldNames(t *testing.T) {
	db := loadCrossref(t)
	got := db.FieldNames(db.Entry("deep"))
	want := []string{"crossref", "Title", "publisher", "series", "year"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"crossref"}, db.FieldNames(db.Entry("loopa"))); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
}
