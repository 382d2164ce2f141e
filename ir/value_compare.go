package ir

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/signadot/bibstr/token"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type compareOpts struct {
	fold       bool
	diacritics bool
	locale     string
}

// CompareOption configures text comparison of simple values.
type CompareOption func(*compareOpts)

// CaseInsensitive compares and matches text ignoring case. Case is
// ignored by full Unicode case folding, so "ß" matches "SS".
func CaseInsensitive() CompareOption {
	return func(o *compareOpts) { o.fold = true }
}

// IgnoreDiacritics orders text ignoring accents. It has no effect on
// substring matching.
func IgnoreDiacritics() CompareOption {
	return func(o *compareOpts) { o.diacritics = true }
}

// Locale orders text with the collation rules of the BCP 47 tag.
func Locale(tag string) CompareOption {
	return func(o *compareOpts) { o.locale = tag }
}

func getCompareOpts(opts []CompareOption) *compareOpts {
	o := &compareOpts{}
	for _, f := range opts {
		f(o)
	}
	return o
}

// Equal reports whether v and o have the same representation. Two simple
// values are equal when their text is; two complex values are equal when
// their nodes are; a simple value never equals a complex one, even if the
// expansions match. Inheritance is not part of the representation.
func (v *Value) Equal(o *Value) bool {
	if v == o {
		return true
	}
	if v == nil || o == nil {
		return false
	}
	if v.IsComplex() != o.IsComplex() {
		return false
	}
	if !v.IsComplex() {
		return v.text == o.text
	}
	if len(v.nodes) != len(o.nodes) {
		return false
	}
	for i := range v.nodes {
		if !v.nodes[i].Equal(o.nodes[i]) {
			return false
		}
	}
	return true
}

// Compare orders v and o. Simple values sort before complex ones. Complex
// values compare node by node, a prefix sorting first. Simple values compare
// as text honoring opts.
func (v *Value) Compare(o *Value, opts ...CompareOption) int {
	vc, oc := v.IsComplex(), o.IsComplex()
	switch {
	case !vc && oc:
		return -1
	case vc && !oc:
		return 1
	case vc && oc:
		return compareNodes(v.nodes, o.nodes)
	}
	return compareText(v.text, o.text, getCompareOpts(opts))
}

func compareText(a, b string, o *compareOpts) int {
	if o.diacritics {
		a, b = removeMarks(a), removeMarks(b)
	}
	if o.locale != "" {
		var cOpts []collate.Option
		if o.fold {
			cOpts = append(cOpts, collate.IgnoreCase)
		}
		return collate.New(language.Make(o.locale), cOpts...).CompareString(a, b)
	}
	if o.fold {
		f := cases.Fold()
		return strings.Compare(f.String(a), f.String(b))
	}
	return strings.Compare(a, b)
}

// removeMarks strips combining marks after canonical decomposition, so
// "é" becomes "e" and "ø" is kept.
func removeMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	res, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return res
}

// HasSubstring reports whether target occurs in v.
//
// A simple v is searched as text for the expansion of target. A complex v
// is searched node by node for a simple target: literal nodes by substring,
// macro nodes by name. A complex target never occurs in a complex v.
func (v *Value) HasSubstring(target *Value, opts ...CompareOption) bool {
	o := getCompareOpts(opts)
	if !v.IsComplex() {
		return containsText(v.text, target.Expanded(), o)
	}
	if target.IsComplex() {
		return false
	}
	for _, n := range v.nodes {
		if n.typ == MacroType {
			if n.Name() == NormalizeName(target.text) {
				return true
			}
			continue
		}
		if containsText(n.text, target.text, o) {
			return true
		}
	}
	return false
}

func containsText(s, sub string, o *compareOpts) bool {
	if o.fold {
		f := cases.Fold()
		return strings.Contains(f.String(s), f.String(sub))
	}
	return strings.Contains(s, sub)
}

// ReplaceAll replaces occurrences of target with replacement and returns
// the result with the number of replacements.
//
// In a simple v every occurrence in the text is replaced. In a complex v
// only whole nodes match: a literal node whose text is target, or a macro
// node named target when replacement is a valid macro name. Inherited values
// are returned unchanged.
func (v *Value) ReplaceAll(target, replacement string, opts ...CompareOption) (*Value, int) {
	if v.inherited || target == "" {
		return v, 0
	}
	o := getCompareOpts(opts)
	if !v.IsComplex() {
		text, n := replaceText(v.text, target, replacement, o)
		if n == 0 {
			return v, 0
		}
		return &Value{text: text, resolver: v.resolver}, n
	}
	count := 0
	nodes := make([]*Node, len(v.nodes))
	for i, n := range v.nodes {
		nodes[i] = n
		switch n.typ {
		case MacroType:
			if n.Name() != NormalizeName(target) || !token.IsIdent(replacement) {
				continue
			}
			nodes[i] = &Node{typ: MacroType, text: replacement}
		default:
			if !textEqual(n.text, target, o) {
				continue
			}
			if n.typ == NumberType && token.IsNumber(replacement) {
				nodes[i] = NumberNode(replacement)
			} else {
				nodes[i] = StringNode(replacement)
			}
		}
		count++
	}
	if count == 0 {
		return v, 0
	}
	res, _ := NewValue(nodes, v.resolver)
	return res, count
}

func textEqual(a, b string, o *compareOpts) bool {
	if o.fold {
		f := cases.Fold()
		return f.String(a) == f.String(b)
	}
	return a == b
}

func replaceText(s, target, replacement string, o *compareOpts) (string, int) {
	if !o.fold {
		n := strings.Count(s, target)
		if n == 0 {
			return s, 0
		}
		return strings.ReplaceAll(s, target, replacement), n
	}
	f := cases.Fold()
	ft := f.String(target)
	var sb strings.Builder
	n := 0
	i := 0
	for i < len(s) {
		if sz, ok := prefixFold(f, s[i:], ft); ok {
			sb.WriteString(replacement)
			i += sz
			n++
			continue
		}
		_, sz := utf8.DecodeRuneInString(s[i:])
		sb.WriteString(s[i : i+sz])
		i += sz
	}
	return sb.String(), n
}

// prefixFold reports whether the shortest prefix of s, in whole runes,
// whose case folding is ft exists, and its length in bytes. ft must be
// folded already.
func prefixFold(f cases.Caser, s, ft string) (int, bool) {
	for j := 0; j < len(s); {
		_, sz := utf8.DecodeRuneInString(s[j:])
		j += sz
		p := f.String(s[:j])
		if p == ft {
			return j, true
		}
		if !strings.HasPrefix(ft, p) {
			return 0, false
		}
	}
	return 0, false
}
