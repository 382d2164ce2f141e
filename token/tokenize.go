package token

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/signadot/bibstr/debug"
)

// Tokenize tokenizes a complete field value, appending to dst.
// Any input left over after the value is an error.
func Tokenize(dst []Token, src []byte) ([]Token, error) {
	doc := NewPosDoc(src)
	toks, i, err := tokenizeAt(dst, doc, 0, false)
	if err != nil {
		return nil, err
	}
	if i < len(src) {
		return nil, UnexpectedErr(fmt.Sprintf("%q", src[i]), doc.Pos(i))
	}
	if debug.Tokenize() {
		PrintTokens(toks, "value")
	}
	return toks, nil
}

// TokenizeAt tokenizes the value starting at offset i of doc. It stops,
// without consuming it, at a ',' or a closing '}' or ')' which does not
// belong to a token, and returns the offset it stopped at.
func TokenizeAt(dst []Token, doc *PosDoc, i int) ([]Token, int, error) {
	return tokenizeAt(dst, doc, i, true)
}

func tokenizeAt(dst []Token, doc *PosDoc, i int, stop bool) ([]Token, int, error) {
	d := doc.d
	n := len(d)
	for i < n {
		c := d[i]
		switch c {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			i++
		case '#':
			dst = append(dst, Token{Type: TConcat, Pos: doc.Pos(i), Bytes: d[i : i+1]})
			i++
		case '{':
			end, err := bracedEnd(doc, i)
			if err != nil {
				return nil, i, err
			}
			dst = append(dst, Token{Type: TBraced, Pos: doc.Pos(i), Bytes: d[i:end]})
			i = end
		case '"':
			end, err := quotedEnd(doc, i)
			if err != nil {
				return nil, i, err
			}
			dst = append(dst, Token{Type: TQuoted, Pos: doc.Pos(i), Bytes: d[i:end]})
			i = end
		case ',', ')', '}':
			if stop {
				return dst, i, nil
			}
			if c == '}' {
				return nil, i, NewTokenizeErr(ErrImbalanced, doc.Pos(i), i+1)
			}
			return nil, i, UnexpectedErr(fmt.Sprintf("%q", c), doc.Pos(i))
		default:
			end, err := identEnd(doc, i)
			if err != nil {
				return nil, i, err
			}
			if end == i {
				return nil, i, UnexpectedErr(fmt.Sprintf("%q", c), doc.Pos(i))
			}
			tt := TIdent
			if IsNumber(string(d[i:end])) {
				tt = TNumber
			}
			dst = append(dst, Token{Type: tt, Pos: doc.Pos(i), Bytes: d[i:end]})
			i = end
		}
	}
	return dst, i, nil
}

// bracedEnd returns the offset just past the '}' matching the '{' at i.
// Every brace counts, backslashed or not.
func bracedEnd(doc *PosDoc, i int) (int, error) {
	d := doc.d
	n := len(d)
	depth := 0
	for j := i; j < n; j++ {
		switch d[j] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return j + 1, nil
			}
		}
	}
	return 0, UnterminatedErr("{", doc.Pos(i), n)
}

// quotedEnd returns the offset just past the '"' closing the one at i.
// A '"' inside braces or preceded by a backslash does not close.
func quotedEnd(doc *PosDoc, i int) (int, error) {
	d := doc.d
	n := len(d)
	depth := 0
	for j := i + 1; j < n; j++ {
		switch d[j] {
		case '\\':
			if j+1 < n && d[j+1] == '"' {
				j++
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return 0, NewTokenizeErr(ErrImbalanced, doc.Pos(j), j+1)
			}
		case '"':
			if depth == 0 {
				return j + 1, nil
			}
		}
	}
	if depth > 0 {
		return 0, NewTokenizeErr(fmt.Errorf("%w in quoted string", ErrImbalanced), doc.Pos(i), n)
	}
	return 0, UnterminatedErr(`"`, doc.Pos(i), n)
}

func identEnd(doc *PosDoc, i int) (int, error) {
	d := doc.d
	n := len(d)
	for i < n {
		r, sz := utf8.DecodeRune(d[i:])
		if r == utf8.RuneError && sz == 1 {
			return 0, NewTokenizeErr(ErrBadUTF8, doc.Pos(i), i+1)
		}
		if !IsIdentRune(r) {
			break
		}
		i += sz
	}
	return i, nil
}

// IsIdentRune reports whether r may appear in a bare macro name.
func IsIdentRune(r rune) bool {
	switch r {
	case '"', '#', '%', '\'', '(', ')', ',', '=', '{', '}':
		return false
	}
	if unicode.IsSpace(r) || unicode.IsControl(r) {
		return false
	}
	return unicode.IsGraphic(r)
}

// IsIdent reports whether s can be written as a bare macro name.
func IsIdent(s string) bool {
	if s == "" || IsNumber(s) {
		return false
	}
	for _, r := range s {
		if !IsIdentRune(r) {
			return false
		}
	}
	return true
}

// IsNumber reports whether s is a bare BibTeX number: one or more ASCII digits.
func IsNumber(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func PrintTokens(toks []Token, msg string) {
	debug.Logf("%s tokens:\n", msg)
	for i := range toks {
		t := &toks[i]
		debug.Logf("\t%s `%s`\n", t.Info(), t.Bytes)
	}
}
