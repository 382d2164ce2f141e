package parse

import (
	"errors"

	"github.com/signadot/bibstr/debug"
	"github.com/signadot/bibstr/ir"
	"github.com/signadot/bibstr/token"
)

// Value parses a field value: pieces joined by '#', where a piece is a
// `{...}` or `"..."` literal, a bare number or a bare macro name. The
// result expands macros with r. A value made of one literal is simple.
func Value(d []byte, r ir.Resolver) (*ir.Value, error) {
	doc := token.NewPosDoc(d)
	toks, err := token.Tokenize(nil, d)
	if err != nil {
		return nil, malformed(doc, err)
	}
	return fromTokens(doc, toks, 0, r)
}

// ValueString is like Value for a string.
func ValueString(s string, r ir.Resolver) (*ir.Value, error) {
	return Value([]byte(s), r)
}

// MustValue is like ValueString but panics on error.
func MustValue(s string, r ir.Resolver) *ir.Value {
	v, err := ValueString(s, r)
	if err != nil {
		panic(err)
	}
	return v
}

// fromTokens builds a value from the tokens of one field value; at is
// where the value starts in doc, used when there are no tokens.
func fromTokens(doc *token.PosDoc, toks []token.Token, at int, r ir.Resolver) (*ir.Value, error) {
	if len(toks) == 0 {
		return nil, malformedAt(doc, ErrEmptyValue, at, at)
	}
	nodes := make([]*ir.Node, 0, (len(toks)+1)/2)
	wantPiece := true
	for i := range toks {
		t := &toks[i]
		if t.Type == token.TConcat {
			if wantPiece {
				return nil, malformedAt(doc, ErrDanglingConcat, t.Pos.I, t.End())
			}
			wantPiece = true
			continue
		}
		if !wantPiece {
			return nil, malformedAt(doc, ErrMissingConcat, t.Pos.I, t.End())
		}
		wantPiece = false
		n, err := pieceNode(t)
		if err != nil {
			return nil, malformedAt(doc, err, t.Pos.I, t.End())
		}
		nodes = append(nodes, n)
	}
	if wantPiece {
		last := &toks[len(toks)-1]
		return nil, malformedAt(doc, ErrDanglingConcat, last.Pos.I, last.End())
	}
	v, err := ir.NewValue(nodes, r)
	if err != nil {
		return nil, err
	}
	if debug.Parse() {
		debug.Logf("parsed value %s\n", v.BibTeXString())
	}
	return v, nil
}

func pieceNode(t *token.Token) (*ir.Node, error) {
	switch t.Type {
	case token.TBraced, token.TQuoted:
		return ir.StringNode(t.String()), nil
	case token.TNumber:
		return ir.NumberNode(t.String()), nil
	default:
		return ir.MacroNode(t.String())
	}
}

func malformed(doc *token.PosDoc, err error) error {
	var te *token.TokenizeErr
	if errors.As(err, &te) {
		return malformedAt(doc, te.Err, te.Pos.I, te.End)
	}
	return &MalformedError{Err: err}
}

func malformedAt(doc *token.PosDoc, err error, start, end int) *MalformedError {
	l, c := doc.LineCol(start)
	return &MalformedError{
		Text:  doc.Slice(start, end),
		Start: start,
		End:   end,
		Line:  l,
		Col:   c,
		Err:   err,
	}
}
