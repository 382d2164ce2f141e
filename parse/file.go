package parse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/bibstr/debug"
	"github.com/signadot/bibstr/ir"
	"github.com/signadot/bibstr/token"
)

type BlockType int

const (
	EntryBlock BlockType = iota
	StringBlock
	PreambleBlock
	CommentBlock
)

func (t BlockType) String() string {
	return map[BlockType]string{
		EntryBlock:    "entry",
		StringBlock:   "string",
		PreambleBlock: "preamble",
		CommentBlock:  "comment",
	}[t]
}

type Field struct {
	Name  string
	Value *ir.Value
}

// Block is one '@' command of a .bib file.
type Block struct {
	Type BlockType
	// EntryType is the lower-cased entry type, such as "article".
	EntryType string
	Key       string
	// Fields holds the fields of an entry, or the single definition of
	// a @string block.
	Fields []Field
	// Value holds the value of a @preamble, or the raw text of a
	// @comment.
	Value *ir.Value

	// Start and End are byte offsets, set with ParsePositions.
	Start, End int
}

// File reads the blocks of a .bib file. Text outside blocks is ignored.
// A malformed field is skipped, a malformed block is dropped, and reading
// continues; all such errors are returned joined, alongside the blocks
// which were read.
func File(d []byte, r ir.Resolver, opts ...ParseOption) ([]Block, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	fp := &fileParser{
		doc:  token.NewPosDoc(d),
		d:    d,
		r:    r,
		opts: pOpts,
	}
	fp.run()
	return fp.blocks, errors.Join(fp.errs...)
}

type fileParser struct {
	doc    *token.PosDoc
	d      []byte
	i      int
	r      ir.Resolver
	opts   *parseOpts
	blocks []Block
	errs   []error
}

func (fp *fileParser) run() {
	for {
		at := indexByte(fp.d, fp.i, '@')
		if at == -1 {
			return
		}
		fp.i = at + 1
		b, ok := fp.block(at)
		if !ok {
			continue
		}
		if fp.opts.positions {
			b.Start, b.End = at, fp.i
		}
		if debug.Parse() {
			debug.Logf("block %s %q at %d\n", b.Type, b.Key, at)
		}
		fp.blocks = append(fp.blocks, b)
	}
}

func (fp *fileParser) blockErr(at int, format string, args ...any) {
	l, c := fp.doc.LineCol(at)
	msg := fmt.Sprintf(format, args...)
	fp.errs = append(fp.errs, fmt.Errorf("%w: %s at line %d, col %d", ErrBlock, msg, l, c))
}

func (fp *fileParser) block(at int) (Block, bool) {
	cmd := fp.ident()
	if cmd == "" {
		fp.blockErr(at, "missing block type after @")
		return Block{}, false
	}
	fp.skipSpace()
	if fp.i >= len(fp.d) || (fp.d[fp.i] != '{' && fp.d[fp.i] != '(') {
		fp.blockErr(at, "expected { or ( after @%s", cmd)
		return Block{}, false
	}
	closer := byte('}')
	if fp.d[fp.i] == '(' {
		closer = ')'
	}
	fp.i++
	switch strings.ToLower(cmd) {
	case "comment":
		return fp.comment(at, closer)
	case "preamble":
		return fp.preamble(at, closer)
	case "string":
		return fp.stringDef(at, closer)
	default:
		return fp.entry(at, strings.ToLower(cmd), closer)
	}
}

func (fp *fileParser) comment(at int, closer byte) (Block, bool) {
	start := fp.i
	end, ok := fp.skipBalanced(closer)
	if !ok {
		fp.blockErr(at, "unterminated @comment")
		return Block{}, false
	}
	if !fp.opts.comments {
		return Block{}, false
	}
	return Block{Type: CommentBlock, Value: ir.PlainValue(string(fp.d[start:end]))}, true
}

func (fp *fileParser) preamble(at int, closer byte) (Block, bool) {
	v, err := fp.value()
	if err != nil {
		fp.errs = append(fp.errs, fmt.Errorf("@preamble: %w", err))
		fp.resync(closer)
		return Block{}, false
	}
	fp.skipSpace()
	if !fp.expect(closer) {
		fp.blockErr(at, "expected %c closing @preamble", closer)
		fp.resync(closer)
		return Block{}, false
	}
	return Block{Type: PreambleBlock, Value: v}, true
}

func (fp *fileParser) stringDef(at int, closer byte) (Block, bool) {
	fields, ok := fp.fields(at, "@string", closer)
	if !ok {
		return Block{}, false
	}
	if len(fields) != 1 {
		fp.blockErr(at, "@string defines %d macros, want 1", len(fields))
		return Block{}, false
	}
	return Block{Type: StringBlock, Key: fields[0].Name, Fields: fields}, true
}

func (fp *fileParser) entry(at int, typ string, closer byte) (Block, bool) {
	fp.skipSpace()
	start := fp.i
	for fp.i < len(fp.d) && fp.d[fp.i] != ',' && fp.d[fp.i] != closer {
		if fp.d[fp.i] == '@' {
			fp.blockErr(at, "unterminated @%s", typ)
			return Block{}, false
		}
		fp.i++
	}
	if fp.i >= len(fp.d) {
		fp.blockErr(at, "unterminated @%s", typ)
		return Block{}, false
	}
	key := strings.TrimSpace(string(fp.d[start:fp.i]))
	b := Block{Type: EntryBlock, EntryType: typ, Key: key}
	if fp.d[fp.i] == closer {
		fp.i++
		return b, true
	}
	fp.i++
	fields, ok := fp.fields(at, "@"+typ+"{"+key+"}", closer)
	if !ok {
		return Block{}, false
	}
	b.Fields = fields
	return b, true
}

// fields reads `name = value` pairs separated by commas up to and
// including closer. A trailing comma is allowed.
func (fp *fileParser) fields(at int, what string, closer byte) ([]Field, bool) {
	var res []Field
	for {
		fp.skipSpace()
		if fp.i >= len(fp.d) {
			fp.blockErr(at, "unterminated %s", what)
			return res, false
		}
		if fp.expect(closer) {
			return res, true
		}
		nameAt := fp.i
		name := fp.ident()
		if name == "" {
			fp.blockErr(nameAt, "%s: expected field name", what)
			if more, closed := fp.resync(closer); !more {
				return res, closed
			}
			continue
		}
		fp.skipSpace()
		if !fp.expect('=') {
			fp.blockErr(fp.i, "%s: expected = after %s", what, name)
			if more, closed := fp.resync(closer); !more {
				return res, closed
			}
			continue
		}
		v, err := fp.value()
		if err != nil {
			fp.errs = append(fp.errs, fmt.Errorf("%s field %s: %w", what, name, err))
			if more, closed := fp.resync(closer); !more {
				return res, closed
			}
			continue
		}
		res = append(res, Field{Name: name, Value: v})
		fp.skipSpace()
		if fp.expect(',') {
			continue
		}
		if fp.expect(closer) {
			return res, true
		}
		fp.blockErr(fp.i, "%s: expected , or %c after field %s", what, closer, name)
		if more, closed := fp.resync(closer); !more {
			return res, closed
		}
	}
}

func (fp *fileParser) value() (*ir.Value, error) {
	at := fp.i
	toks, i, err := token.TokenizeAt(nil, fp.doc, fp.i)
	if err != nil {
		return nil, malformed(fp.doc, err)
	}
	fp.i = i
	return fromTokens(fp.doc, toks, at, fp.r)
}

// resync skips past the next ',' at brace depth 0, reporting more, or
// past closer, reporting closed. Running out of input reports neither.
func (fp *fileParser) resync(closer byte) (more, closed bool) {
	depth := 0
	quoted := false
	for fp.i < len(fp.d) {
		c := fp.d[fp.i]
		fp.i++
		switch {
		case c == '\\' && quoted:
			if fp.i < len(fp.d) && fp.d[fp.i] == '"' {
				fp.i++
			}
		case c == '{':
			depth++
		case c == '}' && depth > 0:
			depth--
		case c == '"' && depth == 0:
			quoted = !quoted
		case quoted || depth > 0:
		case c == ',':
			return true, false
		case c == closer:
			return false, true
		}
	}
	return false, false
}

// skipBalanced skips to the closer matching the block opener, returning
// the offset of the closer.
func (fp *fileParser) skipBalanced(closer byte) (int, bool) {
	depth := 0
	for fp.i < len(fp.d) {
		c := fp.d[fp.i]
		switch {
		case c == '{':
			depth++
		case c == '}' && depth > 0:
			depth--
		case c == closer && depth == 0:
			end := fp.i
			fp.i++
			return end, true
		}
		fp.i++
	}
	return 0, false
}

func (fp *fileParser) ident() string {
	start := fp.i
	for fp.i < len(fp.d) {
		c := fp.d[fp.i]
		if isSpace(c) || !token.IsIdentRune(rune(c)) && c < 0x80 {
			break
		}
		fp.i++
	}
	return string(fp.d[start:fp.i])
}

func (fp *fileParser) expect(c byte) bool {
	if fp.i < len(fp.d) && fp.d[fp.i] == c {
		fp.i++
		return true
	}
	return false
}

func (fp *fileParser) skipSpace() {
	for fp.i < len(fp.d) && isSpace(fp.d[fp.i]) {
		fp.i++
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func indexByte(d []byte, i int, c byte) int {
	for ; i < len(d); i++ {
		if d[i] == c {
			return i
		}
	}
	return -1
}
