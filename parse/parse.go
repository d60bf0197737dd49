package parse

import (
	"fmt"
	"strings"

	"github.com/eon-format/go-eon/debug"
	"github.com/eon-format/go-eon/ir"
	"github.com/eon-format/go-eon/token"
)

// MaxDepth protects against stack overflow in the recursive descent.
const MaxDepth = 128

type options struct {
	comments bool
}

type Option func(*options)

// WithComments controls whether comments are attached to the parsed
// nodes. It is on by default; turn it off to parse straight to the
// pure value.
func WithComments(v bool) Option {
	return func(o *options) {
		o.comments = v
	}
}

// Parse parses a document. The top level is usually the contents of a
// map without surrounding braces; failing that, the source is read as
// the contents of a list, and a lone value stands for itself.
func Parse(src []byte, opts ...Option) (*ir.Node, error) {
	o := &options{comments: true}
	for _, opt := range opts {
		opt(o)
	}
	toks, err := token.Tokenize(nil, src)
	if err != nil {
		if te, ok := err.(*token.TokenizeErr); ok {
			return nil, &Error{Err: te.Err, Msg: te.Err.Error(), Pos: te.Pos}
		}
		return nil, err
	}
	doc := token.NewPosDoc(src)
	if debug.Tokens() {
		for i := range toks {
			debug.Logf("%s", toks[i].Info())
		}
	}

	// Most documents are a bunch of `key: value` pairs without
	// surrounding braces, so try that first.
	pa := &parser{src: src, doc: doc, toks: toks, comments: o.comments}
	kvs, closing, errA := pa.mapContents(0)
	if errA == nil {
		errA = pa.expectEOF()
	}
	if errA == nil {
		res := ir.FromKeyVals(kvs)
		attachClosing(res, closing)
		return res, nil
	}

	// Maybe the top level is a list, or a single value.
	pb := &parser{src: src, doc: doc, toks: toks, comments: o.comments}
	vals, closing, errB := pb.listContents(0)
	if errB == nil {
		errB = pb.expectEOF()
	}
	if errB == nil {
		// a file holding a single value, like `42` or `{...}`,
		// stands for that value
		if len(vals) == 1 {
			return vals[0], nil
		}
		res := ir.FromSlice(vals)
		attachClosing(res, closing)
		return res, nil
	}

	// Report the error of the attempt that got further.
	if debug.Parse() {
		debug.Logf("map attempt ended at %d (%v), list attempt at %d (%v)",
			pa.lastEnd, errA, pb.lastEnd, errB)
	}
	if pa.lastEnd < pb.lastEnd {
		return nil, errB
	}
	return nil, errA
}

func attachClosing(res *ir.Node, closing []string) {
	if len(closing) == 0 {
		return
	}
	if res.Comment == nil {
		res.Comment = &ir.Comment{}
	}
	res.Comment.Closing = closing
}

type parser struct {
	src      []byte
	doc      *token.PosDoc
	toks     []token.Token
	i        int
	comments bool

	// end offset of the last consumed token, used both for
	// same-line comment attachment and for picking the top-level
	// attempt that got further
	lastEnd int
}

func (p *parser) peek() *token.Token {
	if p.i >= len(p.toks) {
		return nil
	}
	return &p.toks[p.i]
}

func (p *parser) next() *token.Token {
	if p.i >= len(p.toks) {
		return nil
	}
	t := &p.toks[p.i]
	p.i++
	p.lastEnd = t.End
	return t
}

func (p *parser) lastPos() *token.Pos {
	if p.i == 0 {
		return p.doc.Pos(0)
	}
	return p.toks[p.i-1].Pos
}

func (p *parser) expectEOF() error {
	if t := p.peek(); t != nil {
		return errAt(ErrUnexpectedToken, t.Pos, fmt.Sprintf("expected end of file, found %s", t.Type))
	}
	return nil
}

// leadingComments consumes a run of comment tokens. The raw text is
// only collected when comment attachment is on.
func (p *parser) leadingComments() []string {
	var res []string
	for t := p.peek(); t != nil && t.Type == token.TComment; t = p.peek() {
		p.next()
		if p.comments {
			res = append(res, string(t.Bytes))
		}
	}
	return res
}

// trailingComment consumes a comment that sits on the same line as
// the last consumed token.
func (p *parser) trailingComment() string {
	t := p.peek()
	if t == nil || t.Type != token.TComment {
		return ""
	}
	if strings.ContainsRune(string(p.src[p.lastEnd:t.Pos.I]), '\n') {
		return ""
	}
	p.next()
	if !p.comments {
		return ""
	}
	return string(t.Bytes)
}

func (p *parser) consume(tt token.TokenType) error {
	t := p.next()
	if t == nil {
		return errAt(ErrUnexpectedEOF, p.doc.End(), fmt.Sprintf("expected %s but reached end of input", tt))
	}
	if t.Type != tt {
		return errAt(ErrUnexpectedToken, t.Pos, fmt.Sprintf("expected %s but found %s", tt, t.Type))
	}
	return nil
}

func isCloser(tt token.TokenType) bool {
	return tt == token.TRCurl || tt == token.TRSquare || tt == token.TRParen
}

// listContents parses the inside of a list without consuming the
// surrounding brackets. The second result holds comments that sit
// before the closing bracket and belong to no element.
func (p *parser) listContents(depth int) ([]*ir.Node, []string, error) {
	var vals []*ir.Node
	for {
		lead := p.leadingComments()
		if t := p.peek(); t == nil || isCloser(t.Type) {
			return vals, lead, nil
		}
		v, err := p.value(depth + 1)
		if err != nil {
			return nil, nil, err
		}
		prependLeading(v, lead)
		if t := p.peek(); t != nil && t.Type == token.TComma {
			p.next()
			if c := p.trailingComment(); c != "" {
				setTrailing(v, c)
			}
		}
		vals = append(vals, v)
	}
}

// mapContents parses the inside of a map without consuming the
// surrounding braces. Keys may be values of any type; a key that is
// structurally equal to an earlier one is an error.
func (p *parser) mapContents(depth int) ([]ir.KeyVal, []string, error) {
	var (
		kvs    []ir.KeyVal
		keyPos []*token.Pos
		byHash = map[uint64][]int{}
	)
	for {
		lead := p.leadingComments()
		if t := p.peek(); t == nil || isCloser(t.Type) {
			return kvs, lead, nil
		}
		pos := p.peek().Pos
		key, err := p.keyNode(depth + 1)
		if err != nil {
			return nil, nil, err
		}
		prependLeading(key, lead)
		if err := p.consume(token.TColon); err != nil {
			return nil, nil, err
		}
		val, err := p.value(depth + 1)
		if err != nil {
			return nil, nil, err
		}
		if t := p.peek(); t != nil && t.Type == token.TComma {
			p.next()
			if c := p.trailingComment(); c != "" {
				setTrailing(val, c)
			}
		}

		h := key.Hash()
		for _, i := range byHash[h] {
			if ir.Compare(kvs[i].Key, key) == 0 {
				l, c := keyPos[i].LineCol()
				return nil, nil, errAt(ErrDuplicateKey, pos,
					fmt.Sprintf("duplicate key in map, first defined at line %d, col %d", l+1, c+1))
			}
		}
		byHash[h] = append(byHash[h], len(kvs))
		keyPos = append(keyPos, pos)
		kvs = append(kvs, ir.KeyVal{Key: key, Val: val})
	}
}

// keyNode parses a map key. Bare identifiers are string keys, except
// the keywords, which keep their value meaning: `true: 1` has a bool
// key, and quoting is required for the string "true".
func (p *parser) keyNode(depth int) (*ir.Node, error) {
	t := p.peek()
	if t != nil && t.Type == token.TIdent {
		p.next()
		var key *ir.Node
		switch string(t.Bytes) {
		case "null":
			key = ir.Null()
		case "true":
			key = ir.FromBool(true)
		case "false":
			key = ir.FromBool(false)
		default:
			key = ir.FromString(string(t.Bytes))
		}
		if c := p.trailingComment(); c != "" {
			setTrailing(key, c)
		}
		return key, nil
	}
	return p.value(depth)
}

// value parses a single value, including any comments around it.
func (p *parser) value(depth int) (*ir.Node, error) {
	if depth >= MaxDepth {
		return nil, errAt(ErrNestingTooDeep, p.lastPos(),
			"maximum recursion depth exceeded while parsing document")
	}
	lead := p.leadingComments()
	t := p.next()
	if t == nil {
		return nil, errAt(ErrUnexpectedEOF, p.doc.End(), "expected a value")
	}

	var (
		res *ir.Node
		err error
	)
	switch t.Type {
	case token.TLSquare:
		var vals []*ir.Node
		var closing []string
		vals, closing, err = p.listContents(depth + 1)
		if err != nil {
			return nil, err
		}
		if err = p.consume(token.TRSquare); err != nil {
			return nil, err
		}
		res = ir.FromSlice(vals)
		attachClosing(res, closing)
	case token.TLCurl:
		var kvs []ir.KeyVal
		var closing []string
		kvs, closing, err = p.mapContents(depth + 1)
		if err != nil {
			return nil, err
		}
		if err = p.consume(token.TRCurl); err != nil {
			return nil, err
		}
		res = ir.FromKeyVals(kvs)
		attachClosing(res, closing)
	case token.TIdent:
		res, err = keywordNode(t)
		if err != nil {
			return nil, err
		}
	case token.TNumber:
		res, err = ir.ParseNumber(string(t.Bytes))
		if err != nil {
			return nil, &Error{Err: err, Msg: err.Error(), Pos: *t.Pos}
		}
	case token.TString, token.TLiteral, token.TMString, token.TMLit:
		if nt := p.peek(); nt != nil && nt.Type == token.TLParen {
			res, err = p.variant(t, depth)
			if err != nil {
				return nil, err
			}
		} else if nt != nil && (nt.Type == token.TLCurl || nt.Type == token.TLSquare) && nt.Pos.I == t.End {
			return nil, errAt(ErrUnexpectedToken, nt.Pos,
				fmt.Sprintf("found %s directly after a string; a variant call takes parentheses, like %s(...)", nt.Type, t.Bytes))
		} else {
			res = ir.FromString(t.String())
			res.Lit = string(t.Bytes)
		}
	case token.TRSquare:
		return nil, errAt(ErrUnexpectedToken, t.Pos, "unbalanced brackets")
	case token.TRCurl:
		return nil, errAt(ErrUnexpectedToken, t.Pos, "unbalanced braces")
	case token.TRParen:
		return nil, errAt(ErrUnexpectedToken, t.Pos, "unbalanced parentheses")
	case token.TLParen:
		return nil, errAt(ErrUnexpectedToken, t.Pos, "parentheses must be preceded by a string")
	default:
		return nil, errAt(ErrUnexpectedToken, t.Pos,
			"expected a value, like a map, list, number, or string")
	}

	prependLeading(res, lead)
	if c := p.trailingComment(); c != "" {
		setTrailing(res, c)
	}
	return res, nil
}

// variant parses the argument list of a variant call, the name token
// having already been consumed.
func (p *parser) variant(name *token.Token, depth int) (*ir.Node, error) {
	p.next() // the open parenthesis
	args, closing, err := p.listContents(depth + 1)
	if err != nil {
		return nil, err
	}
	if err := p.consume(token.TRParen); err != nil {
		return nil, err
	}
	// a zero-argument variant is the same value as its bare name
	res := ir.NewVariant(name.String(), args...)
	attachClosing(res, closing)
	return res, nil
}

func keywordNode(t *token.Token) (*ir.Node, error) {
	word := string(t.Bytes)
	switch word {
	case "null":
		return ir.Null(), nil
	case "true":
		return ir.FromBool(true), nil
	case "false":
		return ir.FromBool(false), nil
	}
	var suggestion string
	switch strings.ToLower(word) {
	case "inf":
		suggestion = "+inf or -inf"
	case "nan":
		suggestion = "+nan"
	case "true":
		suggestion = "true"
	case "false":
		suggestion = "false"
	case "nil", "null", "none":
		suggestion = "null"
	}
	msg := fmt.Sprintf("unknown keyword %q, expected 'null', 'true', or 'false'", word)
	if suggestion != "" {
		msg = fmt.Sprintf("unknown keyword %q, did you mean: %s?", word, suggestion)
	}
	return nil, errAt(ErrUnexpectedToken, t.Pos, msg)
}

func prependLeading(n *ir.Node, lead []string) {
	if len(lead) == 0 {
		return
	}
	if n.Comment == nil {
		n.Comment = &ir.Comment{}
	}
	n.Comment.Leading = append(lead, n.Comment.Leading...)
}

func setTrailing(n *ir.Node, c string) {
	if n.Comment == nil {
		n.Comment = &ir.Comment{}
	}
	n.Comment.Trailing = c
}
