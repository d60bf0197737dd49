package encode

import (
	"io"
	"strings"

	"github.com/eon-format/go-eon/ir"
	"github.com/eon-format/go-eon/token"
)

// EncState carries the encoding options and output state.
type EncState struct {
	indent   string
	depth    int
	braces   bool
	comments bool

	Color func(ir.Type, ColorAttr, string) string

	out strings.Builder
}

// Encode writes node to w in canonical form. The canonical form is
// idempotent: encoding a parse of the output reproduces it exactly.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent:   "\t",
		comments: true,
	}
	for _, opt := range opts {
		opt(es)
	}
	es.document(node)
	_, err := io.WriteString(w, es.out.String())
	return err
}

// document encodes the top level. A top-level map is written without
// surrounding braces unless outer braces were asked for.
func (es *EncState) document(node *ir.Node) {
	if !es.braces && node.Type == ir.MapType {
		es.leadingComments(node)
		es.mapContent(node)
		return
	}
	es.indentedValue(node)
	es.out.WriteByte('\n')
}

func (es *EncState) addIndent() {
	for i := 0; i < es.depth; i++ {
		es.out.WriteString(es.indent)
	}
}

func (es *EncState) color(t ir.Type, attr ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, attr, s)
}

func (es *EncState) leadingComments(n *ir.Node) {
	if !es.comments || n.Comment == nil {
		return
	}
	es.commentLines(n.Comment.Leading)
}

func (es *EncState) commentLines(lines []string) {
	if !es.comments {
		return
	}
	for _, c := range lines {
		es.addIndent()
		es.out.WriteString(es.color(ir.NullType, CommentColor, c))
		es.out.WriteByte('\n')
	}
}

func (es *EncState) trailingComment(n *ir.Node) {
	if !es.comments || n.Comment == nil || n.Comment.Trailing == "" {
		return
	}
	es.out.WriteByte(' ')
	es.out.WriteString(es.color(ir.NullType, CommentColor, n.Comment.Trailing))
}

func (es *EncState) closing(n *ir.Node) []string {
	if !es.comments || n.Comment == nil {
		return nil
	}
	return n.Comment.Closing
}

// indentedValue writes a value on its own line, with its comments.
func (es *EncState) indentedValue(n *ir.Node) {
	es.leadingComments(n)
	es.addIndent()
	es.value(n)
	es.trailingComment(n)
}

// value writes a value starting at the current position.
func (es *EncState) value(n *ir.Node) {
	switch n.Type {
	case ir.NullType:
		es.out.WriteString(es.color(n.Type, ValueColor, "null"))
	case ir.BoolType:
		s := "false"
		if n.Bool {
			s = "true"
		}
		es.out.WriteString(es.color(n.Type, ValueColor, s))
	case ir.NumberType:
		es.out.WriteString(es.color(n.Type, ValueColor, ir.FormatNumber(n)))
	case ir.StringType:
		es.out.WriteString(es.color(n.Type, ValueColor, stringLit(n)))
	case ir.ListType:
		es.list(n)
	case ir.MapType:
		es.mapValue(n)
	case ir.VariantType:
		es.variant(n)
	}
}

// stringLit renders a string, reusing the source spelling when the
// node was parsed so multiline and literal flavors survive a
// reformat.
func stringLit(n *ir.Node) string {
	if n.Lit != "" {
		return n.Lit
	}
	return token.Quote(n.String, true)
}

func (es *EncState) list(n *ir.Node) {
	if len(n.Values) == 0 && len(es.closing(n)) == 0 {
		es.out.WriteString("[]")
		return
	}
	if es.singleLine(n.Values) && len(es.closing(n)) == 0 {
		es.out.WriteByte('[')
		for i, v := range n.Values {
			if i > 0 {
				es.out.WriteString(", ")
			}
			es.value(v)
		}
		es.out.WriteByte(']')
		return
	}
	es.out.WriteByte('[')
	es.depth++
	es.out.WriteByte('\n')
	es.listContent(n)
	es.depth--
	es.addIndent()
	es.out.WriteByte(']')
}

func (es *EncState) listContent(n *ir.Node) {
	blanks := es.anyLeading(n.Values)
	for i, v := range n.Values {
		es.indentedValue(v)
		es.out.WriteByte('\n')
		if blanks && i+1 < len(n.Values) {
			es.out.WriteByte('\n')
		}
	}
	closing := es.closing(n)
	if blanks && len(closing) > 0 {
		es.out.WriteByte('\n')
	}
	es.commentLines(closing)
}

// mapValue writes a map with braces. Non-empty maps are always
// multiline.
func (es *EncState) mapValue(n *ir.Node) {
	if len(n.Fields) == 0 && len(es.closing(n)) == 0 {
		es.out.WriteString("{}")
		return
	}
	es.out.WriteByte('{')
	es.depth++
	es.out.WriteByte('\n')
	es.mapContent(n)
	es.depth--
	es.addIndent()
	es.out.WriteByte('}')
}

func (es *EncState) mapContent(n *ir.Node) {
	blanks := es.mapBlanks(n)
	for i := range n.Fields {
		es.keyValue(n.Fields[i], n.Values[i])
		es.out.WriteByte('\n')
		if blanks && i+1 < len(n.Fields) {
			es.out.WriteByte('\n')
		}
	}
	closing := es.closing(n)
	if blanks && len(closing) > 0 {
		es.out.WriteByte('\n')
	}
	es.commentLines(closing)
}

func (es *EncState) keyValue(key, val *ir.Node) {
	es.leadingComments(key)
	es.leadingComments(val)
	keyTrailing := ""
	if es.comments && key.Comment != nil {
		keyTrailing = key.Comment.Trailing
	}
	if keyTrailing != "" && val.Comment != nil && val.Comment.Trailing != "" {
		// the value's comment takes the line; the key's moves above it
		es.commentLines([]string{keyTrailing})
		keyTrailing = ""
	}
	es.addIndent()
	es.key(key)
	es.out.WriteString(": ")
	es.value(val)
	es.trailingComment(val)
	if keyTrailing != "" {
		es.out.WriteByte(' ')
		es.out.WriteString(es.color(ir.NullType, CommentColor, keyTrailing))
	}
}

// mapBlanks decides whether entries get blank lines between them. A
// key trailing comment that must move above its entry counts as a
// leading comment, so the decision survives a reparse.
func (es *EncState) mapBlanks(n *ir.Node) bool {
	if es.anyLeading(n.Fields) {
		return true
	}
	if !es.comments {
		return false
	}
	for i, k := range n.Fields {
		if k.Comment != nil && k.Comment.Trailing != "" &&
			n.Values[i].Comment != nil && n.Values[i].Comment.Trailing != "" {
			return true
		}
	}
	return false
}

// key writes a map key. String keys that read as identifiers go
// bare; the keywords stay quoted since bare they would mean the bool
// or null value. Everything else is written like a value.
func (es *EncState) key(n *ir.Node) {
	if n.Type == ir.StringType {
		s := n.String
		if token.IsIdentifier(s) && s != "true" && s != "false" && s != "null" {
			es.out.WriteString(es.color(ir.MapType, FieldColor, s))
			return
		}
		es.out.WriteString(es.color(ir.MapType, FieldColor, token.Quote(s, true)))
		return
	}
	es.value(n)
}

func (es *EncState) variant(n *ir.Node) {
	name := es.color(n.Type, TagColor, token.Quote(n.Tag, true))
	closing := es.closing(n)

	if es.singleLine(n.Values) && len(closing) == 0 {
		es.out.WriteString(name)
		es.out.WriteByte('(')
		for i, v := range n.Values {
			if i > 0 {
				es.out.WriteString(", ")
			}
			es.value(v)
		}
		es.out.WriteByte(')')
		return
	}

	// a single container argument shares the variant's parentheses
	// to avoid double indentation
	if len(closing) == 0 && len(n.Values) == 1 {
		arg := n.Values[0]
		switch arg.Type {
		case ir.MapType:
			if arg.Comment.Empty() {
				if len(arg.Fields) == 0 {
					es.out.WriteString(name)
					es.out.WriteString("({ })")
					return
				}
				es.out.WriteString(name)
				es.out.WriteString("({")
				es.depth++
				es.out.WriteByte('\n')
				es.mapContent(arg)
				es.depth--
				es.addIndent()
				es.out.WriteString("})")
				return
			}
		case ir.ListType:
			if arg.Comment.Empty() {
				if len(arg.Values) == 0 {
					es.out.WriteString(name)
					es.out.WriteString("([ ])")
					return
				}
				es.out.WriteString(name)
				es.out.WriteString("([")
				es.depth++
				es.out.WriteByte('\n')
				es.listContent(arg)
				es.depth--
				es.addIndent()
				es.out.WriteString("])")
				return
			}
		}
	}

	blanks := es.anyLeading(n.Values)
	es.out.WriteString(name)
	es.out.WriteByte('(')
	es.depth++
	es.out.WriteByte('\n')
	for i, v := range n.Values {
		es.indentedValue(v)
		es.out.WriteByte('\n')
		if blanks && i+1 < len(n.Values) {
			es.out.WriteByte('\n')
		}
	}
	if blanks && len(closing) > 0 {
		es.out.WriteByte('\n')
	}
	es.commentLines(closing)
	es.depth--
	es.addIndent()
	es.out.WriteByte(')')
}

func (es *EncState) anyLeading(nodes []*ir.Node) bool {
	if !es.comments {
		return false
	}
	for _, n := range nodes {
		if n.Comment != nil && len(n.Comment.Leading) > 0 {
			return true
		}
	}
	return false
}

// singleLine decides whether a run of values fits on one line: all of
// them simple, and either at most four numbers or at most four values
// of modest estimated width.
func (es *EncState) singleLine(values []*ir.Node) bool {
	for _, v := range values {
		if !es.isSimple(v) {
			return false
		}
	}
	if len(values) > 4 {
		return false
	}
	allNumbers := true
	for _, v := range values {
		if v.Type != ir.NumberType {
			allNumbers = false
			break
		}
	}
	if allNumbers {
		return true
	}
	width := 0
	for _, v := range values {
		if v.Type == ir.StringType {
			width += len(stringLit(v))
		} else {
			width += 5
		}
		width += 2
	}
	return width < 60
}

func (es *EncState) isSimple(n *ir.Node) bool {
	if es.comments && !n.Comment.Empty() {
		return false
	}
	switch n.Type {
	case ir.NullType, ir.BoolType, ir.NumberType:
		return true
	case ir.StringType:
		return !strings.Contains(stringLit(n), "\n")
	case ir.ListType:
		return len(n.Values) == 0
	case ir.MapType:
		return len(n.Fields) == 0
	default:
		return false
	}
}
