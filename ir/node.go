package ir

import (
	"math/big"
)

// Node represents a single value in a document. It is a recursive
// tagged union: the Type field selects which of the value fields are
// meaningful.
//
// For MapType nodes, Fields[i] is the key node for the value at
// Values[i]; keys may be of any type. For ListType nodes only Values
// is used. For VariantType nodes Tag holds the variant name and
// Values the arguments; a variant always has at least one argument
// (zero-argument variants collapse to plain strings at construction).
//
// Numbers are held in exactly one of Int64, Big, or Float64. Int64 is
// the fast path; Big covers the rest of the 128-bit integer range.
type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int

	Fields []*Node
	Values []*Node

	Tag     string
	Comment *Comment

	String  string
	Bool    bool
	Int64   *int64
	Big     *big.Int
	Float64 *float64

	// Number and Lit keep the literal as written when the node was
	// parsed from source, so reformatting preserves hex and binary
	// spellings, underscores, and string flavors. Both are empty
	// for programmatically built nodes.
	Number string
	Lit    string
}

// Comment records the comments attached to a node. Each entry is the
// raw comment text including the leading slashes. Leading comments
// precede the node on their own lines, Trailing sits on the node's
// line, and Closing holds comments before a container's closing
// delimiter that belong to no entry.
type Comment struct {
	Leading  []string
	Trailing string
	Closing  []string
}

func (c *Comment) Empty() bool {
	return c == nil || len(c.Leading) == 0 && c.Trailing == "" && len(c.Closing) == 0
}

func (c *Comment) Clone() *Comment {
	if c == nil {
		return nil
	}
	res := &Comment{Trailing: c.Trailing}
	res.Leading = append(res.Leading, c.Leading...)
	res.Closing = append(res.Closing, c.Closing...)
	return res
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Int64: &v}
}

func FromBigInt(v *big.Int) *Node {
	if v.IsInt64() {
		return FromInt(v.Int64())
	}
	return &Node{Type: NumberType, Big: new(big.Int).Set(v)}
}

func FromFloat(v float64) *Node {
	return &Node{Type: NumberType, Float64: &v}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromSlice(vs []*Node) *Node {
	res := &Node{Type: ListType}
	res.Values = make([]*Node, len(vs))
	for i, v := range vs {
		v.Parent = res
		v.ParentIndex = i
		res.Values[i] = v
	}
	return res
}

type KeyVal struct {
	Key *Node
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{Type: MapType}
	res.Fields = make([]*Node, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		kv := &kvs[i]
		kv.Key.Parent = res
		kv.Key.ParentIndex = i
		kv.Val.Parent = res
		kv.Val.ParentIndex = i
		res.Fields[i] = kv.Key
		res.Values[i] = kv.Val
	}
	return res
}

func FromMap(m map[string]*Node) *Node {
	kvs := make([]KeyVal, 0, len(m))
	for k, v := range m {
		kvs = append(kvs, KeyVal{Key: FromString(k), Val: v})
	}
	sortKeyVals(kvs)
	return FromKeyVals(kvs)
}

func sortKeyVals(kvs []KeyVal) {
	for i := 1; i < len(kvs); i++ {
		for j := i; j > 0 && Compare(kvs[j].Key, kvs[j-1].Key) < 0; j-- {
			kvs[j], kvs[j-1] = kvs[j-1], kvs[j]
		}
	}
}

// NewVariant builds a variant node. A variant with no arguments is
// indistinguishable from its name, so it collapses to a plain string.
func NewVariant(name string, args ...*Node) *Node {
	if len(args) == 0 {
		return FromString(name)
	}
	res := &Node{Type: VariantType, Tag: name}
	res.Values = make([]*Node, len(args))
	for i, v := range args {
		v.Parent = res
		v.ParentIndex = i
		res.Values[i] = v
	}
	return res
}

// Get returns the value for a string key, or nil.
func Get(y *Node, field string) *Node {
	for i := range y.Fields {
		k := y.Fields[i]
		if k.Type == StringType && k.String == field {
			return y.Values[i]
		}
	}
	return nil
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.Tag = y.Tag
	dst.String = y.String
	dst.Bool = y.Bool
	dst.Number = y.Number
	dst.Lit = y.Lit
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	if y.Big != nil {
		dst.Big = new(big.Int).Set(y.Big)
	}
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	dst.Comment = y.Comment.Clone()
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
	}
	for i, yf := range y.Fields {
		dstI := yf.CloneTo(&Node{})
		dstI.Parent = dst
		dstI.ParentIndex = i
		dst.Fields[i] = dstI
	}
	for i, yv := range y.Values {
		dstI := yv.CloneTo(&Node{})
		dstI.Parent = dst
		dstI.ParentIndex = i
		dst.Values[i] = dstI
	}
	return dst
}

// StripComments removes comment attachments from the whole tree,
// projecting a document down to its pure value.
func (y *Node) StripComments() *Node {
	y.Comment = nil
	for _, f := range y.Fields {
		f.StripComments()
	}
	for _, v := range y.Values {
		v.StripComments()
	}
	return y
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yf := range y.Fields {
			if err := yf.Visit(f); err != nil {
				return err
			}
		}
		for _, yv := range y.Values {
			if err := yv.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}
