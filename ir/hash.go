package ir

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

// A fixed per-process seed so that hashes of equal nodes agree no
// matter where they are computed.
var hashSeed = maphash.MakeSeed()

// Hash returns a 64-bit structural hash of the node, consistent with
// Compare: nodes that compare equal hash equal. Comments are ignored.
// It panics if n is nil.
func (n *Node) Hash() uint64 {
	if n == nil {
		panic("ir: Hash called on nil node")
	}
	var h maphash.Hash
	h.SetSeed(hashSeed)
	n.hashInto(&h)
	return h.Sum64()
}

func (n *Node) hashInto(h *maphash.Hash) {
	h.WriteByte(byte(n.Type))
	switch n.Type {
	case NullType:
	case BoolType:
		if n.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case NumberType:
		var b [8]byte
		switch {
		case n.Float64 != nil:
			h.WriteByte(1)
			f := *n.Float64
			// fold the NaN payloads and signed zeros that
			// compare equal
			switch {
			case math.IsNaN(f):
				f = math.NaN()
			case f == 0:
				f = 0
			}
			binary.LittleEndian.PutUint64(b[:], math.Float64bits(f))
			h.Write(b[:])
		case n.Big != nil:
			h.WriteByte(0)
			h.WriteByte(byte(n.Big.Sign() + 1))
			h.Write(n.Big.Bytes())
		case n.Int64 != nil:
			h.WriteByte(0)
			v := *n.Int64
			if v < 0 {
				h.WriteByte(0)
				binary.LittleEndian.PutUint64(b[:], uint64(-v))
			} else {
				h.WriteByte(2)
				binary.LittleEndian.PutUint64(b[:], uint64(v))
			}
			trim := b[:]
			for len(trim) > 0 && trim[len(trim)-1] == 0 {
				trim = trim[:len(trim)-1]
			}
			h.Write(trim)
		}
	case StringType:
		h.WriteString(n.String)
	case ListType:
		for _, v := range n.Values {
			v.hashInto(h)
		}
	case MapType:
		for i, f := range n.Fields {
			f.hashInto(h)
			n.Values[i].hashInto(h)
		}
	case VariantType:
		h.WriteString(n.Tag)
		for _, v := range n.Values {
			v.hashInto(h)
		}
	}
}
