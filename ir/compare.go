package ir

import (
	"cmp"
	"math/big"
	"strings"
)

// Compare returns an integer comparing two nodes structurally.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// Comments do not participate: two nodes that differ only in attached
// comments compare equal, which is what duplicate-key detection and
// map-key lookup need.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	rankA := rank(a.Type)
	rankB := rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.Type {
	case NullType:
		return 0
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case NumberType:
		return compareNumbers(a, b)
	case StringType:
		return strings.Compare(a.String, b.String)
	case ListType:
		return compareValues(a, b)
	case MapType:
		return compareMaps(a, b)
	case VariantType:
		if c := strings.Compare(a.Tag, b.Tag); c != 0 {
			return c
		}
		return compareValues(a, b)
	}
	return 0
}

// rank orders types: Null < Bool < Number < String < List < Map < Variant.
func rank(t Type) int {
	switch t {
	case NullType:
		return 0
	case BoolType:
		return 1
	case NumberType:
		return 2
	case StringType:
		return 3
	case ListType:
		return 4
	case MapType:
		return 5
	case VariantType:
		return 6
	}
	return 100
}

// compareNumbers keeps integers and floats apart: 1 and 1.0 are
// different keys. Within integers, Int64 and Big compare by value.
func compareNumbers(a, b *Node) int {
	aFloat := a.Float64 != nil
	bFloat := b.Float64 != nil
	if aFloat != bFloat {
		if !aFloat {
			return -1
		}
		return 1
	}
	if aFloat {
		// cmp.Compare treats NaNs as equal to each other and
		// -0.0 as equal to 0.0, which matches key equality here
		return cmp.Compare(*a.Float64, *b.Float64)
	}
	if a.Int64 != nil && b.Int64 != nil {
		return cmp.Compare(*a.Int64, *b.Int64)
	}
	av, _ := a.AsBigInt()
	bv, _ := b.AsBigInt()
	if av == nil {
		av = new(big.Int)
	}
	if bv == nil {
		bv = new(big.Int)
	}
	return av.Cmp(bv)
}

func compareValues(a, b *Node) int {
	lenA := len(a.Values)
	lenB := len(b.Values)
	for i := 0; i < min(lenA, lenB); i++ {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

func compareMaps(a, b *Node) int {
	lenA := len(a.Fields)
	lenB := len(b.Fields)
	for i := 0; i < min(lenA, lenB); i++ {
		if c := Compare(a.Fields[i], b.Fields[i]); c != 0 {
			return c
		}
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}
