package ir

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Numbers cover 64-bit floats plus the 128-bit integer range
// [-2^127, 2^128). Decimal integers beyond that range degrade to an
// approximate float, mirroring what most readers of a config would
// expect from a very large literal.
var (
	maxUint128 = new(big.Int).Lsh(big.NewInt(1), 128)
	minInt128  = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// ParseNumber parses a number literal: decimal integers and floats,
// 0x/0X hexadecimal, 0b/0B binary, with underscores as digit
// separators, and the signed specials +inf, -inf, and +nan.
func ParseNumber(lit string) (*Node, error) {
	s := strings.ReplaceAll(lit, "_", "")
	switch s {
	case "+inf":
		return litNode(FromFloat(math.Inf(1)), lit), nil
	case "-inf":
		return litNode(FromFloat(math.Inf(-1)), lit), nil
	case "+nan":
		return litNode(FromFloat(math.NaN()), lit), nil
	case "inf", "nan":
		return nil, fmt.Errorf("%w: %q requires a sign, write +%s or -%s", ErrNumber, lit, s, s)
	case "-nan", "+NaN", "-NaN", "NaN":
		return nil, fmt.Errorf("%w: %q, not-a-number is written +nan", ErrNumber, lit)
	case "+Inf", "-Inf", "Inf":
		return nil, fmt.Errorf("%w: %q, infinity is written +inf or -inf", ErrNumber, lit)
	}

	body := s
	neg := false
	if strings.HasPrefix(body, "+") {
		body = body[1:]
	} else if strings.HasPrefix(body, "-") {
		neg = true
		body = body[1:]
	}
	if body == "" {
		return nil, fmt.Errorf("%w: %q", ErrNumber, lit)
	}

	if len(body) >= 2 && body[0] == '0' && (body[1] == 'x' || body[1] == 'X') {
		return radixNode(lit, body[2:], 16, neg)
	}
	if len(body) >= 2 && body[0] == '0' && (body[1] == 'b' || body[1] == 'B') {
		return radixNode(lit, body[2:], 2, neg)
	}

	if strings.ContainsAny(body, ".eE") {
		// guard against strconv's wider syntax (inf, nan, hex
		// floats) leaking in
		for i := 0; i < len(body); i++ {
			c := body[i]
			if c >= '0' && c <= '9' || c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-' {
				continue
			}
			return nil, fmt.Errorf("%w: %q", ErrNumber, lit)
		}
		f, err := strconv.ParseFloat(body, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrNumber, lit)
		}
		if neg {
			f = -f
		}
		return litNode(FromFloat(f), lit), nil
	}

	for i := 0; i < len(body); i++ {
		if body[i] < '0' || body[i] > '9' {
			return nil, fmt.Errorf("%w: %q", ErrNumber, lit)
		}
	}
	v, ok := new(big.Int).SetString(body, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNumber, lit)
	}
	if neg {
		v.Neg(v)
	}
	if v.Cmp(maxUint128) >= 0 || v.Cmp(minInt128) < 0 {
		f, _ := strconv.ParseFloat(body, 64)
		if neg {
			f = -f
		}
		return litNode(FromFloat(f), lit), nil
	}
	return litNode(FromBigInt(v), lit), nil
}

func radixNode(lit, digits string, base int, neg bool) (*Node, error) {
	if digits == "" {
		return nil, fmt.Errorf("%w: %q", ErrNumber, lit)
	}
	v, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNumber, lit)
	}
	if neg {
		v.Neg(v)
	}
	if v.Cmp(maxUint128) >= 0 || v.Cmp(minInt128) < 0 {
		return nil, fmt.Errorf("%w: %q out of range", ErrNumber, lit)
	}
	return litNode(FromBigInt(v), lit), nil
}

func litNode(n *Node, lit string) *Node {
	n.Number = lit
	return n
}

// FormatNumber renders a number node. A literal carried over from
// parsing is reused verbatim so spellings like 0xff survive a
// reformat; synthesized nodes get the canonical decimal form.
func FormatNumber(n *Node) string {
	if n.Number != "" {
		return n.Number
	}
	switch {
	case n.Int64 != nil:
		return strconv.FormatInt(*n.Int64, 10)
	case n.Big != nil:
		return n.Big.String()
	case n.Float64 != nil:
		return FormatFloat(*n.Float64)
	}
	return "0"
}

// FormatFloat renders f with the fewest digits that round-trip,
// always keeping a mark of floatness so the value reparses as a
// float rather than an integer.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "+nan"
	case math.IsInf(f, 1):
		return "+inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// AsInt64 returns the value as an int64 if it is representable
// without narrowing, including whole-valued floats.
func (y *Node) AsInt64() (int64, bool) {
	if y.Type != NumberType {
		return 0, false
	}
	switch {
	case y.Int64 != nil:
		return *y.Int64, true
	case y.Big != nil:
		if y.Big.IsInt64() {
			return y.Big.Int64(), true
		}
	case y.Float64 != nil:
		f := *y.Float64
		i := int64(f)
		if f == float64(i) {
			return i, true
		}
	}
	return 0, false
}

// AsUint64 returns the value as a uint64 if it is representable
// without narrowing.
func (y *Node) AsUint64() (uint64, bool) {
	if y.Type != NumberType {
		return 0, false
	}
	switch {
	case y.Int64 != nil:
		if *y.Int64 >= 0 {
			return uint64(*y.Int64), true
		}
	case y.Big != nil:
		if y.Big.IsUint64() {
			return y.Big.Uint64(), true
		}
	case y.Float64 != nil:
		f := *y.Float64
		if f >= 0 {
			u := uint64(f)
			if f == float64(u) {
				return u, true
			}
		}
	}
	return 0, false
}

// AsFloat64 returns the value as a float64, converting integers.
func (y *Node) AsFloat64() (float64, bool) {
	if y.Type != NumberType {
		return 0, false
	}
	switch {
	case y.Int64 != nil:
		return float64(*y.Int64), true
	case y.Big != nil:
		f, _ := new(big.Float).SetInt(y.Big).Float64()
		return f, true
	case y.Float64 != nil:
		return *y.Float64, true
	}
	return 0, false
}

// AsBigInt returns the integer value, or nil for floats.
func (y *Node) AsBigInt() (*big.Int, bool) {
	if y.Type != NumberType {
		return nil, false
	}
	switch {
	case y.Int64 != nil:
		return big.NewInt(*y.Int64), true
	case y.Big != nil:
		return new(big.Int).Set(y.Big), true
	}
	return nil, false
}

// IsFloat reports whether the number is a float. Integers and floats
// are distinct in key equality even when numerically equal.
func (y *Node) IsFloat() bool {
	return y.Type == NumberType && y.Float64 != nil
}
