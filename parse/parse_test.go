package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/eon-format/go-eon/ir"
	"github.com/eon-format/go-eon/token"
)

func mustParse(t *testing.T, src string, opts ...Option) *ir.Node {
	t.Helper()
	n, err := Parse([]byte(src), opts...)
	if err != nil {
		t.Fatalf("%q: %v", src, err)
	}
	return n
}

func TestParseTopLevelMap(t *testing.T) {
	n := mustParse(t, "host: \"db.local\"\nport: 5432\nenabled: true\nnothing: null\n")
	if n.Type != ir.MapType || len(n.Fields) != 4 {
		t.Fatalf("got %s with %d entries", n.Type, len(n.Fields))
	}
	if got := ir.Get(n, "host"); got == nil || got.String != "db.local" {
		t.Errorf("host = %v", got)
	}
	if got := ir.Get(n, "port"); got == nil || got.Int64 == nil || *got.Int64 != 5432 {
		t.Errorf("port = %v", got)
	}
	if got := ir.Get(n, "enabled"); got == nil || got.Type != ir.BoolType || !got.Bool {
		t.Errorf("enabled = %v", got)
	}
	if got := ir.Get(n, "nothing"); got == nil || got.Type != ir.NullType {
		t.Errorf("nothing = %v", got)
	}
}

func TestParseOptionalCommas(t *testing.T) {
	a := mustParse(t, "{x: 1, y: 2, z: 3}")
	b := mustParse(t, "{x: 1 y: 2 z: 3}")
	c := mustParse(t, "{x: 1, y: 2, z: 3,}")
	if ir.Compare(a, b) != 0 || ir.Compare(a, c) != 0 {
		t.Error("commas should not change the parsed value")
	}
	la := mustParse(t, "[1, 2, 3]")
	lb := mustParse(t, "[1 2 3]")
	if ir.Compare(la, lb) != 0 {
		t.Error("commas should not change the parsed list")
	}
}

func TestParseTopLevelSugar(t *testing.T) {
	n := mustParse(t, "1, 2, 3")
	if n.Type != ir.ListType || len(n.Values) != 3 {
		t.Fatalf("got %s with %d values", n.Type, len(n.Values))
	}
	// a single value stands for itself
	n = mustParse(t, "42")
	if n.Type != ir.NumberType || *n.Int64 != 42 {
		t.Fatalf("got %s", n.Type)
	}
	n = mustParse(t, `{a: 1}`)
	if n.Type != ir.MapType || len(n.Fields) != 1 {
		t.Fatalf("got %s with %d entries", n.Type, len(n.Fields))
	}
	// empty input is the empty map
	n = mustParse(t, "")
	if n.Type != ir.MapType || len(n.Fields) != 0 {
		t.Fatalf("empty doc: got %s with %d entries", n.Type, len(n.Fields))
	}
	n = mustParse(t, "// just a comment\n")
	if n.Type != ir.MapType || len(n.Fields) != 0 {
		t.Fatalf("comment-only doc: got %s", n.Type)
	}
}

func TestParseNested(t *testing.T) {
	n := mustParse(t, `
servers: [
	{name: "a" port: 1}
	{name: "b" port: 2}
]
limits: {cpu: 1.5, mem: 0x4000}
`)
	servers := ir.Get(n, "servers")
	if servers == nil || servers.Type != ir.ListType || len(servers.Values) != 2 {
		t.Fatal("bad servers")
	}
	if got := ir.Get(servers.Values[1], "name"); got == nil || got.String != "b" {
		t.Errorf("servers[1].name = %v", got)
	}
	limits := ir.Get(n, "limits")
	if got := ir.Get(limits, "mem"); got == nil || got.Int64 == nil || *got.Int64 != 0x4000 {
		t.Errorf("limits.mem = %v", got)
	}
}

func TestParseVariants(t *testing.T) {
	n := mustParse(t, `color: "Rgb"(255, 0, 127)`)
	v := ir.Get(n, "color")
	if v == nil || v.Type != ir.VariantType || v.Tag != "Rgb" || len(v.Values) != 3 {
		t.Fatalf("got %v", v)
	}
	// zero arguments collapse to the plain string
	n = mustParse(t, `color: "Rgb"()`)
	v = ir.Get(n, "color")
	if v == nil || v.Type != ir.StringType || v.String != "Rgb" {
		t.Fatalf("got %v", v)
	}
	// whitespace before the parenthesis still makes a call
	n = mustParse(t, `color: "Rgb" (1)`)
	v = ir.Get(n, "color")
	if v == nil || v.Type != ir.VariantType {
		t.Fatalf("got %v", v)
	}
	// single-container arguments
	n = mustParse(t, `shape: "Circle"({radius: 2.0})`)
	v = ir.Get(n, "shape")
	if v == nil || v.Type != ir.VariantType || len(v.Values) != 1 || v.Values[0].Type != ir.MapType {
		t.Fatalf("got %v", v)
	}
}

func TestParseVariantBraceError(t *testing.T) {
	_, err := Parse([]byte(`color: "Rgb"{r: 1}`))
	if !errors.Is(err, ErrUnexpectedToken) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(err.Error(), "parentheses") {
		t.Errorf("error should point at variant syntax: %v", err)
	}
	_, err = Parse([]byte(`xs: "Tag"[1, 2]`))
	if !errors.Is(err, ErrUnexpectedToken) {
		t.Fatalf("got %v", err)
	}
}

func TestParseKeys(t *testing.T) {
	n := mustParse(t, `
1: "int"
1.0: "float"
true: "bool"
null: "null"
[1, 2]: "list"
{a: 1}: "map"
"quoted key": "string"
`)
	if len(n.Fields) != 7 {
		t.Fatalf("got %d entries", len(n.Fields))
	}
	types := []ir.Type{
		ir.NumberType, ir.NumberType, ir.BoolType, ir.NullType,
		ir.ListType, ir.MapType, ir.StringType,
	}
	for i, want := range types {
		if n.Fields[i].Type != want {
			t.Errorf("key %d: got %s want %s", i, n.Fields[i].Type, want)
		}
	}
	// 1 and 1.0 are distinct keys, so no duplicate was reported;
	// the bool key is a real bool, not the string "true"
	if n.Fields[2].Bool != true {
		t.Error("true key should be the bool true")
	}
}

func TestParseDuplicateKeys(t *testing.T) {
	cases := []string{
		"a: 1\na: 2",
		`{"a": 1, a: 2}`,
		"1: x\n0x1: y",
		"[1, 2]: x\n[1, 2]: y",
		"{a: 1, b: 2}: x\n{a: 1, b: 2}: y",
		"+nan: x\n+nan: y",
	}
	for _, src := range cases {
		_, err := Parse([]byte(src))
		if !errors.Is(err, ErrDuplicateKey) {
			t.Errorf("%q: got %v", src, err)
		}
	}
	ok := []string{
		"1: x\n1.0: y",
		"{a: 1}: x\n{a: 2}: y",
		"a: 1\nA: 2",
	}
	for _, src := range ok {
		if _, err := Parse([]byte(src)); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestParseUnknownKeyword(t *testing.T) {
	cases := []struct{ src, hint string }{
		{"x: inf", "+inf or -inf"},
		{"x: nan", "+nan"},
		{"x: nil", "null"},
		{"x: none", "null"},
		{"x: True", "true"},
		{"x: FALSE", "false"},
		{"x: NULL", "null"},
		{"x: banana", "expected 'null', 'true', or 'false'"},
	}
	for _, c := range cases {
		_, err := Parse([]byte(c.src))
		if !errors.Is(err, ErrUnexpectedToken) {
			t.Errorf("%q: got %v", c.src, err)
			continue
		}
		if !strings.Contains(err.Error(), c.hint) {
			t.Errorf("%q: error %q lacks hint %q", c.src, err, c.hint)
		}
	}
}

func TestParseDepthGuard(t *testing.T) {
	src := strings.Repeat("[", 200) + strings.Repeat("]", 200)
	_, err := Parse([]byte(src))
	if !errors.Is(err, ErrNestingTooDeep) {
		t.Fatalf("got %v", err)
	}
	// well under the limit parses fine
	src = strings.Repeat("[", 50) + strings.Repeat("]", 50)
	if _, err := Parse([]byte(src)); err != nil {
		t.Fatal(err)
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse([]byte("a: 1\nb: @"))
	var pe *Error
	if !errors.As(err, &pe) {
		t.Fatalf("got %v", err)
	}
	l, c := pe.LineCol()
	if l != 1 || c != 3 {
		t.Errorf("error at line %d col %d", l, c)
	}
	if !errors.Is(err, ErrParse) {
		t.Error("every parse error should match ErrParse")
	}
	if !errors.Is(err, token.ErrUnexpectedChar) {
		t.Error("lexical cause should be preserved")
	}
}

func TestParseFarthestError(t *testing.T) {
	// the map reading gets past `a: [1,` while the list reading
	// stops at `a`, so the map error wins
	_, err := Parse([]byte("a: [1, 2"))
	if err == nil {
		t.Fatal("no error")
	}
	if strings.Contains(err.Error(), "keyword") {
		t.Errorf("reported the wrong attempt's error: %v", err)
	}
}

func TestParseComments(t *testing.T) {
	src := `// Prefix comment A.
// Prefix comment B.
key1: 42

// Prefix comment C.
key2:
// Prefix comment D.
"string" // Suffix comment

// Closing comment 1.
// Closing comment 2.
`
	n := mustParse(t, src)
	if len(n.Fields) != 2 {
		t.Fatalf("got %d entries", len(n.Fields))
	}
	k1 := n.Fields[0]
	if k1.Comment == nil || len(k1.Comment.Leading) != 2 || k1.Comment.Leading[0] != "// Prefix comment A." {
		t.Errorf("key1 leading = %v", k1.Comment)
	}
	k2, v2 := n.Fields[1], n.Values[1]
	if k2.Comment == nil || len(k2.Comment.Leading) != 1 || k2.Comment.Leading[0] != "// Prefix comment C." {
		t.Errorf("key2 leading = %v", k2.Comment)
	}
	if v2.Comment == nil || len(v2.Comment.Leading) != 1 || v2.Comment.Leading[0] != "// Prefix comment D." {
		t.Errorf("value2 leading = %v", v2.Comment)
	}
	if v2.Comment == nil || v2.Comment.Trailing != "// Suffix comment" {
		t.Errorf("value2 trailing = %v", v2.Comment)
	}
	if n.Comment == nil || len(n.Comment.Closing) != 2 {
		t.Errorf("closing = %v", n.Comment)
	}

	// with comments off the same document parses clean
	bare := mustParse(t, src, WithComments(false))
	err := bare.Visit(func(y *ir.Node, isPost bool) (bool, error) {
		if !isPost && y.Comment != nil {
			t.Errorf("comment survived on %s", y.Type)
		}
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestParseTrailingGarbage(t *testing.T) {
	for _, src := range []string{"42 }", "{a: 1} extra", "a: 1\n]"} {
		_, err := Parse([]byte(src))
		if !errors.Is(err, ErrParse) {
			t.Errorf("%q: got %v", src, err)
		}
	}
	// values just listed after one another are a top-level list
	n, err := Parse([]byte("[1] [2]"))
	if err != nil {
		t.Fatal(err)
	}
	if n.Type != ir.ListType || len(n.Values) != 2 {
		t.Errorf("got %s with %d values", n.Type, len(n.Values))
	}
}

func TestParseStringFlavors(t *testing.T) {
	n := mustParse(t, `
a: "tab\there"
b: 'no\tescape'
c: """
	line
	"""
d: '''['"]'''
`)
	if got := ir.Get(n, "a").String; got != "tab\there" {
		t.Errorf("a = %q", got)
	}
	if got := ir.Get(n, "b").String; got != `no\tescape` {
		t.Errorf("b = %q", got)
	}
	if got := ir.Get(n, "c").String; got != "\tline\n\t" {
		t.Errorf("c = %q", got)
	}
	if got := ir.Get(n, "d").String; got != `['"]` {
		t.Errorf("d = %q", got)
	}
}
