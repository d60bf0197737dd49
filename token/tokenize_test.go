package token

import (
	"errors"
	"testing"
)

func TestTokenize(t *testing.T) {
	src := `// config
server: {
	host: "db.local"
	port: 5432
	retry: [1, 2, 3]
	tag: "Duration"(250)
	raw: 'C:\tmp'
	banner: """
		hi \u{1F600}
		"""
	re: '''a|"b"'''
	weight: +inf
	offset: -0x1_f
}
`
	toks, err := Tokenize(nil, []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	want := []TokenType{
		TComment,
		TIdent, TColon, TLCurl,
		TIdent, TColon, TString,
		TIdent, TColon, TNumber,
		TIdent, TColon, TLSquare, TNumber, TComma, TNumber, TComma, TNumber, TRSquare,
		TIdent, TColon, TString, TLParen, TNumber, TRParen,
		TIdent, TColon, TLiteral,
		TIdent, TColon, TMString,
		TIdent, TColon, TMLit,
		TIdent, TColon, TNumber,
		TIdent, TColon, TNumber,
		TRCurl,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i := range want {
		if toks[i].Type != want[i] {
			t.Errorf("token %d: got %s want %s (%q)", i, toks[i].Type, want[i], toks[i].Bytes)
		}
	}
}

func TestTokenizeSpans(t *testing.T) {
	src := []byte("a: 12")
	toks, err := Tokenize(nil, src)
	if err != nil {
		t.Fatal(err)
	}
	ends := []int{1, 2, 5}
	starts := []int{0, 1, 3}
	for i, tok := range toks {
		if tok.Pos.I != starts[i] || tok.End != ends[i] {
			t.Errorf("token %d: span [%d,%d), want [%d,%d)", i, tok.Pos.I, tok.End, starts[i], ends[i])
		}
	}
}

func TestTokenizeGreedyNumbers(t *testing.T) {
	// invalid runs still come back as a single number token so the
	// parser can report one error for the whole slice
	for _, s := range []string{"12q4", "1.2.3", "0x", "1__2", "-1-2", "3.four"} {
		toks, err := Tokenize(nil, []byte(s))
		if err != nil {
			t.Errorf("%q: %v", s, err)
			continue
		}
		if len(toks) != 1 || toks[0].Type != TNumber {
			t.Errorf("%q: got %d tokens", s, len(toks))
			continue
		}
		if string(toks[0].Bytes) != s {
			t.Errorf("%q: token %q", s, toks[0].Bytes)
		}
	}
}

func TestTokenizeErrors(t *testing.T) {
	cases := []struct {
		in   string
		want error
		off  int
	}{
		{`"abc`, ErrUnterminated, 0},
		{"\"ab\nc\"", ErrUnterminated, 0},
		{`'ab`, ErrUnterminated, 0},
		{"'a\nb'", ErrUnterminated, 0},
		{`"""ab"`, ErrUnterminated, 0},
		{`'''ab''`, ErrUnterminated, 0},
		{`"a\q"`, ErrBadEscape, 2},
		{`"a\u12"`, ErrBadUnicode, 2},
		{`"a\u12g4"`, ErrBadUnicode, 2},
		{`"a\u{}"`, ErrBadUnicode, 2},
		{`"a\u{1234567}"`, ErrBadUnicode, 2},
		{`"a\u{12`, ErrBadUnicode, 2},
		{"a; b", ErrUnexpectedChar, 1},
		{"/ x", ErrUnexpectedChar, 0},
		{"\"a\xffb\"", ErrBadUTF8, 2},
	}
	for _, c := range cases {
		_, err := Tokenize(nil, []byte(c.in))
		if err == nil {
			t.Errorf("%q: no error", c.in)
			continue
		}
		if !errors.Is(err, c.want) {
			t.Errorf("%q: got %v, want %v", c.in, err, c.want)
			continue
		}
		var te *TokenizeErr
		if !errors.As(err, &te) {
			t.Errorf("%q: not a TokenizeErr", c.in)
			continue
		}
		if te.Pos.I != c.off {
			t.Errorf("%q: error at offset %d, want %d", c.in, te.Pos.I, c.off)
		}
	}
}

func TestTokenizeComments(t *testing.T) {
	src := "// top\nx: 1 // trail\r\n"
	toks, err := Tokenize(nil, []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, tok := range toks {
		if tok.Type == TComment {
			got = append(got, string(tok.Bytes))
		}
	}
	if len(got) != 2 || got[0] != "// top" || got[1] != "// trail" {
		t.Errorf("comments %q", got)
	}
}

func TestEscapedStringContinuation(t *testing.T) {
	// a backslash at the end of a line in a multiline basic string
	// elides the break and the next line's indentation
	src := "\"\"\"\none \\\n\t\ttwo\n\"\"\""
	toks, err := Tokenize(nil, []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if got := toks[0].String(); got != "one two\n" {
		t.Errorf("got %q", got)
	}
}

func TestTokenString(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`"a\tb"`, "a\tb"},
		{`"\u{48}\u{69}"`, "Hi"},
		{`"\u{1F600}"`, "\U0001F600"},
		{`"\0"`, "\x00"},
		{`'a\tb'`, `a\tb`},
		{"\"\"\"\nab\ncd\n\"\"\"", "ab\ncd\n"},
		{"'''\na\\b\n'''", "a\\b\n"},
		{`"""ab"""`, "ab"},
	}
	for _, c := range cases {
		toks, err := Tokenize(nil, []byte(c.in))
		if err != nil {
			t.Errorf("%q: %v", c.in, err)
			continue
		}
		if got := toks[0].String(); got != c.want {
			t.Errorf("%q: got %q want %q", c.in, got, c.want)
		}
	}
}

func TestJSONEscapes(t *testing.T) {
	// the json escape forms are legal in basic strings, so any valid
	// json string literal reads the same here
	cases := []struct {
		in, want string
	}{
		{`"a\/b"`, "a/b"},
		{`"\b\f"`, "\b\f"},
		{`"\u0041"`, "A"},
		{`"\u00e9"`, "é"},
		{`"\ud83d\ude00"`, "\U0001F600"},
		{`"\u0041\u{42}"`, "AB"},
	}
	for _, c := range cases {
		toks, err := Tokenize(nil, []byte(c.in))
		if err != nil {
			t.Errorf("%q: %v", c.in, err)
			continue
		}
		if got := toks[0].String(); got != c.want {
			t.Errorf("%q: got %q want %q", c.in, got, c.want)
		}
	}
}

func TestQuote(t *testing.T) {
	cases := []struct {
		in           string
		allowLiteral bool
		want         string
	}{
		{"plain", false, `"plain"`},
		{"a\tb", false, `"a\tb"`},
		{`say "hi"`, true, `'say "hi"'`},
		{`say "hi"`, false, `"say \"hi\""`},
		{`both " and '`, true, `"both \" and '"`},
		{"\x01", false, `"\u{1}"`},
		{"del\x7f", false, `"del\u{7f}"`},
	}
	for _, c := range cases {
		if got := Quote(c.in, c.allowLiteral); got != c.want {
			t.Errorf("Quote(%q, %v) = %s, want %s", c.in, c.allowLiteral, got, c.want)
		}
	}
}

func TestIsIdentifier(t *testing.T) {
	for _, s := range []string{"a", "_x", "Az09", "snake_case"} {
		if !IsIdentifier(s) {
			t.Errorf("%q should be an identifier", s)
		}
	}
	for _, s := range []string{"", "9a", "a-b", "a b", "é"} {
		if IsIdentifier(s) {
			t.Errorf("%q should not be an identifier", s)
		}
	}
}

func TestPosLineCol(t *testing.T) {
	doc := NewPosDoc([]byte("ab\ncde\nf"))
	cases := []struct{ off, line, col int }{
		{0, 0, 0}, {1, 0, 1}, {2, 0, 2},
		{3, 1, 0}, {6, 1, 3},
		{7, 2, 0},
	}
	for _, c := range cases {
		l, col := doc.LineCol(c.off)
		if l != c.line || col != c.col {
			t.Errorf("offset %d: (%d,%d), want (%d,%d)", c.off, l, col, c.line, c.col)
		}
	}
}
