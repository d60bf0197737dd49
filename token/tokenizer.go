package token

import (
	"unicode/utf8"
)

// Tokenize scans src into tokens, appending to dst. Comments are
// returned as tokens. Whitespace separates tokens and is otherwise
// discarded. src must be valid UTF-8.
func Tokenize(dst []Token, src []byte) ([]Token, error) {
	doc := NewPosDoc(src)
	if !utf8.Valid(src) {
		off := 0
		for off < len(src) {
			r, sz := utf8.DecodeRune(src[off:])
			if r == utf8.RuneError && sz <= 1 {
				break
			}
			off += sz
		}
		return nil, NewTokenizeErr(ErrBadUTF8, doc.Pos(off))
	}
	n := len(src)
	i := 0
	for i < n {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f':
			i++
		case c == '/':
			if i+1 >= n || src[i+1] != '/' {
				return nil, NewTokenizeErr(ErrUnexpectedChar, doc.Pos(i))
			}
			j := i
			for j < n && src[j] != '\n' {
				j++
			}
			end := j
			if end > i && src[end-1] == '\r' {
				end--
			}
			dst = append(dst, Token{Type: TComment, Pos: doc.Pos(i), End: end, Bytes: src[i:end]})
			i = j
		case c == '{':
			dst, i = punct(dst, src, doc, i, TLCurl)
		case c == '}':
			dst, i = punct(dst, src, doc, i, TRCurl)
		case c == '[':
			dst, i = punct(dst, src, doc, i, TLSquare)
		case c == ']':
			dst, i = punct(dst, src, doc, i, TRSquare)
		case c == '(':
			dst, i = punct(dst, src, doc, i, TLParen)
		case c == ')':
			dst, i = punct(dst, src, doc, i, TRParen)
		case c == ':':
			dst, i = punct(dst, src, doc, i, TColon)
		case c == ',':
			dst, i = punct(dst, src, doc, i, TComma)
		case c == '"':
			var (
				end int
				err error
				tt  TokenType
			)
			if i+2 < n && src[i+1] == '"' && src[i+2] == '"' {
				tt = TMString
				end, err = scanMString(src, i, doc)
			} else {
				tt = TString
				end, err = scanQuoted(src, i, doc)
			}
			if err != nil {
				return nil, err
			}
			dst = append(dst, Token{Type: tt, Pos: doc.Pos(i), End: end, Bytes: src[i:end]})
			i = end
		case c == '\'':
			var (
				end int
				err error
				tt  TokenType
			)
			if i+2 < n && src[i+1] == '\'' && src[i+2] == '\'' {
				tt = TMLit
				end, err = scanMLit(src, i, doc)
			} else {
				tt = TLiteral
				end, err = scanLiteral(src, i, doc)
			}
			if err != nil {
				return nil, err
			}
			dst = append(dst, Token{Type: tt, Pos: doc.Pos(i), End: end, Bytes: src[i:end]})
			i = end
		case identStart(c):
			j := i + 1
			for j < n && identPart(src[j]) {
				j++
			}
			dst = append(dst, Token{Type: TIdent, Pos: doc.Pos(i), End: j, Bytes: src[i:j]})
			i = j
		case numberStart(c):
			j := i + 1
			for j < n && numberPart(src[j]) {
				j++
			}
			dst = append(dst, Token{Type: TNumber, Pos: doc.Pos(i), End: j, Bytes: src[i:j]})
			i = j
		default:
			return nil, NewTokenizeErr(ErrUnexpectedChar, doc.Pos(i))
		}
	}
	return dst, nil
}

func punct(dst []Token, src []byte, doc *PosDoc, i int, tt TokenType) ([]Token, int) {
	return append(dst, Token{Type: tt, Pos: doc.Pos(i), End: i + 1, Bytes: src[i : i+1]}), i + 1
}

func identStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func identPart(c byte) bool {
	return identStart(c) || (c >= '0' && c <= '9')
}

// Number tokens are scanned greedily; whether the slice is actually a
// valid number is decided later, so that "12q4" reports an invalid
// number literal spanning the whole run rather than two tokens.
func numberStart(c byte) bool {
	return c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9')
}

func numberPart(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c == '.' || c == '+' || c == '-' || c == '_':
		return true
	default:
		return false
	}
}

// IsIdentifier reports whether v matches [A-Za-z_][A-Za-z0-9_]*.
func IsIdentifier(v string) bool {
	if v == "" {
		return false
	}
	if !identStart(v[0]) {
		return false
	}
	for i := 1; i < len(v); i++ {
		if !identPart(v[i]) {
			return false
		}
	}
	return true
}

// scanQuoted scans a single-line basic string starting at the opening
// quote, validating escape sequences. Returns the offset past the
// closing quote.
func scanQuoted(d []byte, i int, doc *PosDoc) (int, error) {
	n := len(d)
	j := i + 1
	for j < n {
		switch d[j] {
		case '\n':
			return 0, NewTokenizeErr(ErrUnterminated, doc.Pos(i))
		case '"':
			return j + 1, nil
		case '\\':
			var err error
			j, err = scanEscape(d, j, doc, false)
			if err != nil {
				return 0, err
			}
		default:
			j++
		}
	}
	return 0, NewTokenizeErr(ErrUnterminated, doc.Pos(i))
}

// scanEscape validates the escape sequence starting at the backslash
// at offset j and returns the offset past it. The json escapes \/,
// \b, \f, and 4-digit \uXXXX are accepted alongside the native forms,
// keeping valid json valid here. In multiline strings a backslash
// before a line break is a line continuation.
func scanEscape(d []byte, j int, doc *PosDoc, multiline bool) (int, error) {
	n := len(d)
	if j+1 >= n {
		return 0, NewTokenizeErr(ErrUnterminated, doc.Pos(j))
	}
	switch d[j+1] {
	case 'n', 't', 'r', '\\', '"', '\'', '0', '/', 'b', 'f':
		return j + 2, nil
	case 'u':
		k := j + 2
		if k < n && d[k] == '{' {
			k++
			h := 0
			for k < n && isHex(d[k]) {
				k++
				h++
			}
			if h == 0 || h > 6 || k >= n || d[k] != '}' {
				return 0, NewTokenizeErr(ErrBadUnicode, doc.Pos(j))
			}
			return k + 1, nil
		}
		// json-style \uXXXX, exactly 4 hex digits
		h := 0
		for k < n && h < 4 && isHex(d[k]) {
			k++
			h++
		}
		if h != 4 {
			return 0, NewTokenizeErr(ErrBadUnicode, doc.Pos(j))
		}
		return k, nil
	case '\n':
		if multiline {
			return j + 2, nil
		}
		return 0, NewTokenizeErr(ErrBadEscape, doc.Pos(j))
	case '\r':
		if multiline && j+2 < n && d[j+2] == '\n' {
			return j + 3, nil
		}
		return 0, NewTokenizeErr(ErrBadEscape, doc.Pos(j))
	default:
		return 0, NewTokenizeErr(ErrBadEscape, doc.Pos(j))
	}
}

func scanMString(d []byte, i int, doc *PosDoc) (int, error) {
	n := len(d)
	j := i + 3
	for j < n {
		switch d[j] {
		case '"':
			if j+2 < n && d[j+1] == '"' && d[j+2] == '"' {
				return j + 3, nil
			}
			j++
		case '\\':
			var err error
			j, err = scanEscape(d, j, doc, true)
			if err != nil {
				return 0, err
			}
		default:
			j++
		}
	}
	return 0, NewTokenizeErr(ErrUnterminated, doc.Pos(i))
}

func scanLiteral(d []byte, i int, doc *PosDoc) (int, error) {
	n := len(d)
	j := i + 1
	for j < n {
		switch d[j] {
		case '\'':
			return j + 1, nil
		case '\n':
			return 0, NewTokenizeErr(ErrUnterminated, doc.Pos(i))
		default:
			j++
		}
	}
	return 0, NewTokenizeErr(ErrUnterminated, doc.Pos(i))
}

func scanMLit(d []byte, i int, doc *PosDoc) (int, error) {
	n := len(d)
	j := i + 3
	for j < n {
		if d[j] == '\'' && j+2 < n && d[j+1] == '\'' && d[j+2] == '\'' {
			return j + 3, nil
		}
		j++
	}
	return 0, NewTokenizeErr(ErrUnterminated, doc.Pos(i))
}

func isHex(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f':
		return true
	case c >= 'A' && c <= 'F':
		return true
	default:
		return false
	}
}
