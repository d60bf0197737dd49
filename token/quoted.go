package token

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// QuotedToString decodes a basic string token, quotes included, into
// its text. The token is assumed to have been validated by Tokenize.
func QuotedToString(d []byte) string {
	return unescape(d[1 : len(d)-1])
}

// mStringToString decodes a multiline basic string token. A line break
// immediately after the opening quotes is dropped, and a backslash at
// the end of a line elides the break and the next line's leading
// whitespace.
func mStringToString(d []byte) string {
	return unescape(trimLeadingBreak(d[3 : len(d)-3]))
}

// mLitToString decodes a multiline literal string token. Only the line
// break immediately after the opening quotes is dropped.
func mLitToString(d []byte) string {
	return string(trimLeadingBreak(d[3 : len(d)-3]))
}

func trimLeadingBreak(d []byte) []byte {
	if len(d) > 0 && d[0] == '\n' {
		return d[1:]
	}
	if len(d) > 1 && d[0] == '\r' && d[1] == '\n' {
		return d[2:]
	}
	return d
}

func unescape(d []byte) string {
	if !strings.Contains(string(d), "\\") {
		return string(d)
	}
	var sb strings.Builder
	sb.Grow(len(d))
	for i := 0; i < len(d); {
		c := d[i]
		if c != '\\' {
			sb.WriteByte(c)
			i++
			continue
		}
		switch d[i+1] {
		case 'n':
			sb.WriteByte('\n')
			i += 2
		case 't':
			sb.WriteByte('\t')
			i += 2
		case 'r':
			sb.WriteByte('\r')
			i += 2
		case '\\':
			sb.WriteByte('\\')
			i += 2
		case '"':
			sb.WriteByte('"')
			i += 2
		case '\'':
			sb.WriteByte('\'')
			i += 2
		case '0':
			sb.WriteByte(0)
			i += 2
		case '/':
			sb.WriteByte('/')
			i += 2
		case 'b':
			sb.WriteByte('\b')
			i += 2
		case 'f':
			sb.WriteByte('\f')
			i += 2
		case 'u':
			if i+2 < len(d) && d[i+2] == '{' {
				// \u{H...H}, 1 to 6 hex digits
				j := i + 3
				v := rune(0)
				for j < len(d) && d[j] != '}' {
					v = v<<4 | rune(hexVal(d[j]))
					j++
				}
				sb.WriteRune(v)
				i = j + 1
				continue
			}
			// json-style \uXXXX; a surrogate pair decodes to one rune
			r := hex4(d[i+2:])
			i += 6
			if utf16.IsSurrogate(r) && i+6 <= len(d) && d[i] == '\\' && d[i+1] == 'u' && d[i+2] != '{' {
				if r2 := utf16.DecodeRune(r, hex4(d[i+2:])); r2 != utf8.RuneError {
					r = r2
					i += 6
				}
			}
			sb.WriteRune(r)
		case '\n', '\r':
			// line continuation: drop the break and the
			// indentation of the next line
			j := i + 2
			if d[i+1] == '\r' {
				j++
			}
			for j < len(d) && (d[j] == ' ' || d[j] == '\t') {
				j++
			}
			i = j
		}
	}
	return sb.String()
}

func hex4(d []byte) rune {
	v := rune(0)
	for k := 0; k < 4; k++ {
		v = v<<4 | rune(hexVal(d[k]))
	}
	return v
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

// NeedsEscape reports whether v contains characters a single-line
// basic string would have to escape.
func NeedsEscape(v string) bool {
	for _, r := range v {
		if r == '"' || r == '\\' || r < 0x20 || r == 0x7f {
			return true
		}
	}
	return false
}

// Quote encodes v as a single-line string token. When allowLiteral is
// set and v needs escaping that a literal string can hold verbatim,
// the 'literal' flavor is used instead.
func Quote(v string, allowLiteral bool) string {
	if allowLiteral && NeedsEscape(v) && literalSafe(v) {
		return "'" + v + "'"
	}
	var sb strings.Builder
	sb.Grow(len(v) + 2)
	sb.WriteByte('"')
	for _, r := range v {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case 0:
			sb.WriteString(`\0`)
		default:
			if r < 0x20 || r == 0x7f {
				sb.WriteString(`\u{`)
				writeHex(&sb, r)
				sb.WriteByte('}')
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func literalSafe(v string) bool {
	for _, r := range v {
		if r == '\'' || r == '\\' || r == '\n' || r < 0x20 || r == 0x7f {
			return false
		}
	}
	return utf8.ValidString(v)
}

func writeHex(sb *strings.Builder, r rune) {
	const digits = "0123456789abcdef"
	if r == 0 {
		sb.WriteByte('0')
		return
	}
	var buf [6]byte
	i := len(buf)
	for r > 0 {
		i--
		buf[i] = digits[r&0xf]
		r >>= 4
	}
	sb.Write(buf[i:])
}
