package tsparse

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// unquote strips the surrounding quotes of a string literal and decodes its
// escape sequences the way the TypeScript compiler computes a literal's text.
func unquote(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	body := raw[1 : len(raw)-1]
	if !strings.Contains(body, `\`) {
		return body
	}

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		switch e := body[i]; e {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\r':
			// line continuation, \r\n counts as one
			if i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
		case '\n':
		case 'x':
			if r, ok := parseHex(body, i+1, 2); ok {
				b.WriteRune(r)
				i += 2
			} else {
				b.WriteByte(e)
			}
		case 'u':
			r, n := parseUnicodeEscape(body[i+1:])
			if n == 0 {
				b.WriteByte(e)
				continue
			}
			b.WriteRune(r)
			i += n
		default:
			b.WriteByte(e)
		}
	}
	return b.String()
}

// parseUnicodeEscape decodes the part after `\u`: either four hex digits or
// a braced code point. It returns the rune and the number of bytes consumed.
func parseUnicodeEscape(s string) (rune, int) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 2 {
			return 0, 0
		}
		v, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil || v > utf8.MaxRune {
			return 0, 0
		}
		return rune(v), end + 1
	}
	if r, ok := parseHex(s, 0, 4); ok {
		return r, 4
	}
	return 0, 0
}

func parseHex(s string, start, n int) (rune, bool) {
	if start+n > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[start:start+n], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}
