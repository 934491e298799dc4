package bundle

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"vimagination.zapto.org/javascript"
)

// unquote decodes a JavaScript string literal, quotes included.
//
// javascript.Unquote handles well-formed literals. tree-sitter recovers from
// bad escapes, so literals it rejects are decoded by unquoteLenient, which
// keeps malformed escapes as written. Results holding U+FFFD are decoded
// again leniently so escaped surrogate pairs join into one rune.
func unquote(lit string) string {
	if !strings.Contains(lit, `\`) {
		return trimQuotes(lit)
	}
	s, err := javascript.Unquote(lit)
	if err != nil || strings.ContainsRune(s, utf8.RuneError) {
		return unquoteLenient(lit)
	}
	return s
}

func trimQuotes(lit string) string {
	if len(lit) >= 2 && (lit[0] == '"' || lit[0] == '\'') && lit[len(lit)-1] == lit[0] {
		return lit[1 : len(lit)-1]
	}
	return lit
}

func unquoteLenient(lit string) string {
	lit = trimQuotes(lit)

	var b strings.Builder
	b.Grow(len(lit))
	var pending rune = -1 // high surrogate waiting for its pair

	flush := func() {
		if pending >= 0 {
			b.WriteRune(utf16.DecodeRune(pending, 0))
			pending = -1
		}
	}
	emit := func(r rune) {
		if pending >= 0 {
			if utf16.IsSurrogate(r) && r >= 0xDC00 {
				b.WriteRune(utf16.DecodeRune(pending, r))
				pending = -1
				return
			}
			flush()
		}
		if r >= 0xD800 && r < 0xDC00 {
			pending = r
			return
		}
		b.WriteRune(r)
	}

	for i := 0; i < len(lit); {
		c := lit[i]
		if c != '\\' || i+1 >= len(lit) {
			flush()
			b.WriteByte(c)
			i++
			continue
		}

		i++ // backslash
		switch e := lit[i]; e {
		case 'n':
			emit('\n')
			i++
		case 't':
			emit('\t')
			i++
		case 'r':
			emit('\r')
			i++
		case 'b':
			emit('\b')
			i++
		case 'f':
			emit('\f')
			i++
		case 'v':
			emit('\v')
			i++
		case '\r':
			i++
			if i < len(lit) && lit[i] == '\n' {
				i++
			}
		case '\n':
			i++
		case 'x':
			if r, ok := hexValue(lit, i+1, 2); ok {
				emit(r)
				i += 3
			} else {
				emit('x')
				i++
			}
		case 'u':
			r, n := unicodeEscape(lit[i+1:])
			if n == 0 {
				emit('u')
				i++
				break
			}
			emit(r)
			i += 1 + n
		default:
			if e >= '0' && e <= '7' {
				r, n := octalEscape(lit[i:])
				emit(r)
				i += n
				break
			}
			// Line continuation with U+2028/U+2029, or an identity escape.
			if strings.HasPrefix(lit[i:], "\u2028") || strings.HasPrefix(lit[i:], "\u2029") {
				i += 3
				break
			}
			flush()
			b.WriteByte(e)
			i++
		}
	}
	flush()
	return b.String()
}

// unicodeEscape decodes the part after "\u": either XXXX or {X...}.
func unicodeEscape(s string) (rune, int) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 2 || end > 7 {
			return 0, 0
		}
		r, ok := hexValue(s, 1, end-1)
		if !ok || r > 0x10FFFF {
			return 0, 0
		}
		return r, end + 1
	}
	r, ok := hexValue(s, 0, 4)
	if !ok {
		return 0, 0
	}
	return r, 4
}

func octalEscape(s string) (rune, int) {
	var r rune
	n := 0
	for n < len(s) && n < 3 && s[n] >= '0' && s[n] <= '7' {
		next := r*8 + rune(s[n]-'0')
		if next > 0xFF {
			break
		}
		r = next
		n++
	}
	return r, n
}

func hexValue(s string, start, n int) (rune, bool) {
	if start+n > len(s) {
		return 0, false
	}
	var r rune
	for _, c := range []byte(s[start : start+n]) {
		var d byte
		switch {
		case c >= '0' && c <= '9':
			d = c - '0'
		case c >= 'a' && c <= 'f':
			d = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0, false
		}
		r = r<<4 | rune(d)
	}
	return r, true
}
