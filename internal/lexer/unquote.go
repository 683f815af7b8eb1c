package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// ErrNotQuoted is returned by Unquote for text that is not a complete literal.
var ErrNotQuoted = errors.New("not a quoted string literal")

// Unquote returns the raw bytes denoted by a string literal's source text.
// Single-quoted literals only understand \\ and \'; double-quoted ones
// support the usual C-like escapes plus \e, \s, \xHH, \uXXXX and \u{...}.
func Unquote(text string) ([]byte, error) {
	if len(text) < 2 || text[0] != text[len(text)-1] || (text[0] != '"' && text[0] != '\'') {
		return nil, ErrNotQuoted
	}
	quote := text[0]
	body := text[1 : len(text)-1]
	out := make([]byte, 0, len(body))

	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			out = append(out, c)
			continue
		}
		i++
		e := body[i]
		if quote == '\'' {
			if e != '\\' && e != '\'' {
				out = append(out, '\\')
			}
			out = append(out, e)
			continue
		}
		switch e {
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case 'r':
			out = append(out, '\r')
		case '0':
			out = append(out, 0)
		case 'e':
			out = append(out, 0x1b)
		case 's':
			out = append(out, ' ')
		case 'a':
			out = append(out, 0x07)
		case 'b':
			out = append(out, 0x08)
		case 'f':
			out = append(out, 0x0c)
		case 'v':
			out = append(out, 0x0b)
		case '\n':
			// line continuation inside the literal
		case 'x':
			n := hexRun(body[i+1:], 2)
			if n == 0 {
				return nil, fmt.Errorf("invalid \\x escape at byte %d", i)
			}
			v, _ := strconv.ParseUint(body[i+1:i+1+n], 16, 8)
			out = append(out, byte(v))
			i += n
		case 'u':
			r, used, err := unicodeEscape(body[i+1:])
			if err != nil {
				return nil, fmt.Errorf("invalid \\u escape at byte %d: %w", i, err)
			}
			out = utf8.AppendRune(out, r)
			i += used
		default:
			out = append(out, e)
		}
	}
	return out, nil
}

func hexRun(s string, limit int) int {
	n := 0
	for n < len(s) && n < limit && isHex(s[n]) {
		n++
	}
	return n
}

func unicodeEscape(s string) (rune, int, error) {
	if len(s) > 0 && s[0] == '{' {
		end := 1
		for end < len(s) && s[end] != '}' {
			end++
		}
		if end >= len(s) || end == 1 || hexRun(s[1:end], 6) != end-1 {
			return 0, 0, errors.New("malformed \\u{...}")
		}
		v, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil || !utf8.ValidRune(rune(v)) {
			return 0, 0, errors.New("code point out of range")
		}
		return rune(v), end + 1, nil
	}
	if hexRun(s, 4) != 4 {
		return 0, 0, errors.New("expected four hex digits")
	}
	v, _ := strconv.ParseUint(s[:4], 16, 32)
	return rune(v), 4, nil
}
