package lexer

import (
	"rubysnap/internal/diag"
	"rubysnap/internal/token"
)

// scanNumber: digits with single '_' separators, optional ".digits" fraction
// and optional exponent. "1." is an integer followed by '.', so method calls
// on literals keep working.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit
	ok := lx.scanDigits()

	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		ok = lx.scanDigits() && ok
		kind = token.FloatLit
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if isDec(lx.cursor.Peek()) {
			ok = lx.scanDigits() && ok
			kind = token.FloatLit
		} else {
			lx.cursor.Reset(mark)
		}
	}

	sp := lx.cursor.SpanFrom(start)
	if !ok {
		lx.errLex(diag.LexBadNumber, sp, "trailing '_' in number")
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.file.Slice(sp)}
}

// scanDigits consumes [0-9](_?[0-9])*; returns false on a dangling '_'.
func (lx *Lexer) scanDigits() bool {
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
		if lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
			if !isDec(lx.cursor.Peek()) {
				// поглощаем все подряд '_' чтобы не зациклиться
				for lx.cursor.Peek() == '_' {
					lx.cursor.Bump()
				}
				return false
			}
		}
	}
	return true
}
