package lexer

import (
	"rubysnap/internal/diag"
	"rubysnap/internal/token"
)

// scanString: '...' or "...". Line breaks are allowed inside. Interpolation
// ("#{") in double quotes is reported as unsupported but the literal is still
// consumed so lexing can continue.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == quote {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.file.Slice(sp)}
		}
		if b == '\\' {
			// escape валидируем позже, в Unquote
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if quote == '"' && b == '#' {
			if lx.cursor.PeekAt(1) == '{' {
				sp := lx.cursor.SpanFrom(lx.cursor.Mark())
				sp.End += 2
				lx.errLex(diag.LexUnsupported, sp, "string interpolation is not supported")
			}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.file.Slice(sp)}
}
