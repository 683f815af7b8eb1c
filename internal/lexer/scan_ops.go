package lexer

import (
	"rubysnap/internal/diag"
	"rubysnap/internal/token"
)

// scanColon: "::", ":name" symbols; anything else after ':' is unsupported.
func (lx *Lexer) scanColon() token.Token {
	start := lx.cursor.Mark()
	if lx.try2(':', ':') {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.ColonColon, Span: sp, Text: lx.file.Slice(sp)}
	}
	lx.cursor.Bump() // ':'
	nameStart := lx.cursor.Off
	lx.scanNameBody()
	if lx.cursor.Off > nameStart {
		if b := lx.cursor.Peek(); b == '?' || b == '!' {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.SymbolLit, Span: sp, Text: lx.file.Slice(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnsupported, sp, "only ':name' symbols are supported")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.file.Slice(sp)}
}

// Жадность: сначала 2-символьные, затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.file.Slice(sp)}
	}

	if lx.try2('<', '<') {
		// heredoc и сдвиги не поддерживаем; съедаем до конца строки
		for !lx.cursor.EOF() && !lx.atLineBreak() {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnsupported, sp, "heredocs and '<<' are not supported")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.file.Slice(sp)}
	}

	switch {
	case lx.try2('*', '*'):
		return emit(token.StarStar)
	case lx.try2('&', '&'):
		return emit(token.AndAnd)
	case lx.try2('|', '|'):
		return emit(token.OrOr)
	case lx.try2('=', '='):
		return emit(token.EqEq)
	case lx.try2('!', '='):
		return emit(token.BangEq)
	case lx.try2('<', '='):
		return emit(token.LtEq)
	case lx.try2('>', '='):
		return emit(token.GtEq)
	case lx.try2('+', '='):
		return emit(token.PlusAssign)
	case lx.try2('-', '='):
		return emit(token.MinusAssign)
	case lx.try2('*', '='):
		return emit(token.StarAssign)
	case lx.try2('/', '='):
		return emit(token.SlashAssign)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '%':
		return emit(token.Percent)
	case '=':
		return emit(token.Assign)
	case '!':
		return emit(token.Bang)
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case ';':
		return emit(token.Semicolon)
	case ',':
		return emit(token.Comma)
	case '.':
		return emit(token.Dot)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case '{', '}', '?', '|', '&', '$', '`', '~', '^':
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnsupported, sp, "unsupported character '"+string(ch)+"'")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.file.Slice(sp)}
	default:
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.file.Slice(sp)}
	}
}
