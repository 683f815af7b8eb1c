package lexer

import (
	"rubysnap/internal/diag"
	"rubysnap/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword сканирует Ident/Const и проверяет через LookupKeyword.
// A trailing '?' or '!' belongs to the name unless it starts "!=" or "?=".
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.scanNameBody()
	if lx.cursor.Off > uint32(start) {
		lx.cursor.EatNameSuffix()
	}

	sp := lx.cursor.SpanFrom(start)
	if sp.Empty() {
		// не буква - пусть разбирается как оператор/мусор
		return lx.scanOperatorOrPunct()
	}
	text := lx.file.Slice(sp)

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	kind := token.Ident
	if c := text[0]; c >= 'A' && c <= 'Z' {
		kind = token.Const
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}

// scanNameBody consumes [A-Za-z_][A-Za-z0-9_]* plus Unicode letters/digits.
func (lx *Lexer) scanNameBody() {
	first := true
	for !lx.cursor.EOF() {
		r, sz := lx.peekRune()
		if sz == 0 {
			return
		}
		if r < utf8RuneSelf {
			b := byte(r)
			if first && !isIdentStartByte(b) || !first && !isIdentContinueByte(b) {
				return
			}
			lx.cursor.Bump()
		} else {
			if first && !isIdentStartRune(r) || !first && !isIdentContinueRune(r) {
				return
			}
			lx.bumpRune()
		}
		first = false
	}
}

// scanInstanceVariable: '@' name.
func (lx *Lexer) scanInstanceVariable() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '@'
	if lx.cursor.Peek() == '@' {
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnsupported, sp, "class variables are not supported")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.file.Slice(sp)}
	}
	nameStart := lx.cursor.Off
	lx.scanNameBody()
	sp := lx.cursor.SpanFrom(start)
	if lx.cursor.Off == nameStart {
		lx.errLex(diag.LexUnknownChar, sp, "'@' without instance variable name")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.file.Slice(sp)}
	}
	return token.Token{Kind: token.IVar, Span: sp, Text: lx.file.Slice(sp)}
}
