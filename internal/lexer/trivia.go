package lexer

import (
	"rubysnap/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
//   - ' ', '\t', lone '\r' and "\\\n" coalesce into one TriviaSpace
//   - '#' up to the line break -> TriviaComment
//
// Line breaks are significant tokens and stop collection.
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if lx.atSpace() {
			for lx.atSpace() {
				if lx.cursor.Eat('\\') {
					lx.cursor.EatLineBreak()
					continue
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaSpace,
				Span: sp,
				Text: lx.file.Slice(sp),
			})
			continue
		}

		if b == '#' {
			for !lx.cursor.EOF() && !lx.atLineBreak() {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaComment,
				Span: sp,
				Text: lx.file.Slice(sp),
			})
			continue
		}

		break
	}
}

// atSpace: ' ', '\t', '\r' not followed by '\n', or a backslash line continuation.
func (lx *Lexer) atSpace() bool {
	switch lx.cursor.Peek() {
	case ' ', '\t':
		return true
	case '\r':
		return !lx.atLineBreak()
	case '\\':
		return lx.cursor.AtContinuation()
	}
	return false
}

func (lx *Lexer) atLineBreak() bool { return lx.cursor.LineBreakLen() > 0 }
