package lexer

import (
	"rubysnap/internal/compat"
	"rubysnap/internal/diag"
	"rubysnap/internal/source"
	"rubysnap/internal/token"
)

var punctEvents = map[token.Kind]string{
	token.LParen:    compat.EventLParen,
	token.RParen:    compat.EventRParen,
	token.LBracket:  compat.EventLBracket,
	token.RBracket:  compat.EventRBracket,
	token.Comma:     compat.EventComma,
	token.Dot:       compat.EventPeriod,
	token.Semicolon: compat.EventSemicolon,
}

// Compat lexes the whole file and flattens tokens and trivia into the
// Ripper-style event stream. Lexical errors are returned alongside; tokens
// that failed to lex are left out of the stream.
func Compat(file *source.File) ([]compat.Token, []diag.Diagnostic) {
	bag := diag.NewBag(0)
	lx := New(file, Options{Reporter: diag.BagReporter{Bag: bag}})

	out := make([]compat.Token, 0, len(file.Content)/2)
	emit := func(off uint32, event, text string) {
		pos := file.Position(off)
		out = append(out, compat.Token{Line: pos.Line, Col: pos.Col - 1, Event: event, Text: text})
	}

	for {
		tok := lx.Next()
		for _, tr := range tok.Leading {
			switch tr.Kind {
			case token.TriviaSpace:
				emit(tr.Span.Start, compat.EventSp, tr.Text)
			case token.TriviaComment:
				emit(tr.Span.Start, compat.EventComment, tr.Text)
			}
		}
		if tok.Kind.IsEOF() {
			break
		}
		start := tok.Span.Start

		switch kind := tok.Kind; {
		case kind == token.Invalid:
			continue
		case kind == token.Newline:
			emit(start, compat.EventNl, tok.Text)
		case kind == token.Ident:
			emit(start, compat.EventIdent, tok.Text)
		case kind == token.Const:
			emit(start, compat.EventConst, tok.Text)
		case kind == token.IVar:
			emit(start, compat.EventIVar, tok.Text)
		case kind.IsKeyword():
			emit(start, compat.EventKw, tok.Text)
		case kind == token.IntLit:
			emit(start, compat.EventInt, tok.Text)
		case kind == token.FloatLit:
			emit(start, compat.EventFloat, tok.Text)
		case kind == token.StringLit:
			quote := tok.Text[:1]
			emit(start, compat.EventTStringBeg, quote)
			if body := tok.Text[1 : len(tok.Text)-1]; body != "" {
				emit(start+1, compat.EventTStringContent, body)
			}
			emit(tok.Span.End-1, compat.EventTStringEnd, quote)
		case kind == token.SymbolLit:
			emit(start, compat.EventSymBeg, ":")
			emit(start+1, nameEvent(tok.Text[1:]), tok.Text[1:])
		case kind.IsOperator():
			emit(start, compat.EventOp, tok.Text)
		default:
			if ev, ok := punctEvents[kind]; ok {
				emit(start, ev, tok.Text)
			}
		}
	}
	return out, bag.Items()
}

func nameEvent(name string) string {
	if _, ok := token.LookupKeyword(name); ok {
		return compat.EventKw
	}
	if c := name[0]; c >= 'A' && c <= 'Z' {
		return compat.EventConst
	}
	return compat.EventIdent
}
