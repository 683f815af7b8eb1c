package oracle

import (
	"fmt"

	"rubysnap/internal/compat"
)

var openers = map[string]bool{
	"def": true, "class": true, "module": true, "begin": true,
	"if": true, "unless": true, "while": true, "until": true,
}

// modifiers open a block only at the start of an expression.
var modifiers = map[string]bool{
	"if": true, "unless": true, "while": true, "until": true,
}

var valueKeywords = map[string]bool{
	"end": true, "nil": true, "true": true, "false": true, "self": true,
	"__FILE__": true, "__LINE__": true,
}

// checkBalance verifies bracket nesting and keyword/end pairing.
func checkBalance(toks []compat.Token) error {
	var stack []compat.Token
	var prev *compat.Token
	afterSymbeg := false

	for i := range toks {
		t := toks[i]
		switch t.Event {
		case compat.EventSp, compat.EventComment:
			continue
		}
		isName := afterSymbeg || prev != nil && prev.Event == compat.EventPeriod
		afterSymbeg = t.Event == compat.EventSymBeg

		switch {
		case isName:
			// :end, x.class - имя, не ключевое слово
		case t.Event == compat.EventLParen || t.Event == compat.EventLBracket:
			stack = append(stack, t)
		case t.Event == compat.EventRParen || t.Event == compat.EventRBracket:
			want := compat.EventLParen
			if t.Event == compat.EventRBracket {
				want = compat.EventLBracket
			}
			if len(stack) == 0 || stack[len(stack)-1].Event != want {
				return syntaxErrorAt(t, fmt.Sprintf("unmatched %q", t.Text))
			}
			stack = stack[:len(stack)-1]
		case t.Event == compat.EventKw && t.Text == "end":
			if len(stack) == 0 || stack[len(stack)-1].Event != compat.EventKw {
				return syntaxErrorAt(t, "unexpected 'end'")
			}
			stack = stack[:len(stack)-1]
		case t.Event == compat.EventKw && openers[t.Text]:
			if modifiers[t.Text] && endsValue(prev) {
				break
			}
			stack = append(stack, t)
		}
		prev = &toks[i]
	}

	if len(stack) > 0 {
		open := stack[len(stack)-1]
		if open.Event == compat.EventKw {
			return syntaxErrorAt(open, fmt.Sprintf("missing 'end' for '%s'", open.Text))
		}
		return syntaxErrorAt(open, fmt.Sprintf("unclosed %q", open.Text))
	}
	return nil
}

// endsValue reports whether t can end an operand, which turns a following
// if/unless/while/until into a modifier.
func endsValue(t *compat.Token) bool {
	if t == nil {
		return false
	}
	switch t.Event {
	case compat.EventIdent, compat.EventConst, compat.EventIVar,
		compat.EventInt, compat.EventFloat, compat.EventTStringEnd,
		compat.EventRParen, compat.EventRBracket:
		return true
	case compat.EventKw:
		return valueKeywords[t.Text]
	}
	return false
}

func syntaxErrorAt(t compat.Token, msg string) *SyntaxError {
	return &SyntaxError{Line: t.Line, Col: t.Col, Msg: msg}
}
