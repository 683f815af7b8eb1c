// Package compat defines the token shape shared by the engine's
// compatibility lexer and the reference oracle: a Ripper-style
// (line, column, event, text) tuple. Neither producer depends on the other;
// this package is the only thing they have in common.
package compat

import (
	"fmt"
	"strings"
)

// Event names, following Ripper's scanner event naming.
const (
	EventIdent          = "on_ident"
	EventConst          = "on_const"
	EventIVar           = "on_ivar"
	EventKw             = "on_kw"
	EventInt            = "on_int"
	EventFloat          = "on_float"
	EventTStringBeg     = "on_tstring_beg"
	EventTStringContent = "on_tstring_content"
	EventTStringEnd     = "on_tstring_end"
	EventSymBeg         = "on_symbeg"
	EventOp             = "on_op"
	EventLParen         = "on_lparen"
	EventRParen         = "on_rparen"
	EventLBracket       = "on_lbracket"
	EventRBracket       = "on_rbracket"
	EventComma          = "on_comma"
	EventPeriod         = "on_period"
	EventSemicolon      = "on_semicolon"
	EventNl             = "on_nl"
	EventSp             = "on_sp"
	EventComment        = "on_comment"
)

// Token is one scanner event.
type Token struct {
	Line  uint32 // 1-based
	Col   uint32 // 0-based byte column
	Event string
	Text  string
}

// Equal is the token equivalence used by the lex compatibility check:
// identical position, event name and text.
func Equal(a, b Token) bool {
	return a.Line == b.Line && a.Col == b.Col && a.Event == b.Event && a.Text == b.Text
}

func (t Token) String() string {
	return fmt.Sprintf("[[%d, %d], %s, %q]", t.Line, t.Col, t.Event, t.Text)
}

// Format renders tokens one per line, in the same notation as String.
func Format(toks []Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.String())
		b.WriteByte('\n')
	}
	return b.String()
}
