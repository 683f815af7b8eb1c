package oracle

import (
	"regexp"

	"rubysnap/internal/compat"
)

type ruleKind uint8

const (
	ruleEmit    ruleKind = iota // один токен с фиксированным событием
	ruleName                    // ident / const / kw по тексту
	ruleNumber                  // int или float по группам
	ruleString                  // beg, content, end
	ruleSymbol                  // symbeg + имя
	ruleReject                  // известная, но неподдерживаемая конструкция
	ruleTrimCR                  // как ruleEmit, но '\r' перед '\n' не берём
	ruleTrimSfx                 // как ruleName, но '?'/'!' перед '=' не берём
)

type rule struct {
	re    *regexp.Regexp
	kind  ruleKind
	event string
	msg   string
}

// rules are tried in order; the first anchored match wins.
var rules = []rule{
	{re: regexp.MustCompile(`\A\r?\n`), kind: ruleEmit, event: compat.EventNl},
	{re: regexp.MustCompile(`\A(?:[ \t\r]|\\\r?\n)+`), kind: ruleTrimCR, event: compat.EventSp},
	{re: regexp.MustCompile(`\A#[^\n]*`), kind: ruleTrimCR, event: compat.EventComment},
	{re: regexp.MustCompile(`\A@[\p{L}_][\p{L}\p{Nd}_]*`), kind: ruleEmit, event: compat.EventIVar},
	{re: regexp.MustCompile(`\A@@`), kind: ruleReject, msg: "class variables are outside the grammar"},
	{re: regexp.MustCompile(`\A[0-9](?:_?[0-9])*(\.[0-9](?:_?[0-9])*)?([eE][+-]?[0-9](?:_?[0-9])*)?`), kind: ruleNumber},
	{re: regexp.MustCompile(`\A[\p{L}_][\p{L}\p{Nd}_]*[?!]?`), kind: ruleTrimSfx},
	{re: regexp.MustCompile(`(?s)\A"(?:[^"\\]|\\.)*"`), kind: ruleString},
	{re: regexp.MustCompile(`(?s)\A'(?:[^'\\]|\\.)*'`), kind: ruleString},
	{re: regexp.MustCompile(`\A::`), kind: ruleEmit, event: compat.EventOp},
	{re: regexp.MustCompile(`\A:[\p{L}_][\p{L}\p{Nd}_]*[?!]?`), kind: ruleSymbol},
	{re: regexp.MustCompile(`\A<<`), kind: ruleReject, msg: "heredocs are outside the grammar"},
	{re: regexp.MustCompile(`\A(?:\*\*|&&|\|\||==|!=|<=|>=|\+=|-=|\*=|/=|[-+*/%=!<>])`), kind: ruleEmit, event: compat.EventOp},
	{re: regexp.MustCompile(`\A\(`), kind: ruleEmit, event: compat.EventLParen},
	{re: regexp.MustCompile(`\A\)`), kind: ruleEmit, event: compat.EventRParen},
	{re: regexp.MustCompile(`\A\[`), kind: ruleEmit, event: compat.EventLBracket},
	{re: regexp.MustCompile(`\A\]`), kind: ruleEmit, event: compat.EventRBracket},
	{re: regexp.MustCompile(`\A,`), kind: ruleEmit, event: compat.EventComma},
	{re: regexp.MustCompile(`\A\.`), kind: ruleEmit, event: compat.EventPeriod},
	{re: regexp.MustCompile(`\A;`), kind: ruleEmit, event: compat.EventSemicolon},
}

var keywords = map[string]struct{}{
	"def": {}, "end": {}, "if": {}, "elsif": {}, "else": {}, "unless": {},
	"while": {}, "until": {}, "return": {}, "nil": {}, "true": {}, "false": {},
	"self": {}, "and": {}, "or": {}, "not": {}, "class": {}, "module": {},
	"then": {}, "do": {}, "begin": {}, "__FILE__": {}, "__LINE__": {},
}

func nameEvent(name string) string {
	if _, ok := keywords[name]; ok {
		return compat.EventKw
	}
	if c := name[0]; c >= 'A' && c <= 'Z' {
		return compat.EventConst
	}
	return compat.EventIdent
}
