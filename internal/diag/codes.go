package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0
	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexBadEscape          Code = 1004
	LexUnsupported        Code = 1005

	// Парсерные
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectEnd        Code = 2002
	SynUnclosedParen    Code = 2003
	SynUnclosedBracket  Code = 2004
	SynExpectIdentifier Code = 2005
	SynExpectExpression Code = 2006
	SynExpectTerminator Code = 2007
	SynInvalidAssign    Code = 2008
	SynExpectConstant   Code = 2009

	IOLoadFileError Code = 4001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:           "Unknown error",
		LexInfo:               "Lexical information",
		LexUnknownChar:        "Unknown character",
		LexUnterminatedString: "Unterminated string literal",
		LexBadNumber:          "Malformed number literal",
		LexBadEscape:          "Invalid escape sequence",
		LexUnsupported:        "Unsupported syntax",
		SynInfo:               "Syntax information",
		SynUnexpectedToken:    "Unexpected token",
		SynExpectEnd:          "Missing 'end'",
		SynUnclosedParen:      "Unclosed parenthesis",
		SynUnclosedBracket:    "Unclosed bracket",
		SynExpectIdentifier:   "Expected identifier",
		SynExpectExpression:   "Expected expression",
		SynExpectTerminator:   "Expected newline or ';'",
		SynInvalidAssign:      "Invalid assignment target",
		SynExpectConstant:     "Expected constant name",
		IOLoadFileError:       "I/O load file error",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
