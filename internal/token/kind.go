package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline is a significant line break ("\n" or "\r\n").
	Newline

	// Ident is a local name or method name.
	Ident
	// Const is a name starting with an upper-case ASCII letter.
	Const
	// IVar is an instance variable such as @name.
	IVar

	// IntLit represents an integer literal such as 1_000.
	IntLit
	// FloatLit represents a float literal such as 1.5 or 2e10.
	FloatLit
	// StringLit covers the whole quoted literal, quotes included.
	StringLit
	// SymbolLit covers ':' plus the symbol name.
	SymbolLit

	KwDef    // def
	KwEnd    // end
	KwIf     // if
	KwElsif  // elsif
	KwElse   // else
	KwUnless // unless
	KwWhile  // while
	KwUntil  // until
	KwReturn // return
	KwNil    // nil
	KwTrue   // true
	KwFalse  // false
	KwSelf   // self
	KwAnd    // and
	KwOr     // or
	KwNot    // not
	KwClass  // class
	KwModule // module
	KwThen   // then
	KwDo     // do
	KwBegin  // begin
	KwFile   // __FILE__
	KwLine   // __LINE__

	Plus        // +
	Minus       // -
	Star        // *
	StarStar    // **
	Slash       // /
	Percent     // %
	Assign      // =
	PlusAssign  // +=
	MinusAssign // -=
	StarAssign  // *=
	SlashAssign // /=
	EqEq        // ==
	BangEq      // !=
	Bang        // !
	Lt          // <
	LtEq        // <=
	Gt          // >
	GtEq        // >=
	AndAnd      // &&
	OrOr        // ||
	ColonColon  // ::
	LParen      // (
	RParen      // )
	LBracket    // [
	RBracket    // ]
	Comma       // ,
	Dot         // .
	Semicolon   // ;
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Newline:     "Newline",
	Ident:       "Ident",
	Const:       "Const",
	IVar:        "IVar",
	IntLit:      "IntLit",
	FloatLit:    "FloatLit",
	StringLit:   "StringLit",
	SymbolLit:   "SymbolLit",
	KwDef:       "def",
	KwEnd:       "end",
	KwIf:        "if",
	KwElsif:     "elsif",
	KwElse:      "else",
	KwUnless:    "unless",
	KwWhile:     "while",
	KwUntil:     "until",
	KwReturn:    "return",
	KwNil:       "nil",
	KwTrue:      "true",
	KwFalse:     "false",
	KwSelf:      "self",
	KwAnd:       "and",
	KwOr:        "or",
	KwNot:       "not",
	KwClass:     "class",
	KwModule:    "module",
	KwThen:      "then",
	KwDo:        "do",
	KwBegin:     "begin",
	KwFile:      "__FILE__",
	KwLine:      "__LINE__",
	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	StarStar:    "**",
	Slash:       "/",
	Percent:     "%",
	Assign:      "=",
	PlusAssign:  "+=",
	MinusAssign: "-=",
	StarAssign:  "*=",
	SlashAssign: "/=",
	EqEq:        "==",
	BangEq:      "!=",
	Bang:        "!",
	Lt:          "<",
	LtEq:        "<=",
	Gt:          ">",
	GtEq:        ">=",
	AndAnd:      "&&",
	OrOr:        "||",
	ColonColon:  "::",
	LParen:      "(",
	RParen:      ")",
	LBracket:    "[",
	RBracket:    "]",
	Comma:       ",",
	Dot:         ".",
	Semicolon:   ";",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsEOF reports whether the kind marks end of input.
func (k Kind) IsEOF() bool { return k == EOF }

// IsKeyword reports whether the kind is a reserved word.
func (k Kind) IsKeyword() bool { return k >= KwDef && k <= KwLine }

// IsOperator reports whether the kind is lexed as an operator (Ripper on_op).
func (k Kind) IsOperator() bool {
	return k >= Plus && k <= ColonColon
}
