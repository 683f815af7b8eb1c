package harness

import (
	"rubysnap/internal/ast"
	"rubysnap/internal/compat"
	"rubysnap/internal/diag"
	"rubysnap/internal/engine"
)

// Engine is everything the harness needs from the parsing engine under
// test. Implementations must be safe for concurrent use.
type Engine interface {
	Name() string
	GrammarVersion() string
	Parse(src []byte, filepath string) (*engine.Result, error)
	ParseFile(path string) (*engine.Result, error)
	Dump(src []byte, fixture string) ([]byte, error)
	Load(src []byte, serialized []byte) (*ast.ProgramNode, error)
	Newlines(src []byte) []uint32
	LexCompat(src []byte) ([]diag.Diagnostic, []compat.Token)
}

// Oracle is the trusted reference tokenizer. ValidateSyntax returns nil
// for valid input.
type Oracle interface {
	Name() string
	GrammarVersion() string
	ValidateSyntax(src []byte) error
	Lex(src []byte) ([]compat.Token, error)
}

var _ Engine = (*engine.Engine)(nil)
