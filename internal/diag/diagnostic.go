package diag

import (
	"rubysnap/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one error record produced by the lexer or parser.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
