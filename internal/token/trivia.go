package token

import "rubysnap/internal/source"

// TriviaKind classifies insignificant source text.
type TriviaKind uint8

const (
	// TriviaSpace is a run of spaces, tabs, or a line continuation.
	TriviaSpace TriviaKind = iota
	// TriviaComment is a '#' comment up to (not including) the line break.
	TriviaComment
)

// Trivia is insignificant text attached to the token that follows it.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
