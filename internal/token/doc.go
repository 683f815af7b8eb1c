// Package token defines lexical token kinds and trivia for the Ruby subset
// understood by the engine.
// Invariants:
//   - Token.Text is exactly the source bytes covered by Token.Span.
//   - Line breaks are significant tokens (Newline); spaces and comments are
//     Trivia attached to the next token and never appear in the main stream.
//   - Trailing trivia before EOF is attached to the EOF token.
package token
