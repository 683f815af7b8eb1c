// Package oracle is the reference tokenizer the harness trusts. It shares
// nothing with the engine's lexer except the compat.Token shape: tokens come
// from an ordered table of anchored regular expressions, and syntax
// validation only checks what a tokenizer can see (terminated literals,
// bracket nesting, keyword/end balance).
package oracle

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"rubysnap/internal/compat"
)

// GrammarVersion of the Ruby subset this oracle recognises.
const GrammarVersion = "0.4.0"

// SyntaxError points at the first offending byte.
type SyntaxError struct {
	Line uint32 // 1-based
	Col  uint32 // 0-based byte column
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

// Oracle is stateless and safe for concurrent use.
type Oracle struct{}

func New() *Oracle { return &Oracle{} }

func (*Oracle) Name() string { return "regexp-oracle" }

func (*Oracle) GrammarVersion() string { return GrammarVersion }

// Lex tokenizes src into scanner events. Input outside the recognised
// grammar is a *SyntaxError.
func (*Oracle) Lex(src []byte) ([]compat.Token, error) {
	if _, _, err := transform.Bytes(encoding.UTF8Validator, src); err != nil {
		return nil, &SyntaxError{Line: 1, Col: 0, Msg: "source is not valid UTF-8"}
	}
	if _, err := safecast.Conv[uint32](len(src)); err != nil {
		return nil, &SyntaxError{Line: 1, Col: 0, Msg: "source does not fit 32-bit offsets"}
	}
	s := &scanner{src: src, line: 1}
	for s.pos < len(src) {
		if err := s.step(); err != nil {
			return nil, err
		}
	}
	return s.out, nil
}

// ValidateSyntax returns nil when src is acceptable input.
func (o *Oracle) ValidateSyntax(src []byte) error {
	toks, err := o.Lex(src)
	if err != nil {
		return err
	}
	return checkBalance(toks)
}

type scanner struct {
	src  []byte
	pos  int
	line uint32
	bol  int // offset of the current line start
	out  []compat.Token
}

func (s *scanner) here() (uint32, uint32) {
	col, err := safecast.Conv[uint32](s.pos - s.bol)
	if err != nil {
		panic(fmt.Errorf("column overflow at line %d: %w", s.line, err))
	}
	return s.line, col
}

func (s *scanner) errorf(format string, args ...any) error {
	line, col := s.here()
	return &SyntaxError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

// emit appends a token of n bytes at the current position and advances.
func (s *scanner) emit(event string, n int) {
	line, col := s.here()
	text := string(s.src[s.pos : s.pos+n])
	s.out = append(s.out, compat.Token{Line: line, Col: col, Event: event, Text: text})
	for i := 0; i < n; i++ {
		if s.src[s.pos] == '\n' {
			s.line++
			s.bol = s.pos + 1
		}
		s.pos++
	}
}

func (s *scanner) next(n int) byte {
	if s.pos+n < len(s.src) {
		return s.src[s.pos+n]
	}
	return 0
}

func (s *scanner) step() error {
	rest := s.src[s.pos:]
	for _, r := range rules {
		m := r.re.FindSubmatchIndex(rest)
		if m == nil {
			continue
		}
		n := m[1]
		switch r.kind {
		case ruleEmit:
			s.emit(r.event, n)
		case ruleTrimCR:
			if rest[n-1] == '\r' && s.next(n) == '\n' {
				n--
			}
			if n == 0 {
				continue
			}
			s.emit(r.event, n)
		case ruleTrimSfx:
			if c := rest[n-1]; (c == '?' || c == '!') && s.next(n) == '=' {
				n--
			}
			s.emit(nameEvent(string(rest[:n])), n)
		case ruleNumber:
			if c := s.next(n); c == '_' || isNameByte(c) {
				return s.errorf("malformed number %q", string(rest[:n+1]))
			}
			event := compat.EventInt
			if m[2] >= 0 || m[4] >= 0 {
				event = compat.EventFloat
			}
			s.emit(event, n)
		case ruleString:
			if rest[0] == '"' && strings.Contains(string(rest[:n]), "#{") {
				return s.errorf("string interpolation is outside the grammar")
			}
			s.emit(compat.EventTStringBeg, 1)
			if n > 2 {
				s.emit(compat.EventTStringContent, n-2)
			}
			s.emit(compat.EventTStringEnd, 1)
		case ruleSymbol:
			name := string(rest[1:n])
			s.emit(compat.EventSymBeg, 1)
			s.emit(nameEvent(name), n-1)
		case ruleReject:
			return s.errorf("%s", r.msg)
		}
		return nil
	}
	switch c := rest[0]; c {
	case '"', '\'':
		return s.errorf("unterminated string")
	default:
		return s.errorf("unexpected character %q", firstRune(rest))
	}
}

func isNameByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func firstRune(b []byte) string {
	for i := range string(b) {
		if i > 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
