package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"rubysnap/internal/source"
)

// Cursor - позиция в байтах исходника. Content is never translated, so
// "\r\n" is two bytes here and line breaks are recognised explicitly.
type Cursor struct {
	File *source.File
	Off  uint32
	end  uint32
}

func NewCursor(f *source.File) Cursor {
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, end: end}
}

func (c *Cursor) EOF() bool { return c.Off >= c.end }

// Peek returns the current byte or 0 at EOF.
func (c *Cursor) Peek() byte { return c.PeekAt(0) }

// PeekAt looks n bytes ahead; 0 past the end.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.end {
		return 0
	}
	return c.File.Content[c.Off+n]
}

// Bump перемещает курсор на байт вперёд и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.File.Content[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// LineBreakLen: 2 for "\r\n", 1 for "\n", 0 otherwise. A lone '\r' is
// not a line break.
func (c *Cursor) LineBreakLen() uint32 {
	switch c.Peek() {
	case '\n':
		return 1
	case '\r':
		if c.PeekAt(1) == '\n' {
			return 2
		}
	}
	return 0
}

// EatLineBreak consumes one "\n" or "\r\n".
func (c *Cursor) EatLineBreak() bool {
	n := c.LineBreakLen()
	c.Off += n
	return n > 0
}

// AtContinuation reports a backslash directly before a line break.
func (c *Cursor) AtContinuation() bool {
	if c.Peek() != '\\' {
		return false
	}
	switch c.PeekAt(1) {
	case '\n':
		return true
	case '\r':
		return c.PeekAt(2) == '\n'
	}
	return false
}

// EatNameSuffix consumes a method-name '?' or '!' unless it opens "!="
// or "?=": `a!=b` is a comparison, `empty?` a name.
func (c *Cursor) EatNameSuffix() bool {
	if b := c.Peek(); (b == '?' || b == '!') && c.PeekAt(1) != '=' {
		c.Off++
		return true
	}
	return false
}

// Mark - метка начала фрагмента для SpanFrom/Reset
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }
