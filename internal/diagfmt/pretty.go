package diagfmt

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"rubysnap/internal/diag"
	"rubysnap/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	caretColor   = color.New(color.FgGreen, color.Bold)
	gutterColor  = color.New(color.FgBlue)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой печатает
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строки контекста и подчёркивание ^~~~ по Primary, затем Notes.
// Диагностики ожидаются отсортированными.
func Pretty(w io.Writer, diags []diag.Diagnostic, file *source.File, opts PrettyOpts) {
	p := printer{w: w, file: file, opts: opts}
	for i, d := range diags {
		if i > 0 {
			fmt.Fprintln(w)
		}
		p.diagnostic(d)
	}
}

type printer struct {
	w    io.Writer
	file *source.File
	opts PrettyOpts
}

func (p *printer) paint(c *color.Color, s string) string {
	if !p.opts.Color {
		return s
	}
	return c.Sprint(s)
}

func (p *printer) diagnostic(d diag.Diagnostic) {
	path := formatPath(p.file, p.opts.PathMode, p.opts.BaseDir)
	pos := p.file.Position(d.Primary.Start)
	sev := p.paint(severityColor(d.Severity), d.Severity.String())
	fmt.Fprintf(p.w, "%s:%d:%d: %s %s: %s\n", path, pos.Line, pos.Col, sev, d.Code.ID(), d.Message)
	p.snippet(d.Primary)

	if !p.opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		np := p.file.Position(n.Span.Start)
		fmt.Fprintf(p.w, "  %s %s:%d:%d: %s\n", p.paint(infoColor, "note:"), path, np.Line, np.Col, n.Msg)
	}
}

// snippet prints the context lines, the line holding span.Start and a caret
// line under the part of span that lies on it.
func (p *printer) snippet(span source.Span) {
	starts := p.file.LineStarts()
	pos := p.file.Position(span.Start)
	line := int(pos.Line)
	first := max(line-int(p.opts.Context), 1)
	width := len(fmt.Sprint(line))

	for n := first; n <= line && n <= len(starts); n++ {
		text := lineText(p.file.Content, starts, n)
		gutter := p.paint(gutterColor, fmt.Sprintf("%*d |", width, n))
		fmt.Fprintf(p.w, "%s %s\n", gutter, text)
	}

	text := lineText(p.file.Content, starts, line)
	col := int(pos.Col) - 1
	end := col + int(span.Len())
	end = min(end, len(text))
	carets := "^" + strings.Repeat("~", max(end-col-1, 0))
	pad := strings.Repeat(" ", width) + " | " + indentLike(text[:min(col, len(text))])
	fmt.Fprintf(p.w, "%s%s\n", p.paint(gutterColor, pad), p.paint(caretColor, carets))
}

// lineText returns line n (1-based) without its terminator.
func lineText(content []byte, starts []uint32, n int) string {
	if n < 1 || n > len(starts) {
		return ""
	}
	start, end := int(starts[n-1]), len(content)
	if n < len(starts) {
		end = int(starts[n])
	}
	return string(bytes.TrimRight(content[start:end], "\r\n"))
}

// indentLike keeps tabs so the caret lines up with the source line.
func indentLike(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}
