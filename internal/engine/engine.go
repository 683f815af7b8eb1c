// Package engine wires lexer, parser and serial into the parsing engine the
// harness drives. An Engine holds no state between calls.
package engine

import (
	"fmt"

	"rubysnap/internal/ast"
	"rubysnap/internal/compat"
	"rubysnap/internal/diag"
	"rubysnap/internal/lexer"
	"rubysnap/internal/parser"
	"rubysnap/internal/serial"
	"rubysnap/internal/source"
)

// GrammarVersion identifies the accepted Ruby subset. Bump it whenever the
// parser starts accepting new syntax.
const GrammarVersion = "0.4.0"

const defaultMaxErrors = 64

// Result of parsing one source buffer.
type Result struct {
	Root   *ast.ProgramNode
	Errors []diag.Diagnostic
	File   *source.File
}

// HasErrors reports whether any error-severity diagnostic was produced.
func (r *Result) HasErrors() bool {
	for _, d := range r.Errors {
		if d.Severity >= diag.SevError {
			return true
		}
	}
	return false
}

// FormatErrors renders the diagnostics one per line with positions.
func (r *Result) FormatErrors() string {
	return diag.FormatGoldenDiagnostics(r.Errors, r.File, false)
}

type Options struct {
	MaxErrors uint
}

type Engine struct {
	opts Options
}

func New(opts Options) *Engine {
	if opts.MaxErrors == 0 {
		opts.MaxErrors = defaultMaxErrors
	}
	return &Engine{opts: opts}
}

func (e *Engine) Name() string { return "rubysnap" }

func (e *Engine) GrammarVersion() string { return GrammarVersion }

// Parse parses src; filepath becomes the value of __FILE__ nodes.
func (e *Engine) Parse(src []byte, filepath string) (*Result, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(filepath, src))
	return e.parse(file, filepath), nil
}

// ParseFile reads path in binary mode and parses it.
func (e *Engine) ParseFile(path string) (*Result, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return e.parse(fs.Get(id), path), nil
}

func (e *Engine) parse(file *source.File, filepath string) *Result {
	bag := diag.NewBag(int(e.opts.MaxErrors))
	rep := newReporter(bag)
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	res := parser.ParseFile(lx, parser.Options{
		MaxErrors: e.opts.MaxErrors,
		Reporter:  rep,
		Filepath:  filepath,
	})
	bag.Sort()
	return &Result{Root: res.Root, Errors: bag.Items(), File: file}
}

// newReporter drops repeats before they reach the bag, so recovery that
// reports the same token twice does not eat into MaxErrors.
func newReporter(bag *diag.Bag) diag.Reporter {
	return diag.NewDedupReporter(diag.BagReporter{Bag: bag})
}

// Dump parses src and serializes the tree. Sources with parse errors are
// refused: a snapshot of a broken tree is not worth keeping.
func (e *Engine) Dump(src []byte, fixture string) ([]byte, error) {
	res, err := e.Parse(src, fixture)
	if err != nil {
		return nil, err
	}
	if res.HasErrors() {
		return nil, fmt.Errorf("engine: %s has %d parse errors", fixture, len(res.Errors))
	}
	return serial.Dump(res.Root, src, fixture)
}

func (e *Engine) Load(src, serialized []byte) (*ast.ProgramNode, error) {
	return serial.Load(src, serialized)
}

// Newlines returns the line start offsets the engine computes for src.
func (e *Engine) Newlines(src []byte) []uint32 {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("", src)).LineStarts()
}

// LexCompat runs the compatibility lexer over src.
func (e *Engine) LexCompat(src []byte) ([]diag.Diagnostic, []compat.Token) {
	fs := source.NewFileSet()
	toks, diags := lexer.Compat(fs.Get(fs.AddVirtual("", src)))
	return diags, toks
}
