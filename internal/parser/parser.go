package parser

import (
	"slices"

	"rubysnap/internal/ast"
	"rubysnap/internal/diag"
	"rubysnap/internal/lexer"
	"rubysnap/internal/source"
	"rubysnap/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
	// Filepath is recorded in __FILE__ nodes.
	Filepath string
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Root   *ast.ProgramNode
	Errors uint
}

// Parser - состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	opts     Options
	lastSpan source.Span // span последнего съеденного токена
	scopes   []scope     // локальные переменные: def/class/module открывают новый
}

// ParseFile - входная точка для разбора одного файла.
// Always returns a tree; on errors it contains whatever could be recovered.
func ParseFile(lx *lexer.Lexer, opts Options) Result {
	p := Parser{
		lx:       lx,
		file:     lx.File(),
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}
	p.pushScope()
	root := p.parseProgram()
	return Result{Root: root, Errors: p.opts.CurrentErrors}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) parseProgram() *ast.ProgramNode {
	stmts := p.parseStatements()
	if !p.at(token.EOF) {
		// parseStatements без терминаторов останавливается только на EOF
		p.err(diag.SynUnexpectedToken, "unexpected "+describe(p.lx.Peek()))
	}
	return &ast.ProgramNode{Base: ast.At(stmts.Location), Statements: stmts}
}

func loc(sp source.Span) ast.Location {
	return ast.Location{Start: sp.Start, End: sp.End}
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of input"
	case token.Newline:
		return "newline"
	case token.Invalid:
		return "invalid token"
	}
	return "'" + tok.Text + "'"
}
