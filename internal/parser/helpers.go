package parser

import (
	"rubysnap/internal/ast"
	"rubysnap/internal/diag"
	"rubysnap/internal/source"
	"rubysnap/internal/token"
)

// advance - съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan - на EOF указываем сразу за последним токеном
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect - ожидаем конкретный токен. Если нет - репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg+", got "+describe(p.lx.Peek()))
	return token.Token{Kind: token.Invalid, Span: diagSpan}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	limited := sev == diag.SevError && p.opts.Enough()
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if limited || p.opts.Reporter == nil {
		return false // достигли лимита или некуда писать
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
	return true
}

// skipNewlines - переводы строк незначимы после операторов, запятых и
// открывающих скобок.
func (p *Parser) skipNewlines() {
	for p.at(token.Newline) {
		p.advance()
	}
}

// skipTerms съедает подряд идущие ';' и переводы строк.
func (p *Parser) skipTerms() {
	for p.atOr(token.Newline, token.Semicolon) {
		p.advance()
	}
}

func (p *Parser) atTerm() bool {
	return p.atOr(token.Newline, token.Semicolon, token.EOF)
}

// resyncUntil прокручивает токены до одного из stop (не съедая его) или EOF.
func (p *Parser) resyncUntil(stop ...token.Kind) {
	for !p.at(token.EOF) && !p.atOr(stop...) {
		p.advance()
	}
}

// spaceBefore reports whether the next token is preceded by whitespace or
// a comment on the same line.
func (p *Parser) spaceBefore() bool {
	return len(p.lx.Peek().Leading) > 0
}

// hereLoc is a zero-width location at the start of the next token.
func (p *Parser) hereLoc() ast.Location {
	sp := p.lx.Peek().Span
	return ast.Location{Start: sp.Start, End: sp.Start}
}
