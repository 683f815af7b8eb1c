package parser

import (
	"rubysnap/internal/ast"
	"rubysnap/internal/diag"
	"rubysnap/internal/token"
)

// parseStatements читает операторы до одного из until (не съедая его) или EOF.
// Statements are separated by newlines or ';'.
func (p *Parser) parseStatements(until ...token.Kind) *ast.StatementsNode {
	var body []ast.Node
	p.skipTerms()
	out := &ast.StatementsNode{Base: ast.At(p.hereLoc())}

	for !p.at(token.EOF) && !p.atOr(until...) {
		stmt := p.parseStatement()
		switch {
		case stmt == nil:
			p.resyncStatement(until)
		case !p.atTerm() && !p.atOr(until...):
			body = append(body, stmt)
			p.unexpectedAfterStatement()
			p.resyncStatement(until)
		default:
			body = append(body, stmt)
		}
		p.skipTerms()
	}

	if len(body) > 0 {
		out.Location = body[0].Loc().Cover(body[len(body)-1].Loc())
	}
	out.Body = body
	return out
}

func (p *Parser) resyncStatement(until []token.Kind) {
	stop := append([]token.Kind{token.Newline, token.Semicolon}, until...)
	p.resyncUntil(stop...)
}

func (p *Parser) unexpectedAfterStatement() {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.KwIf, token.KwUnless, token.KwWhile, token.KwUntil:
		p.err(diag.SynUnexpectedToken, "modifier '"+tok.Text+"' is not supported")
	default:
		p.err(diag.SynExpectTerminator, "expected newline or ';' after statement, got "+describe(tok))
	}
}

func (p *Parser) parseStatement() ast.Node {
	if p.at(token.KwReturn) {
		return p.parseReturn()
	}
	return p.parseExpr()
}

func (p *Parser) parseReturn() ast.Node {
	kw := p.advance()
	node := &ast.ReturnNode{Base: ast.At(loc(kw.Span))}
	if p.atTerm() || p.atOr(token.KwEnd, token.KwElse, token.KwElsif, token.RParen) {
		return node
	}
	args, ok := p.parseArgList(false)
	if !ok {
		return nil
	}
	node.Arguments = args
	node.Location = node.Location.Cover(args[len(args)-1].Loc())
	return node
}

// parseDef: def name[(params) | params] body end
func (p *Parser) parseDef() ast.Node {
	kw := p.advance()
	nameTok := p.lx.Peek()
	if nameTok.Kind != token.Ident && nameTok.Kind != token.Const {
		p.err(diag.SynExpectIdentifier, "expected method name after 'def', got "+describe(nameTok))
		return nil
	}
	p.advance()

	def := &ast.DefNode{Name: nameTok.Text, NameLoc: loc(nameTok.Span)}
	p.pushScope()
	defer p.popScope()

	switch {
	case p.at(token.LParen):
		params, ok := p.parseParams(true)
		if !ok {
			return nil
		}
		def.Parameters = params
	case p.at(token.Ident):
		params, ok := p.parseParams(false)
		if !ok {
			return nil
		}
		def.Parameters = params
	}

	def.Body = p.parseStatements(token.KwEnd)
	end, ok := p.expect(token.KwEnd, diag.SynExpectEnd, "expected 'end' to close 'def'")
	if !ok {
		return nil
	}
	def.Location = loc(kw.Span.Cover(end.Span))
	return def
}

// parseParams returns nil parameters (and ok) for an empty "()".
func (p *Parser) parseParams(paren bool) (*ast.ParametersNode, bool) {
	if paren {
		p.advance()
		p.skipNewlines()
		if p.at(token.RParen) {
			p.advance()
			return nil, true
		}
	}

	params := &ast.ParametersNode{}
	for {
		tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name")
		if !ok {
			return nil, false
		}
		p.declareLocal(tok.Text)
		params.Requireds = append(params.Requireds, &ast.RequiredParameterNode{
			Base: ast.At(loc(tok.Span)),
			Name: tok.Text,
		})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
		p.skipNewlines()
	}

	if paren {
		p.skipNewlines()
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameter list"); !ok {
			return nil, false
		}
	}
	first, last := params.Requireds[0], params.Requireds[len(params.Requireds)-1]
	params.Location = first.Location.Cover(last.Location)
	return params, true
}

// parseConstantPath: Const(::Const)*
func (p *Parser) parseConstantPath() ast.Node {
	tok, ok := p.expect(token.Const, diag.SynExpectConstant, "expected constant name")
	if !ok {
		return nil
	}
	var node ast.Node = &ast.ConstantReadNode{Base: ast.At(loc(tok.Span)), Name: tok.Text}
	for p.at(token.ColonColon) {
		if node = p.parseScopedConstant(node); node == nil {
			return nil
		}
	}
	return node
}

func (p *Parser) parseClass() ast.Node {
	kw := p.advance()
	path := p.parseConstantPath()
	if path == nil {
		return nil
	}
	node := &ast.ClassNode{ConstantPath: path}
	if p.at(token.Lt) {
		p.advance()
		p.skipNewlines()
		if node.Superclass = p.parseUnary(); node.Superclass == nil {
			return nil
		}
	}

	p.pushScope()
	node.Body = p.parseStatements(token.KwEnd)
	p.popScope()

	end, ok := p.expect(token.KwEnd, diag.SynExpectEnd, "expected 'end' to close 'class'")
	if !ok {
		return nil
	}
	node.Location = loc(kw.Span.Cover(end.Span))
	return node
}

func (p *Parser) parseModule() ast.Node {
	kw := p.advance()
	path := p.parseConstantPath()
	if path == nil {
		return nil
	}
	node := &ast.ModuleNode{ConstantPath: path}

	p.pushScope()
	node.Body = p.parseStatements(token.KwEnd)
	p.popScope()

	end, ok := p.expect(token.KwEnd, diag.SynExpectEnd, "expected 'end' to close 'module'")
	if !ok {
		return nil
	}
	node.Location = loc(kw.Span.Cover(end.Span))
	return node
}

// parseCondition читает предикат и разделитель: sep ('then' или 'do'),
// перевод строки или ';'.
func (p *Parser) parseCondition(sep token.Kind) ast.Node {
	pred := p.parseExpr()
	if pred == nil {
		return nil
	}
	if p.at(sep) {
		p.advance()
		return pred
	}
	if !p.atTerm() {
		p.err(diag.SynExpectTerminator, "expected '"+sep.String()+"' or newline after condition, got "+describe(p.lx.Peek()))
		return nil
	}
	return pred
}

func (p *Parser) parseIf() ast.Node {
	kw := p.advance()
	node := p.parseIfTail()
	if node == nil {
		return nil
	}
	end, ok := p.expect(token.KwEnd, diag.SynExpectEnd, "expected 'end' to close 'if'")
	if !ok {
		return nil
	}
	node.Location = loc(kw.Span.Cover(end.Span))
	return node
}

// parseIfTail разбирает всё после 'if'/'elsif' до закрывающего 'end' (не
// съедая его).
func (p *Parser) parseIfTail() *ast.IfNode {
	pred := p.parseCondition(token.KwThen)
	if pred == nil {
		return nil
	}
	node := &ast.IfNode{Predicate: pred}
	node.Statements = p.parseStatements(token.KwElsif, token.KwElse, token.KwEnd)

	switch {
	case p.at(token.KwElsif):
		kw := p.advance()
		sub := p.parseIfTail()
		if sub == nil {
			return nil
		}
		l := loc(kw.Span).Cover(sub.Statements.Location)
		if sub.Subsequent != nil {
			l = l.Cover(sub.Subsequent.Loc())
		}
		sub.Location = l
		node.Subsequent = sub
	case p.at(token.KwElse):
		node.Subsequent = p.parseElse()
	}
	return node
}

func (p *Parser) parseElse() *ast.ElseNode {
	kw := p.advance()
	stmts := p.parseStatements(token.KwEnd)
	return &ast.ElseNode{Base: ast.At(loc(kw.Span).Cover(stmts.Location)), Statements: stmts}
}

func (p *Parser) parseUnless() ast.Node {
	kw := p.advance()
	pred := p.parseCondition(token.KwThen)
	if pred == nil {
		return nil
	}
	node := &ast.UnlessNode{Predicate: pred}
	node.Statements = p.parseStatements(token.KwElse, token.KwEnd)
	if p.at(token.KwElse) {
		node.ElseClause = p.parseElse()
	}
	end, ok := p.expect(token.KwEnd, diag.SynExpectEnd, "expected 'end' to close 'unless'")
	if !ok {
		return nil
	}
	node.Location = loc(kw.Span.Cover(end.Span))
	return node
}

// parseLoop - while/until: оба узла одинаковой формы.
func (p *Parser) parseLoop() ast.Node {
	kw := p.advance()
	pred := p.parseCondition(token.KwDo)
	if pred == nil {
		return nil
	}
	body := p.parseStatements(token.KwEnd)
	end, ok := p.expect(token.KwEnd, diag.SynExpectEnd, "expected 'end' to close '"+kw.Text+"'")
	if !ok {
		return nil
	}
	l := loc(kw.Span.Cover(end.Span))
	if kw.Kind == token.KwUntil {
		return &ast.UntilNode{Base: ast.At(l), Predicate: pred, Statements: body}
	}
	return &ast.WhileNode{Base: ast.At(l), Predicate: pred, Statements: body}
}
