package parser

import (
	"rubysnap/internal/ast"
	"rubysnap/internal/diag"
	"rubysnap/internal/token"
)

// parsePostfix обрабатывает постфиксы: .name(args), [index], ::Const
func (p *Parser) parsePostfix() ast.Node {
	expr := p.parsePrimary()
	for expr != nil {
		switch {
		case p.at(token.Dot):
			expr = p.parseMethodCall(expr)
		case p.at(token.LBracket) && !p.spaceBefore():
			expr = p.parseIndex(expr)
		case p.at(token.ColonColon):
			expr = p.parseScopedConstant(expr)
		default:
			// больше постфиксов нет
			return expr
		}
	}
	return nil
}

func (p *Parser) parseMethodCall(recv ast.Node) ast.Node {
	p.advance() // '.'
	p.skipNewlines()
	name := p.lx.Peek()
	if name.Kind != token.Ident && name.Kind != token.Const && !name.Kind.IsKeyword() {
		p.err(diag.SynExpectIdentifier, "expected method name after '.', got "+describe(name))
		return nil
	}
	p.advance()

	call := &ast.CallNode{
		Base:     ast.At(recv.Loc().Cover(loc(name.Span))),
		Receiver: recv,
		Name:     name.Text,
		NameLoc:  loc(name.Span),
	}
	if !p.parseCallArgs(call) {
		return nil
	}
	return call
}

// parseCallArgs разбирает аргументы вызова: "(...)" сразу за именем или
// список через запятую после пробела. Отсутствие аргументов - не ошибка.
func (p *Parser) parseCallArgs(call *ast.CallNode) bool {
	if p.at(token.LParen) && !p.spaceBefore() {
		p.advance()
		p.skipNewlines()
		if !p.at(token.RParen) {
			args, ok := p.parseArgList(true)
			if !ok {
				return false
			}
			call.Arguments = args
		}
		closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close argument list")
		if !ok {
			return false
		}
		call.Location = call.Location.Cover(loc(closeTok.Span))
		return true
	}

	if p.spaceBefore() && isArgStart(p.lx.Peek().Kind) {
		args, ok := p.parseArgList(false)
		if !ok {
			return false
		}
		call.Arguments = args
		call.Location = call.Location.Cover(args[len(args)-1].Loc())
	}
	return true
}

// parseArgList: arg (',' arg)*. Inside brackets newlines around
// arguments are insignificant.
func (p *Parser) parseArgList(bracketed bool) ([]ast.Node, bool) {
	var args []ast.Node
	for {
		arg := p.parseAssignment()
		if arg == nil {
			return nil, false
		}
		args = append(args, arg)
		if bracketed {
			p.skipNewlines()
		}
		if !p.at(token.Comma) {
			return args, true
		}
		p.advance()
		p.skipNewlines()
	}
}

func (p *Parser) parseIndex(recv ast.Node) ast.Node {
	p.advance() // '['
	p.skipNewlines()
	node := &ast.IndexNode{Receiver: recv}
	if !p.at(token.RBracket) {
		args, ok := p.parseArgList(true)
		if !ok {
			return nil
		}
		node.Arguments = args
	}
	closeTok, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close index")
	if !ok {
		return nil
	}
	node.Location = recv.Loc().Cover(loc(closeTok.Span))
	return node
}

// parseScopedConstant: parent::Const; parent == nil для ::Const
func (p *Parser) parseScopedConstant(parent ast.Node) ast.Node {
	colons := p.advance()
	tok, ok := p.expect(token.Const, diag.SynExpectConstant, "expected constant after '::'")
	if !ok {
		return nil
	}
	l := loc(colons.Span).Cover(loc(tok.Span))
	if parent != nil {
		l = parent.Loc().Cover(l)
	}
	return &ast.ConstantPathNode{Base: ast.At(l), Parent: parent, Name: tok.Text, NameLoc: loc(tok.Span)}
}
