package parser

import (
	"strconv"
	"strings"

	"rubysnap/internal/ast"
	"rubysnap/internal/diag"
	"rubysnap/internal/lexer"
	"rubysnap/internal/source"
	"rubysnap/internal/token"
)

// parsePrimary парсит основные (атомарные) выражения
func (p *Parser) parsePrimary() ast.Node {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		return p.parseIdentifier()
	case token.Const:
		return p.parseConstant()
	case token.IVar:
		p.advance()
		return &ast.InstanceVariableReadNode{Base: ast.At(loc(tok.Span)), Name: tok.Text}

	case token.IntLit:
		return p.parseInteger()
	case token.FloatLit:
		return p.parseFloat()
	case token.StringLit:
		return p.parseString()
	case token.SymbolLit:
		p.advance()
		return &ast.SymbolNode{
			Base:     ast.At(loc(tok.Span)),
			Value:    tok.Text[1:],
			ValueLoc: ast.Location{Start: tok.Span.Start + 1, End: tok.Span.End},
		}

	case token.KwNil:
		p.advance()
		return &ast.NilNode{Base: ast.At(loc(tok.Span))}
	case token.KwTrue:
		p.advance()
		return &ast.TrueNode{Base: ast.At(loc(tok.Span))}
	case token.KwFalse:
		p.advance()
		return &ast.FalseNode{Base: ast.At(loc(tok.Span))}
	case token.KwSelf:
		p.advance()
		return &ast.SelfNode{Base: ast.At(loc(tok.Span))}
	case token.KwFile:
		p.advance()
		return &ast.SourceFileNode{Base: ast.At(loc(tok.Span)), Filepath: p.opts.Filepath}
	case token.KwLine:
		p.advance()
		line := p.file.Position(tok.Span.Start).Line
		return &ast.SourceLineNode{Base: ast.At(loc(tok.Span)), Line: int64(line)}

	case token.LParen:
		return p.parseParens()
	case token.LBracket:
		return p.parseArray()
	case token.ColonColon:
		return p.parseScopedConstant(nil)

	case token.KwDef:
		return p.parseDef()
	case token.KwClass:
		return p.parseClass()
	case token.KwModule:
		return p.parseModule()
	case token.KwIf:
		return p.parseIf()
	case token.KwUnless:
		return p.parseUnless()
	case token.KwWhile, token.KwUntil:
		return p.parseLoop()

	case token.Invalid:
		// лексер уже сообщил об ошибке
		p.advance()
		return nil
	}

	p.err(diag.SynExpectExpression, "expected expression, got "+describe(tok))
	return nil
}

// parseIdentifier: известная локальная переменная или вызов метода.
func (p *Parser) parseIdentifier() ast.Node {
	tok := p.advance()
	parenCall := p.at(token.LParen) && !p.spaceBefore()
	if p.isLocal(tok.Text) && !parenCall {
		return &ast.LocalVariableReadNode{Base: ast.At(loc(tok.Span)), Name: tok.Text}
	}
	call := &ast.CallNode{Base: ast.At(loc(tok.Span)), Name: tok.Text, NameLoc: loc(tok.Span)}
	if !p.parseCallArgs(call) {
		return nil
	}
	return call
}

// parseConstant: Foo или Foo(args) - вызов метода с именем-константой.
func (p *Parser) parseConstant() ast.Node {
	tok := p.advance()
	if p.at(token.LParen) && !p.spaceBefore() {
		call := &ast.CallNode{Base: ast.At(loc(tok.Span)), Name: tok.Text, NameLoc: loc(tok.Span)}
		if !p.parseCallArgs(call) {
			return nil
		}
		return call
	}
	return &ast.ConstantReadNode{Base: ast.At(loc(tok.Span)), Name: tok.Text}
}

func (p *Parser) parseInteger() ast.Node {
	tok := p.advance()
	v, err := strconv.ParseInt(strings.ReplaceAll(tok.Text, "_", ""), 10, 64)
	if err != nil {
		p.report(diag.LexBadNumber, diag.SevError, tok.Span, "integer literal out of range")
		return nil
	}
	return &ast.IntegerNode{Base: ast.At(loc(tok.Span)), Value: v}
}

func (p *Parser) parseFloat() ast.Node {
	tok := p.advance()
	v, err := strconv.ParseFloat(strings.ReplaceAll(tok.Text, "_", ""), 64)
	if err != nil {
		p.report(diag.LexBadNumber, diag.SevError, tok.Span, "float literal out of range")
		return nil
	}
	return &ast.FloatNode{Base: ast.At(loc(tok.Span)), Value: v}
}

func (p *Parser) parseString() ast.Node {
	tok := p.advance()
	raw, err := lexer.Unquote(tok.Text)
	if err != nil {
		p.report(diag.LexBadEscape, diag.SevError, tok.Span, err.Error())
		return nil
	}
	text, err := source.DecodeUTF8(raw)
	if err != nil {
		p.report(diag.LexBadEscape, diag.SevError, tok.Span, "string literal is not valid UTF-8: "+err.Error())
		return nil
	}
	return &ast.StringNode{Base: ast.At(loc(tok.Span)), Unescaped: text}
}

func (p *Parser) parseParens() ast.Node {
	open := p.advance()
	p.skipNewlines()
	node := &ast.ParenthesesNode{}
	if !p.at(token.RParen) {
		node.Body = p.parseStatements(token.RParen)
	}
	closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
	if !ok {
		return nil
	}
	node.Location = loc(open.Span.Cover(closeTok.Span))
	return node
}

func (p *Parser) parseArray() ast.Node {
	open := p.advance()
	p.skipNewlines()
	node := &ast.ArrayNode{}
	for !p.at(token.RBracket) {
		el := p.parseAssignment()
		if el == nil {
			return nil
		}
		node.Elements = append(node.Elements, el)
		p.skipNewlines()
		if !p.at(token.Comma) {
			break
		}
		p.advance()
		p.skipNewlines()
	}
	closeTok, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close array literal")
	if !ok {
		return nil
	}
	node.Location = loc(open.Span.Cover(closeTok.Span))
	return node
}
