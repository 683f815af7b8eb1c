package parser

import (
	"rubysnap/internal/ast"
	"rubysnap/internal/diag"
	"rubysnap/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений.
// Errors are reported where they are found; callers only see nil.
func (p *Parser) parseExpr() ast.Node {
	return p.parseAndOr()
}

// parseAndOr: `and`/`or` - самый низкий приоритет, левоассоциативны.
func (p *Parser) parseAndOr() ast.Node {
	left := p.parseNot()
	if left == nil {
		return nil
	}
	for p.atOr(token.KwAnd, token.KwOr) {
		op := p.advance()
		p.skipNewlines()
		right := p.parseNot()
		if right == nil {
			return nil
		}
		l := left.Loc().Cover(right.Loc())
		if op.Kind == token.KwAnd {
			left = &ast.AndNode{Base: ast.At(l), Left: left, Right: right, Operator: op.Text}
		} else {
			left = &ast.OrNode{Base: ast.At(l), Left: left, Right: right, Operator: op.Text}
		}
	}
	return left
}

func (p *Parser) parseNot() ast.Node {
	if !p.at(token.KwNot) {
		return p.parseAssignment()
	}
	op := p.advance()
	expr := p.parseNot()
	if expr == nil {
		return nil
	}
	return &ast.NotNode{Base: ast.At(loc(op.Span).Cover(expr.Loc())), Expression: expr, Operator: op.Text}
}

// parseAssignment: присваивание правоассоциативно и слабее всех бинарных
// операторов.
func (p *Parser) parseAssignment() ast.Node {
	left := p.parseBinaryExpr(precLogicalOr)
	if left == nil {
		return nil
	}
	tok := p.lx.Peek()
	if tok.Kind == token.Assign {
		return p.parseWrite(left)
	}
	if op, ok := opAssignOperator(tok.Kind); ok {
		return p.parseOperatorWrite(left, op)
	}
	return left
}

func (p *Parser) parseWrite(target ast.Node) ast.Node {
	eq := p.advance()
	p.skipNewlines()

	switch t := target.(type) {
	case *ast.CallNode:
		if !isVariableCall(t) {
			break
		}
		p.declareLocal(t.Name)
		value := p.parseAssignment()
		if value == nil {
			return nil
		}
		return &ast.LocalVariableWriteNode{
			Base: ast.At(t.NameLoc.Cover(value.Loc())), Name: t.Name, NameLoc: t.NameLoc, Value: value,
		}
	case *ast.LocalVariableReadNode:
		value := p.parseAssignment()
		if value == nil {
			return nil
		}
		return &ast.LocalVariableWriteNode{
			Base: ast.At(t.Location.Cover(value.Loc())), Name: t.Name, NameLoc: t.Location, Value: value,
		}
	case *ast.InstanceVariableReadNode:
		value := p.parseAssignment()
		if value == nil {
			return nil
		}
		return &ast.InstanceVariableWriteNode{
			Base: ast.At(t.Location.Cover(value.Loc())), Name: t.Name, NameLoc: t.Location, Value: value,
		}
	}

	p.report(diag.SynInvalidAssign, diag.SevError, eq.Span, "cannot assign to "+target.Kind().String())
	return nil
}

func (p *Parser) parseOperatorWrite(target ast.Node, op string) ast.Node {
	opTok := p.advance()
	p.skipNewlines()

	switch t := target.(type) {
	case *ast.CallNode:
		if !isVariableCall(t) {
			p.report(diag.SynInvalidAssign, diag.SevError, opTok.Span, "cannot assign to a method call")
			return nil
		}
		p.declareLocal(t.Name)
		target = &ast.LocalVariableReadNode{Base: ast.At(t.NameLoc), Name: t.Name}
	case *ast.LocalVariableReadNode, *ast.InstanceVariableReadNode:
	default:
		p.report(diag.SynInvalidAssign, diag.SevError, opTok.Span, "cannot assign to "+target.Kind().String())
		return nil
	}

	value := p.parseAssignment()
	if value == nil {
		return nil
	}
	return &ast.OperatorWriteNode{
		Base:     ast.At(target.Loc().Cover(value.Loc())),
		Target:   target,
		Operator: op,
		Value:    value,
	}
}

// isVariableCall - голый идентификатор без получателя, аргументов и
// скобок: `foo` до первого присваивания.
func isVariableCall(c *ast.CallNode) bool {
	if c.Receiver != nil || len(c.Arguments) != 0 || c.Location != c.NameLoc || c.Name == "" {
		return false
	}
	first, last := c.Name[0], c.Name[len(c.Name)-1]
	if first >= 'A' && first <= 'Z' {
		return false
	}
	return last != '?' && last != '!'
}

// parseBinaryExpr - precedence climbing по binaryPrec.
func (p *Parser) parseBinaryExpr(minPrec int) ast.Node {
	left := p.parseUnary()
	if left == nil {
		return nil
	}

	for {
		tok := p.lx.Peek()
		prec := binaryPrec(tok.Kind)
		if prec < minPrec {
			break
		}
		opTok := p.advance()
		p.skipNewlines()

		right := p.parseBinaryExpr(prec + 1)
		if right == nil {
			return nil
		}

		l := left.Loc().Cover(right.Loc())
		switch opTok.Kind {
		case token.OrOr:
			left = &ast.OrNode{Base: ast.At(l), Left: left, Right: right, Operator: opTok.Text}
		case token.AndAnd:
			left = &ast.AndNode{Base: ast.At(l), Left: left, Right: right, Operator: opTok.Text}
		default:
			left = &ast.CallNode{
				Base:      ast.At(l),
				Receiver:  left,
				Name:      opTok.Text,
				NameLoc:   loc(opTok.Span),
				Arguments: []ast.Node{right},
			}
		}
	}
	return left
}

// parseUnary обрабатывает '!', унарные '-' и '+'. Минус, прилегающий к
// числовому литералу, входит в литерал.
func (p *Parser) parseUnary() ast.Node {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Bang:
		op := p.advance()
		expr := p.parseUnary()
		if expr == nil {
			return nil
		}
		return &ast.NotNode{Base: ast.At(loc(op.Span).Cover(expr.Loc())), Expression: expr, Operator: op.Text}

	case token.Minus, token.Plus:
		op := p.advance()
		expr := p.parseUnary()
		if expr == nil {
			return nil
		}
		l := loc(op.Span).Cover(expr.Loc())
		if op.Kind == token.Minus && expr.Loc().Start == op.Span.End {
			switch lit := expr.(type) {
			case *ast.IntegerNode:
				return &ast.IntegerNode{Base: ast.At(l), Value: -lit.Value}
			case *ast.FloatNode:
				return &ast.FloatNode{Base: ast.At(l), Value: -lit.Value}
			}
		}
		return &ast.CallNode{Base: ast.At(l), Receiver: expr, Name: op.Text + "@", NameLoc: loc(op.Span)}
	}
	return p.parsePow()
}

// parsePow: '**' сильнее унарного минуса и правоассоциативен.
func (p *Parser) parsePow() ast.Node {
	base := p.parsePostfix()
	if base == nil || !p.at(token.StarStar) {
		return base
	}
	op := p.advance()
	p.skipNewlines()
	exp := p.parseUnary()
	if exp == nil {
		return nil
	}
	return &ast.CallNode{
		Base:      ast.At(base.Loc().Cover(exp.Loc())),
		Receiver:  base,
		Name:      op.Text,
		NameLoc:   loc(op.Span),
		Arguments: []ast.Node{exp},
	}
}
