package parser

// scope - множество локальных переменных. Идентификатор, известный как
// локальная, читается как переменная; иначе это вызов метода.
type scope map[string]struct{}

func (p *Parser) pushScope() {
	p.scopes = append(p.scopes, scope{})
}

func (p *Parser) popScope() {
	p.scopes = p.scopes[:len(p.scopes)-1]
}

func (p *Parser) declareLocal(name string) {
	p.scopes[len(p.scopes)-1][name] = struct{}{}
}

func (p *Parser) isLocal(name string) bool {
	_, ok := p.scopes[len(p.scopes)-1][name]
	return ok
}
