package parser

import (
	"fmt"
	"strings"
	"testing"

	"rubysnap/internal/ast"
	"rubysnap/internal/diag"
	"rubysnap/internal/lexer"
	"rubysnap/internal/source"
	"rubysnap/internal/testkit"
)

func parseSource(t *testing.T, input string) (*ast.ProgramNode, *diag.Bag) {
	t.Helper()
	return parseSourceWithOptions(t, input, Options{})
}

func parseSourceWithOptions(t *testing.T, input string, opts Options) (*ast.ProgramNode, *diag.Bag) {
	t.Helper()

	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.rb", []byte(input)))

	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	opts.Reporter = reporter

	res := ParseFile(lx, opts)
	if res.Root == nil {
		t.Fatal("ParseFile returned nil root")
	}
	return res.Root, bag
}

func diagnosticsSummary(bag *diag.Bag) string {
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func mustParse(t *testing.T, input string) *ast.ProgramNode {
	t.Helper()
	root, bag := parseSource(t, input)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics for %q: %s", input, diagnosticsSummary(bag))
	}
	return root
}

func body(root *ast.ProgramNode) []ast.Node { return root.Statements.Body }

func TestEmptyInput(t *testing.T) {
	for _, input := range []string{"", "\n\n", "; ;", "# only a comment\n"} {
		root := mustParse(t, input)
		if len(body(root)) != 0 {
			t.Errorf("%q: expected empty body, got %d statements", input, len(body(root)))
		}
	}
	root := mustParse(t, "")
	if root.Loc() != (ast.Location{}) {
		t.Errorf("empty program location = %v", root.Loc())
	}
}

func TestDefWithSourceFile(t *testing.T) {
	input := "def foo; __FILE__; end"
	root, bag := parseSourceWithOptions(t, input, Options{Filepath: "filepath.rb"})
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	def, ok := body(root)[0].(*ast.DefNode)
	if !ok {
		t.Fatalf("expected DefNode, got %T", body(root)[0])
	}
	if def.Name != "foo" || def.NameLoc != (ast.Location{Start: 4, End: 7}) {
		t.Errorf("def name = %q at %v", def.Name, def.NameLoc)
	}
	if def.Parameters != nil {
		t.Errorf("expected no parameters")
	}
	if def.Loc() != (ast.Location{Start: 0, End: 22}) {
		t.Errorf("def location = %v", def.Loc())
	}
	sf, ok := ast.FindFirst[*ast.SourceFileNode](root)
	if !ok || sf.Filepath != "filepath.rb" {
		t.Fatalf("SourceFileNode = %+v, %v", sf, ok)
	}
	if sf.Loc() != (ast.Location{Start: 9, End: 17}) {
		t.Errorf("__FILE__ location = %v", sf.Loc())
	}
}

func TestLocalsVersusCalls(t *testing.T) {
	root := mustParse(t, "a = 1\na\nb\nputs a, b")
	stmts := body(root)
	if len(stmts) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(stmts))
	}
	if w, ok := stmts[0].(*ast.LocalVariableWriteNode); !ok || w.Name != "a" {
		t.Fatalf("stmt 0 = %T", stmts[0])
	}
	if _, ok := stmts[1].(*ast.LocalVariableReadNode); !ok {
		t.Fatalf("stmt 1 = %T, want local read", stmts[1])
	}
	if c, ok := stmts[2].(*ast.CallNode); !ok || c.Name != "b" || c.Receiver != nil {
		t.Fatalf("stmt 2 = %T, want vcall", stmts[2])
	}
	puts, ok := stmts[3].(*ast.CallNode)
	if !ok || puts.Name != "puts" || len(puts.Arguments) != 2 {
		t.Fatalf("stmt 3 = %#v", stmts[3])
	}
	if _, ok := puts.Arguments[0].(*ast.LocalVariableReadNode); !ok {
		t.Errorf("puts arg 0 = %T", puts.Arguments[0])
	}
	if _, ok := puts.Arguments[1].(*ast.CallNode); !ok {
		t.Errorf("puts arg 1 = %T", puts.Arguments[1])
	}
}

func TestParametersAreLocals(t *testing.T) {
	root := mustParse(t, "def add(a, b)\n  a + b\nend\ndef twice x\n  x * 2\nend\n")
	def := body(root)[0].(*ast.DefNode)
	if def.Parameters == nil || len(def.Parameters.Requireds) != 2 {
		t.Fatalf("parameters = %+v", def.Parameters)
	}
	sum := def.Body.Body[0].(*ast.CallNode)
	if sum.Name != "+" {
		t.Fatalf("body = %s", sum.Name)
	}
	if _, ok := sum.Receiver.(*ast.LocalVariableReadNode); !ok {
		t.Errorf("receiver = %T", sum.Receiver)
	}

	twice := body(root)[1].(*ast.DefNode)
	if twice.Parameters == nil || twice.Parameters.Requireds[0].Name != "x" {
		t.Fatalf("unparenthesized parameters = %+v", twice.Parameters)
	}

	// параметры не видны снаружи def
	root = mustParse(t, "def f(a); end\na")
	if _, ok := body(root)[1].(*ast.CallNode); !ok {
		t.Errorf("a outside def = %T, want call", body(root)[1])
	}
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"2 ** 3 ** 2", "(2 ** (3 ** 2))"},
		{"-2 ** 2", "-@(2 ** 2)"},
		{"-2", "-2"},
		{"a = 1 == 2 || 3 < 4 && 5", "a=((1 == 2) || ((3 < 4) && 5))"},
		{"not 1 and 2", "(not(1) and 2)"},
		{"!1 == 2", "(!(1) == 2)"},
		{"x = 1 - 2 - 3", "x=((1 - 2) - 3)"},
	}
	for _, tt := range tests {
		root := mustParse(t, tt.input)
		if got := sexp(body(root)[0]); got != tt.want {
			t.Errorf("%q: got %s, want %s", tt.input, got, tt.want)
		}
	}
}

// sexp - компактная запись для проверки приоритетов
func sexp(n ast.Node) string {
	switch n := n.(type) {
	case *ast.IntegerNode:
		return fmt.Sprint(n.Value)
	case *ast.CallNode:
		if len(n.Arguments) == 1 && n.Receiver != nil {
			return "(" + sexp(n.Receiver) + " " + n.Name + " " + sexp(n.Arguments[0]) + ")"
		}
		if n.Receiver != nil {
			return n.Name + sexp(n.Receiver)
		}
		return n.Name
	case *ast.AndNode:
		return "(" + sexp(n.Left) + " " + n.Operator + " " + sexp(n.Right) + ")"
	case *ast.OrNode:
		return "(" + sexp(n.Left) + " " + n.Operator + " " + sexp(n.Right) + ")"
	case *ast.NotNode:
		return n.Operator + "(" + sexp(n.Expression) + ")"
	case *ast.LocalVariableWriteNode:
		return n.Name + "=" + sexp(n.Value)
	}
	return n.Kind().String()
}

func TestControlFlow(t *testing.T) {
	input := `if a
  1
elsif b then 2
else
  3
end
unless c; 4; else 5; end
while d do 6 end
until e
end
`
	root := mustParse(t, input)
	stmts := body(root)
	if len(stmts) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(stmts))
	}

	ifNode := stmts[0].(*ast.IfNode)
	elsif, ok := ifNode.Subsequent.(*ast.IfNode)
	if !ok {
		t.Fatalf("subsequent = %T", ifNode.Subsequent)
	}
	if _, ok := elsif.Subsequent.(*ast.ElseNode); !ok {
		t.Fatalf("elsif subsequent = %T", elsif.Subsequent)
	}
	if ifNode.Loc().Start != 0 || ifNode.Loc().End != uint32(strings.Index(input, "end")+3) {
		t.Errorf("if location = %v", ifNode.Loc())
	}

	unless := stmts[1].(*ast.UnlessNode)
	if unless.ElseClause == nil || len(unless.Statements.Body) != 1 {
		t.Errorf("unless = %+v", unless)
	}
	if w := stmts[2].(*ast.WhileNode); len(w.Statements.Body) != 1 {
		t.Errorf("while body = %d", len(w.Statements.Body))
	}
	if u := stmts[3].(*ast.UntilNode); len(u.Statements.Body) != 0 {
		t.Errorf("until body = %d", len(u.Statements.Body))
	}
}

func TestClassAndModule(t *testing.T) {
	input := "module A::B\n  class C < Base\n    def initialize(n)\n      @n = n\n    end\n  end\nend\n"
	root := mustParse(t, input)
	mod := body(root)[0].(*ast.ModuleNode)
	path, ok := mod.ConstantPath.(*ast.ConstantPathNode)
	if !ok || path.Name != "B" {
		t.Fatalf("module path = %#v", mod.ConstantPath)
	}
	if parent, ok := path.Parent.(*ast.ConstantReadNode); !ok || parent.Name != "A" {
		t.Fatalf("module path parent = %#v", path.Parent)
	}
	cls := mod.Body.Body[0].(*ast.ClassNode)
	if sc, ok := cls.Superclass.(*ast.ConstantReadNode); !ok || sc.Name != "Base" {
		t.Fatalf("superclass = %#v", cls.Superclass)
	}
	iv, ok := ast.FindFirst[*ast.InstanceVariableWriteNode](root)
	if !ok || iv.Name != "@n" {
		t.Fatalf("ivar write = %+v", iv)
	}
	if _, ok := iv.Value.(*ast.LocalVariableReadNode); !ok {
		t.Errorf("ivar value = %T", iv.Value)
	}
}

func TestPostfix(t *testing.T) {
	root := mustParse(t, "list = [1, 2,\n 3]\nlist[0].to_s(16).size\n::Foo::Bar\nx.empty?")
	stmts := body(root)
	arr := stmts[0].(*ast.LocalVariableWriteNode).Value.(*ast.ArrayNode)
	if len(arr.Elements) != 3 {
		t.Fatalf("array elements = %d", len(arr.Elements))
	}
	size := stmts[1].(*ast.CallNode)
	if size.Name != "size" {
		t.Fatalf("outer call = %s", size.Name)
	}
	toS := size.Receiver.(*ast.CallNode)
	if toS.Name != "to_s" || len(toS.Arguments) != 1 {
		t.Fatalf("to_s = %+v", toS)
	}
	if _, ok := toS.Receiver.(*ast.IndexNode); !ok {
		t.Fatalf("to_s receiver = %T", toS.Receiver)
	}
	cp := stmts[2].(*ast.ConstantPathNode)
	if inner, ok := cp.Parent.(*ast.ConstantPathNode); !ok || inner.Parent != nil {
		t.Fatalf("::Foo parent = %#v", cp.Parent)
	}
	if c := stmts[3].(*ast.CallNode); c.Name != "empty?" {
		t.Fatalf("predicate call = %q", c.Name)
	}
}

func TestLiterals(t *testing.T) {
	root := mustParse(t, "[1_000, 2.5, 'a\\n', \"b\\n\", :sym, nil, true, false, self, __LINE__]")
	arr := body(root)[0].(*ast.ArrayNode)
	if v := arr.Elements[0].(*ast.IntegerNode).Value; v != 1000 {
		t.Errorf("int = %d", v)
	}
	if v := arr.Elements[1].(*ast.FloatNode).Value; v != 2.5 {
		t.Errorf("float = %v", v)
	}
	if v := arr.Elements[2].(*ast.StringNode).Unescaped; v != `a\n` {
		t.Errorf("single-quoted = %q", v)
	}
	if v := arr.Elements[3].(*ast.StringNode).Unescaped; v != "b\n" {
		t.Errorf("double-quoted = %q", v)
	}
	sym := arr.Elements[4].(*ast.SymbolNode)
	if sym.Value != "sym" || sym.ValueLoc.Len() != 3 {
		t.Errorf("symbol = %+v", sym)
	}
	if line := arr.Elements[9].(*ast.SourceLineNode).Line; line != 1 {
		t.Errorf("__LINE__ = %d", line)
	}
}

func TestOperatorWrite(t *testing.T) {
	root := mustParse(t, "n += 1\n@count *= 2")
	ow := body(root)[0].(*ast.OperatorWriteNode)
	if ow.Operator != "+" {
		t.Fatalf("operator = %q", ow.Operator)
	}
	if _, ok := ow.Target.(*ast.LocalVariableReadNode); !ok {
		t.Fatalf("target = %T", ow.Target)
	}
	iv := body(root)[1].(*ast.OperatorWriteNode)
	if _, ok := iv.Target.(*ast.InstanceVariableReadNode); !ok {
		t.Fatalf("ivar target = %T", iv.Target)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
	}{
		{"def foo\n  1\n", diag.SynExpectEnd},
		{"foo(1, 2", diag.SynUnclosedParen},
		{"[1, 2", diag.SynUnclosedBracket},
		{"1 +", diag.SynExpectExpression},
		{"x = 1 if y", diag.SynUnexpectedToken},
		{"1 2", diag.SynExpectTerminator},
		{"Foo = 1", diag.SynInvalidAssign},
		{"foo.bar = 1", diag.SynInvalidAssign},
		{"class foo; end", diag.SynExpectConstant},
		{"def (a); end", diag.SynExpectIdentifier},
		{"x = <<~EOS\nEOS\n", diag.LexUnsupported},
		{"99999999999999999999", diag.LexBadNumber},
	}
	for _, tt := range tests {
		_, bag := parseSource(t, tt.input)
		if !bag.HasErrors() {
			t.Errorf("%q: expected errors", tt.input)
			continue
		}
		found := false
		for _, d := range bag.Items() {
			if d.Code == tt.code {
				found = true
			}
		}
		if !found {
			t.Errorf("%q: want %s, got %s", tt.input, tt.code.ID(), diagnosticsSummary(bag))
		}
	}
}

func TestRecoveryKeepsGoodStatements(t *testing.T) {
	root, bag := parseSource(t, "a = 1\n) junk\nb = 2\n")
	if !bag.HasErrors() {
		t.Fatal("expected errors")
	}
	var names []string
	for _, s := range body(root) {
		if w, ok := s.(*ast.LocalVariableWriteNode); ok {
			names = append(names, w.Name)
		}
	}
	if strings.Join(names, ",") != "a,b" {
		t.Fatalf("recovered writes = %v", names)
	}
}

func TestMaxErrors(t *testing.T) {
	_, bag := parseSourceWithOptions(t, ")\n)\n)\n)\n", Options{MaxErrors: 2})
	if bag.Len() != 2 {
		t.Fatalf("expected 2 reported errors, got %d: %s", bag.Len(), diagnosticsSummary(bag))
	}
}

func TestLocationInvariants(t *testing.T) {
	inputs := []string{
		"def foo; __FILE__; end",
		"class A < B::C\n  def d(e, f)\n    x = e.g(f)[0]\n    x += -1\n  end\nend\n",
		"if a then b elsif c then d else end",
		"unless x\nelse\n  y\nend",
		"while !done do step end",
		"x = (1 + 2) ** 3 and not y",
		"@z = [1, 'two', :three]",
	}
	for _, input := range inputs {
		root := mustParse(t, input)
		if err := testkit.CheckLocationInvariants(root, []byte(input)); err != nil {
			t.Errorf("%q: %v", input, err)
		}
	}
}
