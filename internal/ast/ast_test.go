package ast

import (
	"strings"
	"testing"
)

// def foo(a); puts(a, 1); end
func sampleTree(lastArg int64) *ProgramNode {
	call := &CallNode{
		Base:    AtRange(12, 22),
		Name:    "puts",
		NameLoc: Location{12, 16},
		Arguments: []Node{
			&LocalVariableReadNode{Base: AtRange(17, 18), Name: "a"},
			&IntegerNode{Base: AtRange(20, 21), Value: lastArg},
		},
	}
	def := &DefNode{
		Base:    AtRange(0, 27),
		Name:    "foo",
		NameLoc: Location{4, 7},
		Parameters: &ParametersNode{
			Base:      AtRange(8, 9),
			Requireds: []*RequiredParameterNode{{Base: AtRange(8, 9), Name: "a"}},
		},
		Body: &StatementsNode{Base: AtRange(12, 22), Body: []Node{call}},
	}
	return &ProgramNode{
		Base:       AtRange(0, 27),
		Statements: &StatementsNode{Base: AtRange(0, 27), Body: []Node{def}},
	}
}

func TestKindPathName(t *testing.T) {
	tests := map[NodeKind]string{
		KindProgram:            "program",
		KindLocalVariableWrite: "local_variable_write",
		KindSourceFile:         "source_file",
	}
	for k, want := range tests {
		if got := k.pathName(); got != want {
			t.Errorf("%v.pathName() = %q, want %q", k, got, want)
		}
	}
	if KindInvalid.Valid() || !KindOperatorWrite.Valid() || kindCount.Valid() {
		t.Error("Valid() boundaries are wrong")
	}
}

func TestChildrenSkipsEmptySlots(t *testing.T) {
	def := &DefNode{Base: AtRange(0, 11), Name: "x", Body: &StatementsNode{}}
	if got := len(def.Fields()); got != 2 {
		t.Fatalf("fields = %d, want 2", got)
	}
	if got := len(def.Children()); got != 1 {
		t.Fatalf("children = %d, want 1 (nil parameters skipped)", got)
	}
	if def.Fields()[0].Node != nil {
		t.Fatal("nil *ParametersNode must not become a non-nil Node")
	}
}

func TestWalkAndCount(t *testing.T) {
	root := sampleTree(1)
	var kinds []string
	Inspect(root, func(n Node) bool {
		if n != nil {
			kinds = append(kinds, n.Kind().String())
		}
		return true
	})
	want := "Program Statements Def Parameters RequiredParameter Statements Call LocalVariableRead Integer"
	if got := strings.Join(kinds, " "); got != want {
		t.Fatalf("pre-order:\n got %s\nwant %s", got, want)
	}
	if Count(root) != 9 {
		t.Fatalf("Count = %d, want 9", Count(root))
	}
}

func TestFindFirst(t *testing.T) {
	root := sampleTree(1)
	call, ok := FindFirst[*CallNode](root)
	if !ok || call.Name != "puts" {
		t.Fatalf("FindFirst[*CallNode] = %v, %v", call, ok)
	}
	if _, ok := FindFirst[*SourceFileNode](root); ok {
		t.Fatal("unexpected SourceFileNode")
	}
	n := FindFirstFunc(root, func(n Node) bool { return n.Kind() == KindInteger })
	if n == nil || n.(*IntegerNode).Value != 1 {
		t.Fatalf("FindFirstFunc = %v", n)
	}
}

func TestCompareEqual(t *testing.T) {
	if d := Compare(sampleTree(1), sampleTree(1)); d != nil {
		t.Fatalf("unexpected divergence: %v", d)
	}
}

func TestCompareDivergencePath(t *testing.T) {
	d := Compare(sampleTree(1), sampleTree(2))
	if d == nil {
		t.Fatal("expected divergence")
	}
	want := "program.statements.body[0].body.body[0].arguments[1].value"
	if d.Path != want {
		t.Fatalf("path = %q, want %q", d.Path, want)
	}
	if !strings.Contains(d.Reason, "1 vs 2") {
		t.Fatalf("reason = %q", d.Reason)
	}
}

func TestCompareShape(t *testing.T) {
	a := sampleTree(1)
	b := sampleTree(1)
	def := b.Statements.Body[0].(*DefNode)
	def.Parameters = nil

	d := Compare(a, b)
	if d == nil || d.Path != "program.statements.body[0].parameters" {
		t.Fatalf("got %v", d)
	}

	c := sampleTree(1)
	call, _ := FindFirst[*CallNode](c)
	call.Arguments = call.Arguments[:1]
	d = Compare(a, c)
	if d == nil || d.Path != "program.statements.body[0].body.body[0].arguments" {
		t.Fatalf("got %v", d)
	}
	if !strings.Contains(d.Reason, "child count 2 vs 1") {
		t.Fatalf("reason = %q", d.Reason)
	}

	e := sampleTree(1)
	e.Statements.Body[0].(*DefNode).NameLoc = Location{5, 8}
	d = Compare(a, e)
	if d == nil || d.Path != "program.statements.body[0].name_loc" {
		t.Fatalf("got %v", d)
	}
}

func TestFormat(t *testing.T) {
	root := &ProgramNode{
		Base: AtRange(0, 3),
		Statements: &StatementsNode{
			Base: AtRange(0, 3),
			Body: []Node{&StringNode{Base: AtRange(0, 3), Unescaped: "a"}},
		},
	}
	want := `@ ProgramNode (0...3)
  statements: @ StatementsNode (0...3)
    body: (length: 1)
      [0] @ StringNode (0...3)
        unescaped: "a"
`
	if got := Format(root); got != want {
		t.Fatalf("Format:\n%s\nwant:\n%s", got, want)
	}
}
