package ast

// ProgramNode is the root of every parse.
type ProgramNode struct {
	Base
	Statements *StatementsNode
}

func (n *ProgramNode) Kind() NodeKind   { return KindProgram }
func (n *ProgramNode) Fields() []Field  { return []Field{one("statements", n.Statements)} }
func (n *ProgramNode) Children() []Node { return collect(n.Fields()) }
func (n *ProgramNode) Attrs() []Attr    { return nil }

// StatementsNode is a sequence of statements.
type StatementsNode struct {
	Base
	Body []Node
}

func (n *StatementsNode) Kind() NodeKind   { return KindStatements }
func (n *StatementsNode) Fields() []Field  { return []Field{many("body", n.Body)} }
func (n *StatementsNode) Children() []Node { return collect(n.Fields()) }
func (n *StatementsNode) Attrs() []Attr    { return nil }

// DefNode is a method definition. Parameters is nil when the method has no
// parameter list.
type DefNode struct {
	Base
	Name       string
	NameLoc    Location
	Parameters *ParametersNode
	Body       *StatementsNode
}

func (n *DefNode) Kind() NodeKind { return KindDef }
func (n *DefNode) Fields() []Field {
	return []Field{one("parameters", n.Parameters), one("body", n.Body)}
}
func (n *DefNode) Children() []Node { return collect(n.Fields()) }
func (n *DefNode) Attrs() []Attr {
	return []Attr{{"name", n.Name}, {"name_loc", n.NameLoc}}
}

type ParametersNode struct {
	Base
	Requireds []*RequiredParameterNode
}

func (n *ParametersNode) Kind() NodeKind   { return KindParameters }
func (n *ParametersNode) Fields() []Field  { return []Field{many("requireds", n.Requireds)} }
func (n *ParametersNode) Children() []Node { return collect(n.Fields()) }
func (n *ParametersNode) Attrs() []Attr    { return nil }

// RequiredParameterNode names a positional parameter; its location is the
// name itself.
type RequiredParameterNode struct {
	Base
	Name string
}

func (n *RequiredParameterNode) Kind() NodeKind   { return KindRequiredParameter }
func (n *RequiredParameterNode) Fields() []Field  { return nil }
func (n *RequiredParameterNode) Children() []Node { return nil }
func (n *RequiredParameterNode) Attrs() []Attr    { return []Attr{{"name", n.Name}} }

// ClassNode: ConstantPath is a ConstantReadNode or ConstantPathNode.
type ClassNode struct {
	Base
	ConstantPath Node
	Superclass   Node
	Body         *StatementsNode
}

func (n *ClassNode) Kind() NodeKind { return KindClass }
func (n *ClassNode) Fields() []Field {
	return []Field{one("constant_path", n.ConstantPath), one("superclass", n.Superclass), one("body", n.Body)}
}
func (n *ClassNode) Children() []Node { return collect(n.Fields()) }
func (n *ClassNode) Attrs() []Attr    { return nil }

type ModuleNode struct {
	Base
	ConstantPath Node
	Body         *StatementsNode
}

func (n *ModuleNode) Kind() NodeKind { return KindModule }
func (n *ModuleNode) Fields() []Field {
	return []Field{one("constant_path", n.ConstantPath), one("body", n.Body)}
}
func (n *ModuleNode) Children() []Node { return collect(n.Fields()) }
func (n *ModuleNode) Attrs() []Attr    { return nil }

// IfNode: Subsequent is another IfNode for elsif, an ElseNode, or nil.
type IfNode struct {
	Base
	Predicate  Node
	Statements *StatementsNode
	Subsequent Node
}

func (n *IfNode) Kind() NodeKind { return KindIf }
func (n *IfNode) Fields() []Field {
	return []Field{one("predicate", n.Predicate), one("statements", n.Statements), one("subsequent", n.Subsequent)}
}
func (n *IfNode) Children() []Node { return collect(n.Fields()) }
func (n *IfNode) Attrs() []Attr    { return nil }

type UnlessNode struct {
	Base
	Predicate  Node
	Statements *StatementsNode
	ElseClause *ElseNode
}

func (n *UnlessNode) Kind() NodeKind { return KindUnless }
func (n *UnlessNode) Fields() []Field {
	return []Field{one("predicate", n.Predicate), one("statements", n.Statements), one("else_clause", n.ElseClause)}
}
func (n *UnlessNode) Children() []Node { return collect(n.Fields()) }
func (n *UnlessNode) Attrs() []Attr    { return nil }

type ElseNode struct {
	Base
	Statements *StatementsNode
}

func (n *ElseNode) Kind() NodeKind   { return KindElse }
func (n *ElseNode) Fields() []Field  { return []Field{one("statements", n.Statements)} }
func (n *ElseNode) Children() []Node { return collect(n.Fields()) }
func (n *ElseNode) Attrs() []Attr    { return nil }

type WhileNode struct {
	Base
	Predicate  Node
	Statements *StatementsNode
}

func (n *WhileNode) Kind() NodeKind { return KindWhile }
func (n *WhileNode) Fields() []Field {
	return []Field{one("predicate", n.Predicate), one("statements", n.Statements)}
}
func (n *WhileNode) Children() []Node { return collect(n.Fields()) }
func (n *WhileNode) Attrs() []Attr    { return nil }

type UntilNode struct {
	Base
	Predicate  Node
	Statements *StatementsNode
}

func (n *UntilNode) Kind() NodeKind { return KindUntil }
func (n *UntilNode) Fields() []Field {
	return []Field{one("predicate", n.Predicate), one("statements", n.Statements)}
}
func (n *UntilNode) Children() []Node { return collect(n.Fields()) }
func (n *UntilNode) Attrs() []Attr    { return nil }

type ReturnNode struct {
	Base
	Arguments []Node
}

func (n *ReturnNode) Kind() NodeKind   { return KindReturn }
func (n *ReturnNode) Fields() []Field  { return []Field{many("arguments", n.Arguments)} }
func (n *ReturnNode) Children() []Node { return collect(n.Fields()) }
func (n *ReturnNode) Attrs() []Attr    { return nil }

// CallNode is a method call, including binary and unary operators
// ("+", "-@", "==" ...). Receiver is nil for self calls.
type CallNode struct {
	Base
	Receiver  Node
	Name      string
	NameLoc   Location
	Arguments []Node
}

func (n *CallNode) Kind() NodeKind { return KindCall }
func (n *CallNode) Fields() []Field {
	return []Field{one("receiver", n.Receiver), many("arguments", n.Arguments)}
}
func (n *CallNode) Children() []Node { return collect(n.Fields()) }
func (n *CallNode) Attrs() []Attr {
	return []Attr{{"name", n.Name}, {"name_loc", n.NameLoc}}
}

// IndexNode is receiver[arguments...].
type IndexNode struct {
	Base
	Receiver  Node
	Arguments []Node
}

func (n *IndexNode) Kind() NodeKind { return KindIndex }
func (n *IndexNode) Fields() []Field {
	return []Field{one("receiver", n.Receiver), many("arguments", n.Arguments)}
}
func (n *IndexNode) Children() []Node { return collect(n.Fields()) }
func (n *IndexNode) Attrs() []Attr    { return nil }

type LocalVariableWriteNode struct {
	Base
	Name    string
	NameLoc Location
	Value   Node
}

func (n *LocalVariableWriteNode) Kind() NodeKind   { return KindLocalVariableWrite }
func (n *LocalVariableWriteNode) Fields() []Field  { return []Field{one("value", n.Value)} }
func (n *LocalVariableWriteNode) Children() []Node { return collect(n.Fields()) }
func (n *LocalVariableWriteNode) Attrs() []Attr {
	return []Attr{{"name", n.Name}, {"name_loc", n.NameLoc}}
}

type LocalVariableReadNode struct {
	Base
	Name string
}

func (n *LocalVariableReadNode) Kind() NodeKind   { return KindLocalVariableRead }
func (n *LocalVariableReadNode) Fields() []Field  { return nil }
func (n *LocalVariableReadNode) Children() []Node { return nil }
func (n *LocalVariableReadNode) Attrs() []Attr    { return []Attr{{"name", n.Name}} }

type InstanceVariableWriteNode struct {
	Base
	Name    string
	NameLoc Location
	Value   Node
}

func (n *InstanceVariableWriteNode) Kind() NodeKind   { return KindInstanceVariableWrite }
func (n *InstanceVariableWriteNode) Fields() []Field  { return []Field{one("value", n.Value)} }
func (n *InstanceVariableWriteNode) Children() []Node { return collect(n.Fields()) }
func (n *InstanceVariableWriteNode) Attrs() []Attr {
	return []Attr{{"name", n.Name}, {"name_loc", n.NameLoc}}
}

type InstanceVariableReadNode struct {
	Base
	Name string
}

func (n *InstanceVariableReadNode) Kind() NodeKind   { return KindInstanceVariableRead }
func (n *InstanceVariableReadNode) Fields() []Field  { return nil }
func (n *InstanceVariableReadNode) Children() []Node { return nil }
func (n *InstanceVariableReadNode) Attrs() []Attr    { return []Attr{{"name", n.Name}} }

type ConstantReadNode struct {
	Base
	Name string
}

func (n *ConstantReadNode) Kind() NodeKind   { return KindConstantRead }
func (n *ConstantReadNode) Fields() []Field  { return nil }
func (n *ConstantReadNode) Children() []Node { return nil }
func (n *ConstantReadNode) Attrs() []Attr    { return []Attr{{"name", n.Name}} }

// ConstantPathNode is Parent::Name; Parent is nil for a top-level ::Name.
type ConstantPathNode struct {
	Base
	Parent  Node
	Name    string
	NameLoc Location
}

func (n *ConstantPathNode) Kind() NodeKind   { return KindConstantPath }
func (n *ConstantPathNode) Fields() []Field  { return []Field{one("parent", n.Parent)} }
func (n *ConstantPathNode) Children() []Node { return collect(n.Fields()) }
func (n *ConstantPathNode) Attrs() []Attr {
	return []Attr{{"name", n.Name}, {"name_loc", n.NameLoc}}
}

type IntegerNode struct {
	Base
	Value int64
}

func (n *IntegerNode) Kind() NodeKind   { return KindInteger }
func (n *IntegerNode) Fields() []Field  { return nil }
func (n *IntegerNode) Children() []Node { return nil }
func (n *IntegerNode) Attrs() []Attr    { return []Attr{{"value", n.Value}} }

type FloatNode struct {
	Base
	Value float64
}

func (n *FloatNode) Kind() NodeKind   { return KindFloat }
func (n *FloatNode) Fields() []Field  { return nil }
func (n *FloatNode) Children() []Node { return nil }
func (n *FloatNode) Attrs() []Attr    { return []Attr{{"value", n.Value}} }

// StringNode holds the decoded value of a string literal.
type StringNode struct {
	Base
	Unescaped string
}

func (n *StringNode) Kind() NodeKind   { return KindString }
func (n *StringNode) Fields() []Field  { return nil }
func (n *StringNode) Children() []Node { return nil }
func (n *StringNode) Attrs() []Attr    { return []Attr{{"unescaped", n.Unescaped}} }

// SymbolNode is :name; ValueLoc covers the name without the colon.
type SymbolNode struct {
	Base
	Value    string
	ValueLoc Location
}

func (n *SymbolNode) Kind() NodeKind   { return KindSymbol }
func (n *SymbolNode) Fields() []Field  { return nil }
func (n *SymbolNode) Children() []Node { return nil }
func (n *SymbolNode) Attrs() []Attr {
	return []Attr{{"value", n.Value}, {"value_loc", n.ValueLoc}}
}

type ArrayNode struct {
	Base
	Elements []Node
}

func (n *ArrayNode) Kind() NodeKind   { return KindArray }
func (n *ArrayNode) Fields() []Field  { return []Field{many("elements", n.Elements)} }
func (n *ArrayNode) Children() []Node { return collect(n.Fields()) }
func (n *ArrayNode) Attrs() []Attr    { return nil }

type NilNode struct{ Base }

func (n *NilNode) Kind() NodeKind   { return KindNil }
func (n *NilNode) Fields() []Field  { return nil }
func (n *NilNode) Children() []Node { return nil }
func (n *NilNode) Attrs() []Attr    { return nil }

type TrueNode struct{ Base }

func (n *TrueNode) Kind() NodeKind   { return KindTrue }
func (n *TrueNode) Fields() []Field  { return nil }
func (n *TrueNode) Children() []Node { return nil }
func (n *TrueNode) Attrs() []Attr    { return nil }

type FalseNode struct{ Base }

func (n *FalseNode) Kind() NodeKind   { return KindFalse }
func (n *FalseNode) Fields() []Field  { return nil }
func (n *FalseNode) Children() []Node { return nil }
func (n *FalseNode) Attrs() []Attr    { return nil }

type SelfNode struct{ Base }

func (n *SelfNode) Kind() NodeKind   { return KindSelf }
func (n *SelfNode) Fields() []Field  { return nil }
func (n *SelfNode) Children() []Node { return nil }
func (n *SelfNode) Attrs() []Attr    { return nil }

// SourceFileNode is __FILE__; Filepath is the path given to the parser.
type SourceFileNode struct {
	Base
	Filepath string
}

func (n *SourceFileNode) Kind() NodeKind   { return KindSourceFile }
func (n *SourceFileNode) Fields() []Field  { return nil }
func (n *SourceFileNode) Children() []Node { return nil }
func (n *SourceFileNode) Attrs() []Attr    { return []Attr{{"filepath", n.Filepath}} }

// SourceLineNode is __LINE__ with its 1-based line number.
type SourceLineNode struct {
	Base
	Line int64
}

func (n *SourceLineNode) Kind() NodeKind   { return KindSourceLine }
func (n *SourceLineNode) Fields() []Field  { return nil }
func (n *SourceLineNode) Children() []Node { return nil }
func (n *SourceLineNode) Attrs() []Attr    { return []Attr{{"line", n.Line}} }

// AndNode covers both "&&" and "and"; Operator holds the spelling.
type AndNode struct {
	Base
	Left     Node
	Right    Node
	Operator string
}

func (n *AndNode) Kind() NodeKind   { return KindAnd }
func (n *AndNode) Fields() []Field  { return []Field{one("left", n.Left), one("right", n.Right)} }
func (n *AndNode) Children() []Node { return collect(n.Fields()) }
func (n *AndNode) Attrs() []Attr    { return []Attr{{"operator", n.Operator}} }

type OrNode struct {
	Base
	Left     Node
	Right    Node
	Operator string
}

func (n *OrNode) Kind() NodeKind   { return KindOr }
func (n *OrNode) Fields() []Field  { return []Field{one("left", n.Left), one("right", n.Right)} }
func (n *OrNode) Children() []Node { return collect(n.Fields()) }
func (n *OrNode) Attrs() []Attr    { return []Attr{{"operator", n.Operator}} }

// NotNode covers "!x" and "not x".
type NotNode struct {
	Base
	Expression Node
	Operator   string
}

func (n *NotNode) Kind() NodeKind   { return KindNot }
func (n *NotNode) Fields() []Field  { return []Field{one("expression", n.Expression)} }
func (n *NotNode) Children() []Node { return collect(n.Fields()) }
func (n *NotNode) Attrs() []Attr    { return []Attr{{"operator", n.Operator}} }

// ParenthesesNode: Body is nil for "()".
type ParenthesesNode struct {
	Base
	Body *StatementsNode
}

func (n *ParenthesesNode) Kind() NodeKind   { return KindParentheses }
func (n *ParenthesesNode) Fields() []Field  { return []Field{one("body", n.Body)} }
func (n *ParenthesesNode) Children() []Node { return collect(n.Fields()) }
func (n *ParenthesesNode) Attrs() []Attr    { return nil }

// OperatorWriteNode is "target op= value"; Target is a local or instance
// variable read node and Operator is the binary operator without '='.
type OperatorWriteNode struct {
	Base
	Target   Node
	Operator string
	Value    Node
}

func (n *OperatorWriteNode) Kind() NodeKind { return KindOperatorWrite }
func (n *OperatorWriteNode) Fields() []Field {
	return []Field{one("target", n.Target), one("value", n.Value)}
}
func (n *OperatorWriteNode) Children() []Node { return collect(n.Fields()) }
func (n *OperatorWriteNode) Attrs() []Attr    { return []Attr{{"operator", n.Operator}} }

// compile-time checks
var (
	_ Node = (*ProgramNode)(nil)
	_ Node = (*StatementsNode)(nil)
	_ Node = (*DefNode)(nil)
	_ Node = (*ParametersNode)(nil)
	_ Node = (*RequiredParameterNode)(nil)
	_ Node = (*ClassNode)(nil)
	_ Node = (*ModuleNode)(nil)
	_ Node = (*IfNode)(nil)
	_ Node = (*UnlessNode)(nil)
	_ Node = (*ElseNode)(nil)
	_ Node = (*WhileNode)(nil)
	_ Node = (*UntilNode)(nil)
	_ Node = (*ReturnNode)(nil)
	_ Node = (*CallNode)(nil)
	_ Node = (*IndexNode)(nil)
	_ Node = (*LocalVariableWriteNode)(nil)
	_ Node = (*LocalVariableReadNode)(nil)
	_ Node = (*InstanceVariableWriteNode)(nil)
	_ Node = (*InstanceVariableReadNode)(nil)
	_ Node = (*ConstantReadNode)(nil)
	_ Node = (*ConstantPathNode)(nil)
	_ Node = (*IntegerNode)(nil)
	_ Node = (*FloatNode)(nil)
	_ Node = (*StringNode)(nil)
	_ Node = (*SymbolNode)(nil)
	_ Node = (*ArrayNode)(nil)
	_ Node = (*NilNode)(nil)
	_ Node = (*TrueNode)(nil)
	_ Node = (*FalseNode)(nil)
	_ Node = (*SelfNode)(nil)
	_ Node = (*SourceFileNode)(nil)
	_ Node = (*SourceLineNode)(nil)
	_ Node = (*AndNode)(nil)
	_ Node = (*OrNode)(nil)
	_ Node = (*NotNode)(nil)
	_ Node = (*ParenthesesNode)(nil)
	_ Node = (*OperatorWriteNode)(nil)
)
