package serial

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"rubysnap/internal/ast"
)

const maxDepth = 4096

type reader struct {
	dec   *msgpack.Decoder
	rest  *bytes.Reader // непрочитанный остаток под dec
	src   []byte
	err   error
	depth int
}

func (r *reader) fail(format string, args ...any) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
	}
}

// remaining: dec reads straight from rest (bytes.Reader is a ByteScanner).
func (r *reader) remaining() int {
	return r.rest.Len()
}

func (r *reader) u32() uint32 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.DecodeUint32()
	if err != nil {
		r.fail("uint: %v", err)
	}
	return v
}

func (r *reader) i64() int64 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.DecodeInt64()
	if err != nil {
		r.fail("int: %v", err)
	}
	return v
}

func (r *reader) f64() float64 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.DecodeFloat64()
	if err != nil {
		r.fail("float: %v", err)
	}
	return v
}

func (r *reader) str() string {
	if r.err != nil {
		return ""
	}
	v, err := r.dec.DecodeString()
	if err != nil {
		r.fail("string: %v", err)
	}
	return v
}

// loc читает пару смещений и проверяет, что она внутри исходника.
func (r *reader) loc() ast.Location {
	l := ast.Location{Start: r.u32(), End: r.u32()}
	if r.err == nil && (l.Start > l.End || int(l.End) > len(r.src)) {
		r.fail("location %s outside source of %d bytes", l, len(r.src))
	}
	return l
}

// text re-reads a name from the source.
func (r *reader) text(l ast.Location) string {
	if r.err != nil {
		return ""
	}
	return l.Slice(r.src)
}

func (r *reader) list() []ast.Node {
	if r.err != nil {
		return nil
	}
	n, err := r.dec.DecodeArrayLen()
	if err != nil {
		r.fail("list: %v", err)
		return nil
	}
	if n <= 0 {
		return nil
	}
	// каждый элемент занимает минимум байт
	if n > r.remaining() {
		r.fail("list of %d elements exceeds %d remaining bytes", n, r.remaining())
		return nil
	}
	out := make([]ast.Node, 0, n)
	for i := 0; i < n && r.err == nil; i++ {
		out = append(out, r.node())
	}
	return out
}

func as[T ast.Node](r *reader, n ast.Node) T {
	var zero T
	if n == nil || r.err != nil {
		return zero
	}
	t, ok := n.(T)
	if !ok {
		r.fail("unexpected %s node", n.Kind())
		return zero
	}
	return t
}

func listAs[T ast.Node](r *reader, xs []ast.Node) []T {
	if len(xs) == 0 {
		return nil
	}
	out := make([]T, len(xs))
	for i, x := range xs {
		out[i] = as[T](r, x)
	}
	return out
}

// arity - число элементов массива узла после [kind, start, end].
var arity = map[ast.NodeKind]int{
	ast.KindProgram:               1,
	ast.KindStatements:            1,
	ast.KindDef:                   4,
	ast.KindParameters:            1,
	ast.KindRequiredParameter:     0,
	ast.KindClass:                 3,
	ast.KindModule:                2,
	ast.KindIf:                    3,
	ast.KindUnless:                3,
	ast.KindElse:                  1,
	ast.KindWhile:                 2,
	ast.KindUntil:                 2,
	ast.KindReturn:                1,
	ast.KindCall:                  5,
	ast.KindIndex:                 2,
	ast.KindLocalVariableWrite:    3,
	ast.KindLocalVariableRead:     0,
	ast.KindInstanceVariableWrite: 3,
	ast.KindInstanceVariableRead:  0,
	ast.KindConstantRead:          0,
	ast.KindConstantPath:          3,
	ast.KindInteger:               1,
	ast.KindFloat:                 1,
	ast.KindString:                1,
	ast.KindSymbol:                2,
	ast.KindArray:                 1,
	ast.KindNil:                   0,
	ast.KindTrue:                  0,
	ast.KindFalse:                 0,
	ast.KindSelf:                  0,
	ast.KindSourceFile:            1,
	ast.KindSourceLine:            1,
	ast.KindAnd:                   3,
	ast.KindOr:                    3,
	ast.KindNot:                   2,
	ast.KindParentheses:           1,
	ast.KindOperatorWrite:         3,
}

func (r *reader) node() ast.Node {
	if r.err != nil {
		return nil
	}
	code, err := r.dec.PeekCode()
	if err != nil {
		r.fail("node: %v", err)
		return nil
	}
	if code == msgpcode.Nil {
		if err := r.dec.DecodeNil(); err != nil {
			r.fail("nil: %v", err)
		}
		return nil
	}

	r.depth++
	defer func() { r.depth-- }()
	if r.depth > maxDepth {
		r.fail("tree deeper than %d", maxDepth)
		return nil
	}

	size, err := r.dec.DecodeArrayLen()
	if err != nil {
		r.fail("node header: %v", err)
		return nil
	}
	kind := ast.NodeKind(r.u32())
	if r.err != nil {
		return nil
	}
	want, ok := arity[kind]
	if !ok || !kind.Valid() {
		r.fail("unknown node kind %d", kind)
		return nil
	}
	if size != 3+want {
		r.fail("%s node has %d elements, want %d", kind, size, 3+want)
		return nil
	}
	base := ast.At(r.loc())

	switch kind {
	case ast.KindProgram:
		return &ast.ProgramNode{Base: base, Statements: as[*ast.StatementsNode](r, r.node())}
	case ast.KindStatements:
		return &ast.StatementsNode{Base: base, Body: r.list()}
	case ast.KindDef:
		n := &ast.DefNode{Base: base, NameLoc: r.loc()}
		n.Name = r.text(n.NameLoc)
		n.Parameters = as[*ast.ParametersNode](r, r.node())
		n.Body = as[*ast.StatementsNode](r, r.node())
		return n
	case ast.KindParameters:
		return &ast.ParametersNode{Base: base, Requireds: listAs[*ast.RequiredParameterNode](r, r.list())}
	case ast.KindRequiredParameter:
		return &ast.RequiredParameterNode{Base: base, Name: r.text(base.Location)}
	case ast.KindClass:
		n := &ast.ClassNode{Base: base, ConstantPath: r.node(), Superclass: r.node()}
		n.Body = as[*ast.StatementsNode](r, r.node())
		return n
	case ast.KindModule:
		n := &ast.ModuleNode{Base: base, ConstantPath: r.node()}
		n.Body = as[*ast.StatementsNode](r, r.node())
		return n
	case ast.KindIf:
		n := &ast.IfNode{Base: base, Predicate: r.node()}
		n.Statements = as[*ast.StatementsNode](r, r.node())
		n.Subsequent = r.node()
		return n
	case ast.KindUnless:
		n := &ast.UnlessNode{Base: base, Predicate: r.node()}
		n.Statements = as[*ast.StatementsNode](r, r.node())
		n.ElseClause = as[*ast.ElseNode](r, r.node())
		return n
	case ast.KindElse:
		return &ast.ElseNode{Base: base, Statements: as[*ast.StatementsNode](r, r.node())}
	case ast.KindWhile:
		n := &ast.WhileNode{Base: base, Predicate: r.node()}
		n.Statements = as[*ast.StatementsNode](r, r.node())
		return n
	case ast.KindUntil:
		n := &ast.UntilNode{Base: base, Predicate: r.node()}
		n.Statements = as[*ast.StatementsNode](r, r.node())
		return n
	case ast.KindReturn:
		return &ast.ReturnNode{Base: base, Arguments: r.list()}
	case ast.KindCall:
		n := &ast.CallNode{Base: base, Name: r.str(), NameLoc: r.loc()}
		n.Receiver = r.node()
		n.Arguments = r.list()
		return n
	case ast.KindIndex:
		n := &ast.IndexNode{Base: base, Receiver: r.node()}
		n.Arguments = r.list()
		return n
	case ast.KindLocalVariableWrite:
		n := &ast.LocalVariableWriteNode{Base: base, NameLoc: r.loc()}
		n.Name = r.text(n.NameLoc)
		n.Value = r.node()
		return n
	case ast.KindLocalVariableRead:
		return &ast.LocalVariableReadNode{Base: base, Name: r.text(base.Location)}
	case ast.KindInstanceVariableWrite:
		n := &ast.InstanceVariableWriteNode{Base: base, NameLoc: r.loc()}
		n.Name = r.text(n.NameLoc)
		n.Value = r.node()
		return n
	case ast.KindInstanceVariableRead:
		return &ast.InstanceVariableReadNode{Base: base, Name: r.text(base.Location)}
	case ast.KindConstantRead:
		return &ast.ConstantReadNode{Base: base, Name: r.text(base.Location)}
	case ast.KindConstantPath:
		n := &ast.ConstantPathNode{Base: base, NameLoc: r.loc()}
		n.Name = r.text(n.NameLoc)
		n.Parent = r.node()
		return n
	case ast.KindInteger:
		return &ast.IntegerNode{Base: base, Value: r.i64()}
	case ast.KindFloat:
		return &ast.FloatNode{Base: base, Value: r.f64()}
	case ast.KindString:
		return &ast.StringNode{Base: base, Unescaped: r.str()}
	case ast.KindSymbol:
		n := &ast.SymbolNode{Base: base, ValueLoc: r.loc()}
		n.Value = r.text(n.ValueLoc)
		return n
	case ast.KindArray:
		return &ast.ArrayNode{Base: base, Elements: r.list()}
	case ast.KindNil:
		return &ast.NilNode{Base: base}
	case ast.KindTrue:
		return &ast.TrueNode{Base: base}
	case ast.KindFalse:
		return &ast.FalseNode{Base: base}
	case ast.KindSelf:
		return &ast.SelfNode{Base: base}
	case ast.KindSourceFile:
		return &ast.SourceFileNode{Base: base, Filepath: r.str()}
	case ast.KindSourceLine:
		return &ast.SourceLineNode{Base: base, Line: r.i64()}
	case ast.KindAnd:
		n := &ast.AndNode{Base: base, Operator: r.str()}
		n.Left, n.Right = r.node(), r.node()
		return n
	case ast.KindOr:
		n := &ast.OrNode{Base: base, Operator: r.str()}
		n.Left, n.Right = r.node(), r.node()
		return n
	case ast.KindNot:
		n := &ast.NotNode{Base: base, Operator: r.str()}
		n.Expression = r.node()
		return n
	case ast.KindParentheses:
		return &ast.ParenthesesNode{Base: base, Body: as[*ast.StatementsNode](r, r.node())}
	case ast.KindOperatorWrite:
		n := &ast.OperatorWriteNode{Base: base, Operator: r.str()}
		n.Target, n.Value = r.node(), r.node()
		return n
	}
	r.fail("unhandled node kind %s", kind)
	return nil
}
