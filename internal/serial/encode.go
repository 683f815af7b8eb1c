package serial

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"rubysnap/internal/ast"
)

// writer - msgpack encoder с "липкой" ошибкой.
type writer struct {
	enc *msgpack.Encoder
	err error
}

func (w *writer) do(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *writer) str(s string) {
	if w.err == nil {
		w.do(w.enc.EncodeString(s))
	}
}

func (w *writer) u32(v uint32) {
	if w.err == nil {
		w.do(w.enc.EncodeUint(uint64(v)))
	}
}

func (w *writer) arrayLen(n int) {
	if w.err == nil {
		w.do(w.enc.EncodeArrayLen(n))
	}
}

func (w *writer) value(v any) {
	if w.err != nil {
		return
	}
	switch v := v.(type) {
	case uint32:
		w.do(w.enc.EncodeUint(uint64(v)))
	case int64:
		w.do(w.enc.EncodeInt(v))
	case float64:
		w.do(w.enc.EncodeFloat64(v))
	case string:
		w.do(w.enc.EncodeString(v))
	default:
		w.do(fmt.Errorf("unsupported attribute type %T", v))
	}
}

// node пишет [kind, start, end, attrs..., fields...]; пустой слот - nil,
// список - вложенный массив.
func (w *writer) node(n ast.Node) {
	if w.err != nil {
		return
	}
	if n == nil {
		w.do(w.enc.EncodeNil())
		return
	}

	attrs := attrsOf(n)
	fields := n.Fields()
	l := n.Loc()

	w.arrayLen(3 + len(attrs) + len(fields))
	w.value(uint32(n.Kind()))
	w.u32(l.Start)
	w.u32(l.End)
	for _, a := range attrs {
		w.value(a)
	}
	for _, f := range fields {
		if !f.IsList {
			w.node(f.Node)
			continue
		}
		w.arrayLen(len(f.List))
		for _, c := range f.List {
			w.node(c)
		}
	}
}

// attrsOf lists the stored scalar attributes. Names that can be re-read
// from the source are stored as their location only.
func attrsOf(n ast.Node) []any {
	switch n := n.(type) {
	case *ast.DefNode:
		return locAttrs(n.NameLoc)
	case *ast.CallNode:
		return []any{n.Name, n.NameLoc.Start, n.NameLoc.End}
	case *ast.LocalVariableWriteNode:
		return locAttrs(n.NameLoc)
	case *ast.InstanceVariableWriteNode:
		return locAttrs(n.NameLoc)
	case *ast.ConstantPathNode:
		return locAttrs(n.NameLoc)
	case *ast.SymbolNode:
		return locAttrs(n.ValueLoc)
	case *ast.IntegerNode:
		return []any{n.Value}
	case *ast.FloatNode:
		return []any{n.Value}
	case *ast.StringNode:
		return []any{n.Unescaped}
	case *ast.SourceFileNode:
		return []any{n.Filepath}
	case *ast.SourceLineNode:
		return []any{n.Line}
	case *ast.AndNode:
		return []any{n.Operator}
	case *ast.OrNode:
		return []any{n.Operator}
	case *ast.NotNode:
		return []any{n.Operator}
	case *ast.OperatorWriteNode:
		return []any{n.Operator}
	}
	return nil
}

func locAttrs(l ast.Location) []any {
	return []any{l.Start, l.End}
}
