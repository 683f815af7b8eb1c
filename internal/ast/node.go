package ast

import "fmt"

// Location is a half-open byte range [Start, End) in the source buffer.
type Location struct {
	Start uint32
	End   uint32
}

func (l Location) Len() uint32 { return l.End - l.Start }

// Slice returns the source text covered by l, or "" when l is out of range.
func (l Location) Slice(src []byte) string {
	if l.Start > l.End || int(l.End) > len(src) {
		return ""
	}
	return string(src[l.Start:l.End])
}

func (l Location) String() string {
	return fmt.Sprintf("(%d...%d)", l.Start, l.End)
}

// Cover returns the smallest location containing both l and o.
func (l Location) Cover(o Location) Location {
	out := l
	if o.Start < out.Start {
		out.Start = o.Start
	}
	if o.End > out.End {
		out.End = o.End
	}
	return out
}

// Node is implemented by every syntax tree node. The set is closed: only
// types in this package satisfy it.
type Node interface {
	Kind() NodeKind
	Loc() Location
	// Fields lists child slots in a fixed order, including empty ones.
	Fields() []Field
	// Children returns the non-nil children in field order.
	Children() []Node
	Attrs() []Attr

	node()
}

// Base carries the location shared by all nodes.
type Base struct {
	Location Location
}

// At is a shorthand for Base{Location: loc}.
func At(loc Location) Base { return Base{Location: loc} }

// AtRange builds a Base from two offsets.
func AtRange(start, end uint32) Base { return Base{Location: Location{Start: start, End: end}} }

func (b Base) Loc() Location { return b.Location }

func (Base) node() {}

// Field is one named child slot of a node: either a single optional child
// or a list.
type Field struct {
	Name   string
	Node   Node
	List   []Node
	IsList bool
}

// Attr is a scalar property of a node. Values are comparable: string,
// int64, float64, bool or Location.
type Attr struct {
	Name  string
	Value any
}

func one[T Node](name string, n T) Field {
	var zero T
	if any(n) == any(zero) {
		return Field{Name: name}
	}
	return Field{Name: name, Node: n}
}

func many[T Node](name string, xs []T) Field {
	list := make([]Node, len(xs))
	for i, x := range xs {
		list[i] = x
	}
	return Field{Name: name, List: list, IsList: true}
}

func collect(fields []Field) []Node {
	var out []Node
	for _, f := range fields {
		if f.IsList {
			out = append(out, f.List...)
		} else if f.Node != nil {
			out = append(out, f.Node)
		}
	}
	return out
}

// NodeKind identifies a node type.
type NodeKind uint8

const (
	KindInvalid NodeKind = iota
	KindProgram
	KindStatements
	KindDef
	KindParameters
	KindRequiredParameter
	KindClass
	KindModule
	KindIf
	KindUnless
	KindElse
	KindWhile
	KindUntil
	KindReturn
	KindCall
	KindIndex
	KindLocalVariableWrite
	KindLocalVariableRead
	KindInstanceVariableWrite
	KindInstanceVariableRead
	KindConstantRead
	KindConstantPath
	KindInteger
	KindFloat
	KindString
	KindSymbol
	KindArray
	KindNil
	KindTrue
	KindFalse
	KindSelf
	KindSourceFile
	KindSourceLine
	KindAnd
	KindOr
	KindNot
	KindParentheses
	KindOperatorWrite

	kindCount
)

var kindNames = [...]string{
	KindInvalid:               "Invalid",
	KindProgram:               "Program",
	KindStatements:            "Statements",
	KindDef:                   "Def",
	KindParameters:            "Parameters",
	KindRequiredParameter:     "RequiredParameter",
	KindClass:                 "Class",
	KindModule:                "Module",
	KindIf:                    "If",
	KindUnless:                "Unless",
	KindElse:                  "Else",
	KindWhile:                 "While",
	KindUntil:                 "Until",
	KindReturn:                "Return",
	KindCall:                  "Call",
	KindIndex:                 "Index",
	KindLocalVariableWrite:    "LocalVariableWrite",
	KindLocalVariableRead:     "LocalVariableRead",
	KindInstanceVariableWrite: "InstanceVariableWrite",
	KindInstanceVariableRead:  "InstanceVariableRead",
	KindConstantRead:          "ConstantRead",
	KindConstantPath:          "ConstantPath",
	KindInteger:               "Integer",
	KindFloat:                 "Float",
	KindString:                "String",
	KindSymbol:                "Symbol",
	KindArray:                 "Array",
	KindNil:                   "Nil",
	KindTrue:                  "True",
	KindFalse:                 "False",
	KindSelf:                  "Self",
	KindSourceFile:            "SourceFile",
	KindSourceLine:            "SourceLine",
	KindAnd:                   "And",
	KindOr:                    "Or",
	KindNot:                   "Not",
	KindParentheses:           "Parentheses",
	KindOperatorWrite:         "OperatorWrite",
}

func (k NodeKind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", k)
}

// Valid reports whether k names a real node type.
func (k NodeKind) Valid() bool { return k > KindInvalid && k < kindCount }

// pathName is the lower_snake form used as the root segment of divergence
// paths, e.g. "program".
func (k NodeKind) pathName() string {
	name := k.String()
	out := make([]byte, 0, len(name)+4)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				out = append(out, '_')
			}
			c += 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}
