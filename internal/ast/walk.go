package ast

// Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children of
// node with w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses the tree in depth-first order.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	if v = v.Visit(node); v == nil {
		return
	}
	for _, c := range node.Children() {
		Walk(v, c)
	}
	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect calls f for every node in depth-first order; returning false
// skips the node's children. f is called with nil after the children.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

// FindFirstFunc returns the first node in pre-order for which match
// returns true, or nil.
func FindFirstFunc(root Node, match func(Node) bool) Node {
	var found Node
	Inspect(root, func(n Node) bool {
		if found != nil || n == nil {
			return false
		}
		if match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindFirst returns the first node of type T in pre-order.
func FindFirst[T Node](root Node) (T, bool) {
	n := FindFirstFunc(root, func(n Node) bool {
		_, ok := n.(T)
		return ok
	})
	if n == nil {
		var zero T
		return zero, false
	}
	return n.(T), true
}

// Count returns the number of nodes in the tree rooted at root.
func Count(root Node) int {
	total := 0
	Inspect(root, func(n Node) bool {
		if n != nil {
			total++
		}
		return true
	})
	return total
}
