package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"rubysnap/internal/ast"
)

// CheckLocationInvariants runs a minimal set of location invariants on a
// parsed tree:
// 1) every location is ordered and lies within the source
// 2) every child location lies within its parent's location
func CheckLocationInvariants(root ast.Node, src []byte) error {
	if root == nil {
		return fmt.Errorf("nil root")
	}
	srcLen, err := safecast.Conv[uint32](len(src))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var walk func(n ast.Node, path string) error
	walk = func(n ast.Node, path string) error {
		l := n.Loc()
		if l.Start > l.End {
			return fmt.Errorf("%s: inverted location %s", path, l)
		}
		if l.End > srcLen {
			return fmt.Errorf("%s: location %s beyond content of %d bytes", path, l, srcLen)
		}
		for i, c := range n.Children() {
			cl := c.Loc()
			// child inside parent
			if cl.Start < l.Start || cl.End > l.End {
				return fmt.Errorf("%s/%d: %s %s outside parent %s %s", path, i, c.Kind(), cl, n.Kind(), l)
			}
			if err := walk(c, fmt.Sprintf("%s/%d", path, i)); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(root, root.Kind().String())
}
