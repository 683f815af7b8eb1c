package ast

import (
	"fmt"
	"strconv"
)

// Divergence describes the first point where two trees differ.
type Divergence struct {
	Path   string // e.g. program.statements.body[2].arguments[0]
	Reason string
}

func (d *Divergence) Error() string {
	return d.Path + ": " + d.Reason
}

// Compare walks a and b in lock-step and returns the first divergence,
// or nil when the trees are structurally equal: same kinds, locations,
// attributes and child shape.
func Compare(a, b Node) *Divergence {
	root := "<nil>"
	switch {
	case a != nil:
		root = a.Kind().pathName()
	case b != nil:
		root = b.Kind().pathName()
	}
	return compareNode(root, a, b)
}

func compareNode(path string, a, b Node) *Divergence {
	if a == nil || b == nil {
		if a == nil && b == nil {
			return nil
		}
		return &Divergence{Path: path, Reason: fmt.Sprintf("presence differs: %s vs %s", kindOrNil(a), kindOrNil(b))}
	}
	if a.Kind() != b.Kind() {
		return &Divergence{Path: path, Reason: fmt.Sprintf("kind %s vs %s", a.Kind(), b.Kind())}
	}
	if a.Loc() != b.Loc() {
		return &Divergence{Path: path, Reason: fmt.Sprintf("location %s vs %s", a.Loc(), b.Loc())}
	}

	aa, ba := a.Attrs(), b.Attrs()
	if len(aa) != len(ba) {
		return &Divergence{Path: path, Reason: fmt.Sprintf("attribute count %d vs %d", len(aa), len(ba))}
	}
	for i := range aa {
		if aa[i].Name != ba[i].Name {
			return &Divergence{Path: path, Reason: fmt.Sprintf("attribute %q vs %q", aa[i].Name, ba[i].Name)}
		}
		if aa[i].Value != ba[i].Value {
			return &Divergence{
				Path:   path + "." + aa[i].Name,
				Reason: fmt.Sprintf("value %s vs %s", formatValue(aa[i].Value), formatValue(ba[i].Value)),
			}
		}
	}

	af, bf := a.Fields(), b.Fields()
	if len(af) != len(bf) {
		return &Divergence{Path: path, Reason: fmt.Sprintf("field count %d vs %d", len(af), len(bf))}
	}
	for i := range af {
		fa, fb := af[i], bf[i]
		sub := path + "." + fa.Name
		if fa.Name != fb.Name || fa.IsList != fb.IsList {
			return &Divergence{Path: sub, Reason: fmt.Sprintf("field shape %q vs %q", fa.Name, fb.Name)}
		}
		if !fa.IsList {
			if d := compareNode(sub, fa.Node, fb.Node); d != nil {
				return d
			}
			continue
		}
		common := min(len(fa.List), len(fb.List))
		for j := 0; j < common; j++ {
			if d := compareNode(sub+"["+strconv.Itoa(j)+"]", fa.List[j], fb.List[j]); d != nil {
				return d
			}
		}
		if len(fa.List) != len(fb.List) {
			return &Divergence{Path: sub, Reason: fmt.Sprintf("child count %d vs %d", len(fa.List), len(fb.List))}
		}
	}
	return nil
}

func kindOrNil(n Node) string {
	if n == nil {
		return "nil"
	}
	return n.Kind().String()
}
