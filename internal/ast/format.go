package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders the tree as indented text, one node or attribute per
// line. The output is deterministic and used for diffs and the dump CLI.
func Format(root Node) string {
	var b strings.Builder
	formatNode(&b, root, 0, "")
	return b.String()
}

func formatNode(b *strings.Builder, n Node, depth int, label string) {
	indent := strings.Repeat("  ", depth)
	if n == nil {
		fmt.Fprintf(b, "%s%s∅\n", indent, label)
		return
	}
	fmt.Fprintf(b, "%s%s@ %sNode %s\n", indent, label, n.Kind(), n.Loc())
	for _, a := range n.Attrs() {
		fmt.Fprintf(b, "%s  %s: %s\n", indent, a.Name, formatValue(a.Value))
	}
	for _, f := range n.Fields() {
		if !f.IsList {
			formatNode(b, f.Node, depth+1, f.Name+": ")
			continue
		}
		fmt.Fprintf(b, "%s  %s: (length: %d)\n", indent, f.Name, len(f.List))
		for i, c := range f.List {
			formatNode(b, c, depth+2, "["+strconv.Itoa(i)+"] ")
		}
	}
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return strconv.Quote(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case Location:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
