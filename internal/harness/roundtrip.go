package harness

import (
	"strings"

	"github.com/google/go-cmp/cmp"

	"rubysnap/internal/ast"
)

// VerifyRoundTrip dumps src, loads the result back and requires the loaded
// tree to equal root node for node.
func VerifyRoundTrip(eng Engine, src []byte, fixture string, root ast.Node) error {
	data, err := eng.Dump(src, fixture)
	if err != nil {
		return checkErr(KindRoundTrip, fixture, err, "dump failed")
	}
	return verifyLoaded(eng, src, fixture, root, data)
}

func verifyLoaded(eng Engine, src []byte, fixture string, root ast.Node, data []byte) error {
	loaded, err := eng.Load(src, data)
	if err != nil {
		return checkErr(KindRoundTrip, fixture, err, "load failed")
	}
	if d := ast.Compare(root, loaded); d != nil {
		return checkErr(KindRoundTrip, fixture, d, "loaded tree differs\n%s", treeDiff(root, loaded))
	}
	return nil
}

// treeDiff renders both trees and diffs them line by line (-parsed +loaded).
func treeDiff(a, b ast.Node) string {
	return cmp.Diff(inspectLines(a), inspectLines(b))
}

func inspectLines(n ast.Node) []string {
	if n == nil {
		return nil
	}
	return strings.Split(strings.TrimRight(ast.Format(n), "\n"), "\n")
}
