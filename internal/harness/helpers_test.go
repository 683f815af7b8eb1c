package harness

import (
	"os"
	"path/filepath"
	"testing"

	"rubysnap/internal/ast"
	"rubysnap/internal/compat"
	"rubysnap/internal/diag"
	"rubysnap/internal/engine"
	"rubysnap/internal/oracle"
)

// writeTree creates files under root from slash-separated relative paths.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// fakeEngine wraps the real engine and lets a test replace single methods.
type fakeEngine struct {
	*engine.Engine
	version   string
	lexCompat func(src []byte) ([]diag.Diagnostic, []compat.Token)
	load      func(src, data []byte) (*ast.ProgramNode, error)
	newlines  func(src []byte) []uint32
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{Engine: engine.New(engine.Options{})}
}

func (f *fakeEngine) GrammarVersion() string {
	if f.version != "" {
		return f.version
	}
	return f.Engine.GrammarVersion()
}

func (f *fakeEngine) LexCompat(src []byte) ([]diag.Diagnostic, []compat.Token) {
	if f.lexCompat != nil {
		return f.lexCompat(src)
	}
	return f.Engine.LexCompat(src)
}

func (f *fakeEngine) Load(src, data []byte) (*ast.ProgramNode, error) {
	if f.load != nil {
		return f.load(src, data)
	}
	return f.Engine.Load(src, data)
}

func (f *fakeEngine) Newlines(src []byte) []uint32 {
	if f.newlines != nil {
		return f.newlines(src)
	}
	return f.Engine.Newlines(src)
}

// fakeOracle wraps the real oracle the same way.
type fakeOracle struct {
	*oracle.Oracle
	version  string
	validate func(src []byte) error
	lex      func(src []byte) ([]compat.Token, error)
}

func newFakeOracle() *fakeOracle {
	return &fakeOracle{Oracle: oracle.New()}
}

func (f *fakeOracle) GrammarVersion() string {
	if f.version != "" {
		return f.version
	}
	return f.Oracle.GrammarVersion()
}

func (f *fakeOracle) ValidateSyntax(src []byte) error {
	if f.validate != nil {
		return f.validate(src)
	}
	return f.Oracle.ValidateSyntax(src)
}

func (f *fakeOracle) Lex(src []byte) ([]compat.Token, error) {
	if f.lex != nil {
		return f.lex(src)
	}
	return f.Oracle.Lex(src)
}

var (
	_ Engine = (*fakeEngine)(nil)
	_ Oracle = (*fakeOracle)(nil)
)
