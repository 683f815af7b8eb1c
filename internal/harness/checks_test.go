package harness

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rubysnap/internal/ast"
	"rubysnap/internal/compat"
	"rubysnap/internal/diag"
	"rubysnap/internal/oracle"
)

func TestExpectedNewlines(t *testing.T) {
	tests := []struct {
		src  string
		want []uint32
	}{
		{"", []uint32{0}},
		{"x", []uint32{0}},
		{"\n", []uint32{0, 1}},
		{"a\nbc\n", []uint32{0, 2, 5}},
		{"a\r\nb", []uint32{0, 3}},
		{"\n\n\n", []uint32{0, 1, 2, 3}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ExpectedNewlines([]byte(tt.src))); diff != "" {
			t.Errorf("%q (-want +got):\n%s", tt.src, diff)
		}
	}
}

func TestCheckNewlines(t *testing.T) {
	src := []byte("a\nb\n")
	if err := CheckNewlines(src, []uint32{0, 2, 4}); err != nil {
		t.Fatal(err)
	}
	for _, got := range [][]uint32{{0, 2}, {0, 3, 4}, {0, 2, 4, 5}} {
		err := CheckNewlines(src, got)
		if KindOf(err) != KindNewlines {
			t.Errorf("%s: want newlines failure got %v", FormatOffsets(got), err)
		}
	}
}

func TestFormatOffsets(t *testing.T) {
	if got := FormatOffsets([]uint32{0, 4, 9}); got != "[0, 4, 9]" {
		t.Fatalf("got %q", got)
	}
	if got := FormatOffsets(nil); got != "[]" {
		t.Fatalf("got %q", got)
	}
}

func TestCheckLexCompatAgrees(t *testing.T) {
	src := []byte("def foo(a, b)\n  a + b # sum\nend\n")
	if err := CheckLexCompat(newFakeEngine(), oracle.New(), src); err != nil {
		t.Fatal(err)
	}
}

func TestCheckLexCompatFailures(t *testing.T) {
	src := []byte("x = 1\n")
	oracleToks, _ := oracle.New().Lex(src)

	tests := []struct {
		name string
		eng  func(*fakeEngine)
		orc  func(*fakeOracle)
		want FailureKind
		msg  string
	}{
		{
			name: "engine lex errors",
			eng: func(f *fakeEngine) {
				f.lexCompat = func([]byte) ([]diag.Diagnostic, []compat.Token) {
					return []diag.Diagnostic{{Code: diag.LexUnknownChar, Message: "boom"}}, nil
				}
			},
			want: KindLexErrors,
			msg:  "boom",
		},
		{
			name: "oracle rejects",
			orc: func(f *fakeOracle) {
				f.lex = func([]byte) ([]compat.Token, error) { return nil, errors.New("nope") }
			},
			want: KindOracleInconsistency,
		},
		{
			name: "token differs",
			eng: func(f *fakeEngine) {
				f.lexCompat = func([]byte) ([]diag.Diagnostic, []compat.Token) {
					toks := append([]compat.Token(nil), oracleToks...)
					toks[0].Col = 7
					return nil, toks
				}
			},
			want: KindLexIncompatible,
			msg:  "token 0",
		},
		{
			name: "engine stream shorter",
			eng: func(f *fakeEngine) {
				f.lexCompat = func([]byte) ([]diag.Diagnostic, []compat.Token) {
					return nil, oracleToks[:len(oracleToks)-1]
				}
			},
			want: KindLexIncompatible,
			msg:  "engine stream ends",
		},
		{
			name: "oracle stream shorter",
			orc: func(f *fakeOracle) {
				f.lex = func([]byte) ([]compat.Token, error) { return oracleToks[:2], nil }
			},
			want: KindLexIncompatible,
			msg:  "oracle stream ends",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, orc := newFakeEngine(), newFakeOracle()
			if tt.eng != nil {
				tt.eng(eng)
			}
			if tt.orc != nil {
				tt.orc(orc)
			}
			err := CheckLexCompat(eng, orc, src)
			if KindOf(err) != tt.want {
				t.Fatalf("want %s got %v", tt.want, err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Fatalf("message %q does not mention %q", err, tt.msg)
			}
		})
	}
}

func TestFirstTokenMismatch(t *testing.T) {
	a := compat.Token{Line: 1, Col: 0, Event: compat.EventIdent, Text: "x"}
	b := compat.Token{Line: 1, Col: 1, Event: compat.EventSp, Text: " "}
	tests := []struct {
		want, got []compat.Token
		idx       int
		differ    bool
	}{
		{nil, nil, 0, false},
		{[]compat.Token{a, b}, []compat.Token{a, b}, 0, false},
		{[]compat.Token{a, b}, []compat.Token{a}, 1, true},
		{[]compat.Token{a}, []compat.Token{a, b}, 1, true},
		{[]compat.Token{a, b}, []compat.Token{b, a}, 0, true},
	}
	for i, tt := range tests {
		idx, differ := FirstTokenMismatch(tt.want, tt.got)
		if idx != tt.idx || differ != tt.differ {
			t.Errorf("case %d: got (%d, %v) want (%d, %v)", i, idx, differ, tt.idx, tt.differ)
		}
	}
}

func TestVerifyRoundTrip(t *testing.T) {
	eng := newFakeEngine()
	src := []byte("def add(a, b)\n  a + b\nend\nadd 1, 2\n")
	res, err := eng.Parse(src, "add.txt")
	if err != nil {
		t.Fatal(err)
	}
	if err := VerifyRoundTrip(eng, src, "add.txt", res.Root); err != nil {
		t.Fatal(err)
	}
}

func TestVerifyRoundTripDetectsChange(t *testing.T) {
	eng := newFakeEngine()
	eng.load = func(src, data []byte) (*ast.ProgramNode, error) {
		root, err := eng.Engine.Load(src, data)
		if err != nil {
			return nil, err
		}
		if n, ok := ast.FindFirst[*ast.IntegerNode](root); ok {
			n.Value++
		}
		return root, nil
	}
	src := []byte("x = 41\n")
	res, err := eng.Parse(src, "x.txt")
	if err != nil {
		t.Fatal(err)
	}
	err = VerifyRoundTrip(eng, src, "x.txt", res.Root)
	if KindOf(err) != KindRoundTrip {
		t.Fatalf("want round-trip failure got %v", err)
	}
	var div *ast.Divergence
	if !errors.As(err, &div) {
		t.Fatalf("error does not carry the divergence: %v", err)
	}
	if !strings.Contains(err.Error(), "41") || !strings.Contains(err.Error(), "42") {
		t.Fatalf("diff does not show both values:\n%s", err)
	}
}

func TestVerifyRoundTripLoadError(t *testing.T) {
	eng := newFakeEngine()
	eng.load = func([]byte, []byte) (*ast.ProgramNode, error) { return nil, errors.New("corrupt") }
	src := []byte("1\n")
	res, _ := eng.Parse(src, "one.txt")
	if err := VerifyRoundTrip(eng, src, "one.txt", res.Root); KindOf(err) != KindRoundTrip {
		t.Fatalf("want round-trip failure got %v", err)
	}
}

func TestCheckSyntax(t *testing.T) {
	orc := oracle.New()
	if err := CheckSyntax(orc, []byte("def foo; end\n"), "ok.txt"); err != nil {
		t.Fatal(err)
	}
	err := CheckSyntax(orc, []byte("def foo\n"), "bad.txt")
	if KindOf(err) != KindFixtureDefect {
		t.Fatalf("want fixture defect got %v", err)
	}
	if !strings.Contains(err.Error(), "test file has invalid syntax according to regexp-oracle") {
		t.Fatalf("message = %q", err)
	}
	var se *oracle.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("oracle error is not wrapped: %v", err)
	}
}

func TestGrammarCoupling(t *testing.T) {
	tests := []struct {
		engine, oracle string
		allowNewer     bool
		wantErr        bool
	}{
		{"0.4.0", "0.4.0", false, false},
		{"0.3.9", "0.4.0", false, false},
		{"0.4", "0.4.0", false, false},
		{"0.5.0", "0.4.0", false, true},
		{"0.5.0", "0.4.0", true, false},
		{"v1.0.0-rc1", "1.0.0", false, false},
		{"0.5.0-rc1", "0.5.0", false, false},
		{"0.5.0", "0.5.0-rc1", false, true},
		{"0.5.0-rc.2", "0.5.0-rc.1", false, true},
		{"0.5.0-rc1", "0.4.0", false, true},
		{"garbage", "0.4.0", true, true},
		{"0.4.0", "", false, true},
	}
	for _, tt := range tests {
		eng, orc := newFakeEngine(), newFakeOracle()
		eng.version, orc.version = tt.engine, tt.oracle
		err := checkGrammarCoupling(eng, orc, tt.allowNewer)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s vs %s (allow=%v): err = %v", tt.engine, tt.oracle, tt.allowNewer, err)
			continue
		}
		if err != nil && !errors.Is(err, ErrConfig) {
			t.Errorf("%s vs %s: want ErrConfig got %v", tt.engine, tt.oracle, err)
		}
	}
}

func TestIsHard(t *testing.T) {
	drift := checkErr(KindSnapshotDrift, "a", nil, "drift")
	parse := checkErr(KindParse, "a", nil, "parse")
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{drift, false},
		{parse, true},
		{errors.New("plain"), true},
		{errors.Join(parse, drift), true},
	}
	for i, tt := range tests {
		if got := IsHard(tt.err); got != tt.want {
			t.Errorf("case %d: IsHard(%v) = %v", i, tt.err, got)
		}
	}
}
