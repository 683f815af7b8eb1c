package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"rubysnap/internal/compat"
	"rubysnap/internal/diag"
	"rubysnap/internal/lexer"
	"rubysnap/internal/source"
	"rubysnap/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) HasErrors() bool {
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return messages
}

func makeTestFile(input string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("test.rb", []byte(input)))
}

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	reporter := &testReporter{}
	return lexer.New(makeTestFile(input), lexer.Options{Reporter: reporter}), reporter
}

// expectTokens проверяет последовательность токенов (без EOF)
func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := lx.All()
	tokens = tokens[:len(tokens)-1]

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d\nInput: %q\nTokens: %v\nErrors: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.ErrorMessages())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("Token %d: expected %v, got %v (text: %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
	if reporter.HasErrors() {
		t.Errorf("unexpected errors for %q: %v", input, reporter.ErrorMessages())
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func TestNames(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
		text  string
	}{
		{"foo", token.Ident, "foo"},
		{"_tmp1", token.Ident, "_tmp1"},
		{"empty?", token.Ident, "empty?"},
		{"save!", token.Ident, "save!"},
		{"Foo", token.Const, "Foo"},
		{"HTTP_OK", token.Const, "HTTP_OK"},
		{"@name", token.IVar, "@name"},
		{"имя", token.Ident, "имя"},
		{"__FILE__", token.KwFile, "__FILE__"},
		{"__LINE__", token.KwLine, "__LINE__"},
		{"def", token.KwDef, "def"},
		{"elsif", token.KwElsif, "elsif"},
		{"self", token.KwSelf, "self"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, rep := makeTestLexer(tt.input)
			tok := lx.Next()
			if tok.Kind != tt.kind || tok.Text != tt.text {
				t.Fatalf("got %v(%q), want %v(%q)", tok.Kind, tok.Text, tt.kind, tt.text)
			}
			if next := lx.Next(); next.Kind != token.EOF {
				t.Fatalf("expected EOF after %q, got %v", tt.input, next.Kind)
			}
			if rep.HasErrors() {
				t.Fatalf("unexpected errors: %v", rep.ErrorMessages())
			}
		})
	}
}

func TestPredicateSuffixBeforeAssign(t *testing.T) {
	// "a!=b" это a != b, а не a! = b
	expectTokens(t, "a!=b", []token.Kind{token.Ident, token.BangEq, token.Ident})
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"0", token.IntLit},
		{"1_000", token.IntLit},
		{"3.14", token.FloatLit},
		{"2e10", token.FloatLit},
		{"1.5E-3", token.FloatLit},
	}
	for _, tt := range tests {
		lx, rep := makeTestLexer(tt.input)
		tok := lx.Next()
		if tok.Kind != tt.kind || tok.Text != tt.input {
			t.Errorf("%q: got %v(%q)", tt.input, tok.Kind, tok.Text)
		}
		if rep.HasErrors() {
			t.Errorf("%q: unexpected errors %v", tt.input, rep.ErrorMessages())
		}
	}

	// "1.abs" это вызов метода у литерала
	expectTokens(t, "1.abs", []token.Kind{token.IntLit, token.Dot, token.Ident})
	// "2e" без цифр: экспонента откатывается
	expectTokens(t, "2e", []token.Kind{token.IntLit, token.Ident})
}

func TestNumberTrailingUnderscore(t *testing.T) {
	lx, rep := makeTestLexer("12_")
	tok := lx.Next()
	if tok.Kind != token.IntLit || tok.Text != "12_" {
		t.Fatalf("got %v(%q)", tok.Kind, tok.Text)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexBadNumber {
		t.Fatalf("expected LexBadNumber, got %v", rep.ErrorMessages())
	}
}

func TestStrings(t *testing.T) {
	tests := []string{
		`"hello"`,
		`'it\'s'`,
		`"a\"b"`,
		`'multi
line'`,
		`""`,
	}
	for _, input := range tests {
		lx, rep := makeTestLexer(input)
		tok := lx.Next()
		if tok.Kind != token.StringLit {
			t.Errorf("%q: got %v", input, tok.Kind)
		}
		if rep.HasErrors() {
			t.Errorf("%q: unexpected errors %v", input, rep.ErrorMessages())
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	lx, rep := makeTestLexer(`"abc`)
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %v", tok.Kind)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnterminatedString {
		t.Fatalf("expected LexUnterminatedString, got %v", rep.ErrorMessages())
	}
	if lx.Next().Kind != token.EOF {
		t.Fatal("expected EOF after unterminated string")
	}
}

func TestInterpolationUnsupported(t *testing.T) {
	lx, rep := makeTestLexer(`"a#{b}c"`)
	tok := lx.Next()
	if tok.Kind != token.StringLit {
		t.Fatalf("literal should still be consumed, got %v", tok.Kind)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnsupported {
		t.Fatalf("expected LexUnsupported, got %v", rep.ErrorMessages())
	}
}

func TestSymbols(t *testing.T) {
	lx, _ := makeTestLexer(":foo :empty? :Bar")
	want := []string{":foo", ":empty?", ":Bar"}
	for _, w := range want {
		tok := lx.Next()
		if tok.Kind != token.SymbolLit || tok.Text != w {
			t.Fatalf("got %v(%q), want SymbolLit(%q)", tok.Kind, tok.Text, w)
		}
	}
	expectTokens(t, "A::B", []token.Kind{token.Const, token.ColonColon, token.Const})
}

func TestOperators(t *testing.T) {
	expectTokens(t, "a += 1 ** 2 == b && !c || d <= e",
		[]token.Kind{
			token.Ident, token.PlusAssign, token.IntLit, token.StarStar, token.IntLit,
			token.EqEq, token.Ident, token.AndAnd, token.Bang, token.Ident,
			token.OrOr, token.Ident, token.LtEq, token.Ident,
		})
	expectTokens(t, "foo(a, b[0]).bar;",
		[]token.Kind{
			token.Ident, token.LParen, token.Ident, token.Comma, token.Ident,
			token.LBracket, token.IntLit, token.RBracket, token.RParen,
			token.Dot, token.Ident, token.Semicolon,
		})
}

func TestNewlines(t *testing.T) {
	lx, _ := makeTestLexer("a\r\nb\n")
	toks := lx.All()
	kinds := []token.Kind{token.Ident, token.Newline, token.Ident, token.Newline, token.EOF}
	if len(toks) != len(kinds) {
		t.Fatalf("got %v", tokensToString(toks))
	}
	for i, k := range kinds {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %v want %v", i, toks[i].Kind, k)
		}
	}
	if toks[1].Text != "\r\n" {
		t.Errorf("CRLF newline text = %q", toks[1].Text)
	}
}

func TestLeadingTrivia(t *testing.T) {
	lx, _ := makeTestLexer("  # note\nx \\\n y")
	first := lx.Next()
	if first.Kind != token.Newline {
		t.Fatalf("expected Newline first, got %v", first.Kind)
	}
	if len(first.Leading) != 2 {
		t.Fatalf("expected 2 trivia, got %d", len(first.Leading))
	}
	if first.Leading[0].Kind != token.TriviaSpace || first.Leading[0].Text != "  " {
		t.Errorf("trivia[0] = %+v", first.Leading[0])
	}
	if first.Leading[1].Kind != token.TriviaComment || first.Leading[1].Text != "# note" {
		t.Errorf("trivia[1] = %+v", first.Leading[1])
	}

	x := lx.Next()
	y := lx.Next()
	if x.Text != "x" || y.Text != "y" {
		t.Fatalf("got %q %q", x.Text, y.Text)
	}
	// продолжение строки сливается в один пробельный trivia
	if len(y.Leading) != 1 || y.Leading[0].Text != " \\\n " {
		t.Fatalf("y.Leading = %+v", y.Leading)
	}
}

func TestContinuationCRLF(t *testing.T) {
	lx, _ := makeTestLexer("x \\\r\n y!=z")
	x, y := lx.Next(), lx.Next()
	if x.Text != "x" || y.Text != "y" {
		t.Fatalf("got %q %q", x.Text, y.Text)
	}
	if len(y.Leading) != 1 || y.Leading[0].Text != " \\\r\n " {
		t.Fatalf("y.Leading = %+v", y.Leading)
	}
	if op := lx.Next(); op.Text != "!=" {
		t.Fatalf("expected != after y, got %q", op.Text)
	}
}

func TestTrailingTriviaOnEOF(t *testing.T) {
	lx, _ := makeTestLexer("x # done")
	lx.Next()
	eof := lx.Next()
	if eof.Kind != token.EOF {
		t.Fatalf("expected EOF, got %v", eof.Kind)
	}
	if len(eof.Leading) != 2 || eof.Leading[1].Text != "# done" {
		t.Fatalf("EOF.Leading = %+v", eof.Leading)
	}
	if again := lx.Next(); again.Kind != token.EOF || len(again.Leading) != 0 {
		t.Fatalf("second EOF = %+v", again)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	p := lx.Peek()
	n := lx.Next()
	if p.Kind != n.Kind || p.Span != n.Span {
		t.Fatalf("Peek %v != Next %v", p, n)
	}
	if lx.Next().Text != "b" {
		t.Fatal("expected b")
	}
}

func TestHeredocUnsupported(t *testing.T) {
	lx, rep := makeTestLexer("x = <<~EOS\n  text\nEOS\n")
	toks := lx.All()
	var invalid *token.Token
	for i := range toks {
		if toks[i].Kind == token.Invalid {
			invalid = &toks[i]
			break
		}
	}
	if invalid == nil || invalid.Text != "<<~EOS" {
		t.Fatalf("expected Invalid heredoc token, got %v", tokensToString(toks))
	}
	if len(rep.diagnostics) == 0 || rep.diagnostics[0].Code != diag.LexUnsupported {
		t.Fatalf("expected LexUnsupported, got %v", rep.ErrorMessages())
	}
}

func TestUnsupportedChars(t *testing.T) {
	for _, input := range []string{"{", "@@x", "$x", "a ? b : c"} {
		lx, rep := makeTestLexer(input)
		lx.All()
		if !rep.HasErrors() {
			t.Errorf("%q: expected an error", input)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"a\nb"`, "a\nb"},
		{`'a\nb'`, `a\nb`},
		{`'it\'s'`, "it's"},
		{`"\x41é"`, "Aé"},
		{`"\u{1F600}"`, "\U0001F600"},
		{`"tab\tend\s"`, "tab\tend "},
		{`""`, ""},
	}
	for _, tt := range tests {
		got, err := lexer.Unquote(tt.in)
		if err != nil {
			t.Errorf("Unquote(%s): %v", tt.in, err)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("Unquote(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := lexer.Unquote("abc"); err != lexer.ErrNotQuoted {
		t.Errorf("expected ErrNotQuoted, got %v", err)
	}
	if _, err := lexer.Unquote(`"\xZZ"`); err == nil {
		t.Error("expected error for bad \\x escape")
	}
	if _, err := lexer.Unquote(`"\u{}"`); err == nil {
		t.Error("expected error for empty \\u{}")
	}
}

func TestCompat(t *testing.T) {
	file := makeTestFile("def foo; __FILE__; end\n")
	toks, diags := lexer.Compat(file)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	want := []compat.Token{
		{Line: 1, Col: 0, Event: compat.EventKw, Text: "def"},
		{Line: 1, Col: 3, Event: compat.EventSp, Text: " "},
		{Line: 1, Col: 4, Event: compat.EventIdent, Text: "foo"},
		{Line: 1, Col: 7, Event: compat.EventSemicolon, Text: ";"},
		{Line: 1, Col: 8, Event: compat.EventSp, Text: " "},
		{Line: 1, Col: 9, Event: compat.EventKw, Text: "__FILE__"},
		{Line: 1, Col: 17, Event: compat.EventSemicolon, Text: ";"},
		{Line: 1, Col: 18, Event: compat.EventSp, Text: " "},
		{Line: 1, Col: 19, Event: compat.EventKw, Text: "end"},
		{Line: 1, Col: 22, Event: compat.EventNl, Text: "\n"},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens:\n%s", len(toks), compat.Format(toks))
	}
	for i := range want {
		if !compat.Equal(toks[i], want[i]) {
			t.Errorf("token %d: got %v, want %v", i, toks[i], want[i])
		}
	}
}

func TestCompatStringsAndSymbols(t *testing.T) {
	file := makeTestFile("puts 'hi', :ok, \"\" # c\n")
	toks, diags := lexer.Compat(file)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	var events []string
	for _, tok := range toks {
		events = append(events, tok.Event)
	}
	want := []string{
		compat.EventIdent, compat.EventSp,
		compat.EventTStringBeg, compat.EventTStringContent, compat.EventTStringEnd,
		compat.EventComma, compat.EventSp,
		compat.EventSymBeg, compat.EventIdent,
		compat.EventComma, compat.EventSp,
		compat.EventTStringBeg, compat.EventTStringEnd,
		compat.EventSp, compat.EventComment, compat.EventNl,
	}
	if strings.Join(events, " ") != strings.Join(want, " ") {
		t.Fatalf("events:\n got %v\nwant %v", events, want)
	}
	// содержимое строки начинается сразу за кавычкой
	if toks[3].Col != 6 || toks[3].Text != "hi" || toks[4].Col != 8 {
		t.Errorf("string pieces at wrong columns: %v %v", toks[3], toks[4])
	}
}

func TestCompatSkipsInvalid(t *testing.T) {
	file := makeTestFile("a $ b")
	toks, diags := lexer.Compat(file)
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	for _, tok := range toks {
		if tok.Text == "$" {
			t.Fatalf("invalid token leaked into stream: %v", tok)
		}
	}
}
