package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"def":      KwDef,
		"end":      KwEnd,
		"elsif":    KwElsif,
		"unless":   KwUnless,
		"self":     KwSelf,
		"__FILE__": KwFile,
		"__LINE__": KwLine,
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
		if got.String() != lexeme {
			t.Fatalf("%v.String() = %q, want %q", got, got.String(), lexeme)
		}
	}
}

func TestLookupKeyword_CaseSensitive(t *testing.T) {
	for _, s := range []string{"Def", "END", "__file__", "Nil", "puts"} {
		if k, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) = %v, want not a keyword", s, k)
		}
	}
}
