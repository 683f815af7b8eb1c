package harness

import (
	"rubysnap/internal/compat"
	"rubysnap/internal/diag"
)

// CheckLexCompat compares the engine's compatibility token stream with the
// oracle's, pair by pair. src is expected to have passed CheckSyntax.
func CheckLexCompat(eng Engine, orc Oracle, src []byte) error {
	return checkLexCompat(eng, orc, src, "")
}

func checkLexCompat(eng Engine, orc Oracle, src []byte, fixture string) error {
	diags, got := eng.LexCompat(src)
	if len(diags) > 0 {
		return checkErr(KindLexErrors, fixture, nil, "compat lexer reported %d errors, first: %s", len(diags), describeDiag(diags[0]))
	}
	want, err := orc.Lex(src)
	if err != nil {
		return checkErr(KindOracleInconsistency, fixture, err, "%s rejected source it had validated", orc.Name())
	}
	if i, ok := FirstTokenMismatch(want, got); ok {
		switch {
		case i < len(want) && i < len(got):
			return checkErr(KindLexIncompatible, fixture, nil, "token %d: oracle %s, engine %s", i, want[i], got[i])
		case i < len(want):
			return checkErr(KindLexIncompatible, fixture, nil, "engine stream ends after %d tokens, oracle continues with %s", len(got), want[i])
		default:
			return checkErr(KindLexIncompatible, fixture, nil, "oracle stream ends after %d tokens, engine continues with %s", len(want), got[i])
		}
	}
	return nil
}

// FirstTokenMismatch returns the index of the first position where the
// streams differ, counting a missing token as a difference.
func FirstTokenMismatch(want, got []compat.Token) (int, bool) {
	n := min(len(want), len(got))
	for i := 0; i < n; i++ {
		if !compat.Equal(want[i], got[i]) {
			return i, true
		}
	}
	if len(want) != len(got) {
		return n, true
	}
	return 0, false
}

func describeDiag(d diag.Diagnostic) string {
	return d.Code.ID() + " " + d.Message
}
