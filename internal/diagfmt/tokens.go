package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"rubysnap/internal/compat"
)

// TokenOpts configures FormatCompatStreams.
type TokenOpts struct {
	Color bool
	// Mismatch is the index to mark, -1 for none.
	Mismatch int
	// Window limits output to this many rows around Mismatch, 0 for all.
	Window int
}

const tokenColumn = 34

// FormatCompatStreams prints the oracle and engine streams side by side,
// one pair per row. The mismatching row is prefixed with "!!".
func FormatCompatStreams(w io.Writer, oracle, engine []compat.Token, opts TokenOpts) {
	rows := max(len(oracle), len(engine))
	from, to := 0, rows
	if opts.Window > 0 && opts.Mismatch >= 0 {
		from = max(opts.Mismatch-opts.Window, 0)
		to = min(opts.Mismatch+opts.Window+1, rows)
	}

	fmt.Fprintf(w, "     %s  %s\n", pad("oracle", tokenColumn), "engine")
	for i := from; i < to; i++ {
		left, right := cell(oracle, i), cell(engine, i)
		mark := "  "
		if i == opts.Mismatch {
			mark = "!!"
			if opts.Color {
				mark = color.New(color.FgRed, color.Bold).Sprint(mark)
			}
		}
		fmt.Fprintf(w, "%s %3d %s  %s\n", mark, i, pad(left, tokenColumn), right)
	}
}

func cell(toks []compat.Token, i int) string {
	if i >= len(toks) {
		return "-"
	}
	return toks[i].String()
}

// pad дополняет до ширины в ячейках терминала, длинное обрезает.
func pad(s string, width int) string {
	s = runewidth.Truncate(s, width, "...")
	return s + strings.Repeat(" ", width-runewidth.StringWidth(s))
}
