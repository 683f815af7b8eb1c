package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rubysnap/internal/diagfmt"
	"rubysnap/internal/harness"
)

func newLexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lex FILE",
		Short: "Print engine and oracle token streams side by side",
		Args:  cobra.ExactArgs(1),
		RunE:  runLex,
	}
	cmd.Flags().Int("window", 0, "only show this many tokens around the first divergence (0: all)")
	return cmd
}

func runLex(cmd *cobra.Command, args []string) error {
	window, err := cmd.Flags().GetInt("window")
	if err != nil {
		return fmt.Errorf("failed to get window flag: %w", err)
	}
	src, err := readInput(args[0])
	if err != nil {
		return err
	}

	diags, got := newEngine().LexCompat(src)
	orc := newOracle()
	want, err := orc.Lex(src)
	if err != nil {
		return fmt.Errorf("%s rejects %s: %w", orc.Name(), args[0], err)
	}

	idx, differ := harness.FirstTokenMismatch(want, got)
	if !differ {
		idx = -1
	}
	out := cmd.OutOrStdout()
	diagfmt.FormatCompatStreams(out, want, got, diagfmt.TokenOpts{
		Color:    !color.NoColor,
		Mismatch: idx,
		Window:   window,
	})

	for _, d := range diags {
		fmt.Fprintf(out, "%s %s %s\n", failColor.Sprint("lex error:"), d.Code.ID(), d.Message)
	}
	switch {
	case differ:
		return fmt.Errorf("token streams diverge at %d", idx)
	case len(diags) > 0:
		return fmt.Errorf("compat lexer reported %d errors", len(diags))
	}
	if !quiet(cmd) {
		fmt.Fprintf(out, "\n%s %d tokens\n", passColor.Sprint("identical:"), len(got))
	}
	return nil
}
