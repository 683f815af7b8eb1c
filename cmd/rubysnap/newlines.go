package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rubysnap/internal/harness"
)

func newNewlinesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "newlines FILE",
		Short: "Print the engine's line offsets next to the recomputed ones",
		Args:  cobra.ExactArgs(1),
		RunE:  runNewlines,
	}
}

func runNewlines(cmd *cobra.Command, args []string) error {
	src, err := readInput(args[0])
	if err != nil {
		return err
	}
	got := newEngine().Newlines(src)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "engine:   %s\n", harness.FormatOffsets(got))
	fmt.Fprintf(out, "expected: %s\n", harness.FormatOffsets(harness.ExpectedNewlines(src)))
	return harness.CheckNewlines(src, got)
}
