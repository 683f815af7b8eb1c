package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rubysnap/internal/ast"
	"rubysnap/internal/diagfmt"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a file and print its tree or diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "tree", "output format (tree|pretty|json)")
	cmd.Flags().Int8("context", 1, "lines of context before each diagnostic")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	context, err := cmd.Flags().GetInt8("context")
	if err != nil {
		return fmt.Errorf("failed to get context flag: %w", err)
	}

	res, err := newEngine().ParseFile(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch format {
	case "json":
		return diagfmt.JSON(out, res.Errors, res.File, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true})
	case "tree", "pretty":
		if len(res.Errors) > 0 {
			diagfmt.Pretty(os.Stderr, res.Errors, res.File, diagfmt.PrettyOpts{
				Color:     isTerminal(os.Stderr) && !color.NoColor,
				Context:   context,
				ShowNotes: true,
			})
			return fmt.Errorf("%s: %d parse errors", args[0], len(res.Errors))
		}
		if format == "tree" {
			fmt.Fprint(out, ast.Format(res.Root))
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
