package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rubysnap/internal/version"
)

// newRootCmd builds a fresh command tree; flag state lives in the tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rubysnap",
		Short: "Differential snapshot harness for the rubysnap parser",
		Long: `rubysnap checks the parser against a fixture corpus: every fixture is
validated by a reference oracle, parsed, compared with its stored snapshot,
round-tripped through the serializer and lexed side by side with the oracle.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupRoot,
	}
	root.Version = version.Version

	root.AddCommand(newCheckCmd())
	root.AddCommand(newFixturesCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newDumpCmd())
	root.AddCommand(newLexCmd())
	root.AddCommand(newNewlinesCmd())
	root.AddCommand(newVersionCmd())

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("config", "", "path to rubysnap.toml (default: search upwards)")
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show per-check timings")
	pf.String("trace", "", "write trace events to file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "ring buffer capacity in events")
	pf.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval")
	pf.String("cpu-profile", "", "write CPU profile to file")
	pf.String("mem-profile", "", "write heap profile to file on exit")
	pf.String("runtime-trace", "", "write Go runtime trace to file")
	return root
}

// errChecksFailed is returned after the failures were already printed.
var errChecksFailed = errors.New("checks failed")

var (
	traceCleanup   = func() {}
	profileCleanup = func() {}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	traceCleanup()
	profileCleanup()
	stop()
	if err != nil {
		if !errors.Is(err, errChecksFailed) {
			fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), err)
		}
		os.Exit(1)
	}
}

func setupRoot(cmd *cobra.Command, _ []string) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(mode) {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	traceCleanup = cleanup

	stopProfiles, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	profileCleanup = stopProfiles
	return nil
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of stdout, or fallback when it is not a
// terminal.
func terminalWidth(fallback int) int {
	if !isTerminal(os.Stdout) {
		return fallback
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return q
}
