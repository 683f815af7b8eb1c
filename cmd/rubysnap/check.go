package main

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rubysnap/internal/harness"
	"rubysnap/internal/observ"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run every check against every fixture",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}
	cmd.Flags().Int("jobs", 0, "parallel workers (0: from config, then GOMAXPROCS)")
	cmd.Flags().String("ui", "off", "progress UI (auto|on|off)")
	cmd.Flags().Lookup("ui").NoOptDefVal = "auto"
	cmd.Flags().String("run", "", "only run cases whose name matches this regexp")
	cmd.Flags().Bool("diff", true, "show tree diffs for updated snapshots")
	return cmd
}

var (
	passColor = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	skipColor = color.New(color.FgYellow)
)

func runCheck(cmd *cobra.Command, _ []string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	pattern, err := cmd.Flags().GetString("run")
	if err != nil {
		return fmt.Errorf("failed to get run flag: %w", err)
	}
	showDiff, err := cmd.Flags().GetBool("diff")
	if err != nil {
		return fmt.Errorf("failed to get diff flag: %w", err)
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	hc, err := harnessConfig(cmd)
	if err != nil {
		return err
	}
	if pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid --run pattern: %w", err)
		}
		hc.Match = re.MatchString
	}
	advisories := &harness.AdvisoryLog{}
	hc.Advisor = advisories
	if timings {
		hc.Timer = observ.NewTimer()
	}

	suite, err := harness.NewSuite(hc, newEngine(), newOracle())
	if err != nil {
		return err
	}

	start := time.Now()
	var results []harness.Result
	traceOut, _ := cmd.Root().PersistentFlags().GetString("trace")
	if shouldUseTUI(mode, quiet(cmd), traceOut == "-") {
		results, err = runSuiteWithUI(cmd.Context(), "rubysnap check", suite, jobs)
		if err != nil {
			return err
		}
	} else {
		results = suite.Run(cmd.Context(), jobs, nil)
	}
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	q := quiet(cmd)
	printResults(out, results, q)

	if items := advisories.Items(); len(items) > 0 && !q {
		fmt.Fprintln(out)
		adv := harness.NewWriterAdvisor(out, showDiff)
		for _, a := range items {
			adv.Advise(a)
		}
	}
	if !q {
		for _, p := range suite.Fixtures().Stale {
			fmt.Fprintf(os.Stderr, "%s known failure %s matches no fixture\n", skipColor.Sprint("warning:"), p)
		}
	}
	if timings {
		fmt.Fprintln(os.Stderr)
		printTimings(os.Stderr, hc.Timer, results)
	}

	s := summarize(results)
	fmt.Fprintf(out, "\n%s in %.1f ms\n", s, toMillis(elapsed))
	if s.failed > 0 {
		return errChecksFailed
	}
	return nil
}

func printResults(out io.Writer, results []harness.Result, quiet bool) {
	width := terminalWidth(100) - 20
	for _, r := range results {
		switch {
		case r.Skipped:
			if !quiet {
				fmt.Fprintf(out, "%s %s\n", skipColor.Sprint("SKIP"), truncatePath(r.Name, width))
			}
		case r.Err != nil:
			fmt.Fprintf(out, "%s %s\n", failColor.Sprint("FAIL"), r.Name)
			fmt.Fprintf(out, "%s\n", indent(r.Err.Error(), "     "))
		default:
			if !quiet {
				fmt.Fprintf(out, "%s %s (%.1f ms)\n", passColor.Sprint("PASS"), truncatePath(r.Name, width), toMillis(r.Elapsed))
			}
		}
	}
}

type summary struct {
	passed, failed, skipped int
}

func summarize(results []harness.Result) summary {
	var s summary
	for _, r := range results {
		switch {
		case r.Skipped:
			s.skipped++
		case r.Err != nil:
			s.failed++
		default:
			s.passed++
		}
	}
	return s
}

func (s summary) String() string {
	text := fmt.Sprintf("%d passed, %d failed", s.passed, s.failed)
	if s.skipped > 0 {
		text += fmt.Sprintf(", %d skipped", s.skipped)
	}
	if s.failed > 0 {
		return failColor.Sprint(text)
	}
	return passColor.Sprint(text)
}
