package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rubysnap/internal/harness"
)

func newFixturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fixtures",
		Short: "List discovered and excluded fixtures",
		Args:  cobra.NoArgs,
		RunE:  runFixtures,
	}
}

func runFixtures(cmd *cobra.Command, _ []string) error {
	hc, err := harnessConfig(cmd)
	if err != nil {
		return err
	}
	set, err := harness.Discover(hc.FixturesRoot, harness.DiscoverOptions{
		Ext:           hc.Ext,
		KnownFailures: hc.KnownFailures,
		OracleExempt:  hc.OracleExempt,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	width := terminalWidth(100) - 24
	for _, fx := range set.Fixtures {
		mark := ""
		if fx.OracleExempt {
			mark = skipColor.Sprint("  (oracle exempt)")
		}
		fmt.Fprintf(out, "  %s%s\n", truncatePath(fx.Path, width), mark)
	}
	for _, fx := range set.Excluded {
		fmt.Fprintf(out, "%s %s%s\n", failColor.Sprint("x"), truncatePath(fx.Path, width), skipColor.Sprint("  (known failure)"))
	}
	for _, p := range set.Stale {
		fmt.Fprintf(out, "%s %s  (known failure, no such fixture)\n", skipColor.Sprint("?"), p)
	}
	if !quiet(cmd) {
		fmt.Fprintf(out, "\n%d fixtures, %d excluded under %s\n", len(set.Fixtures), len(set.Excluded), set.Root)
	}
	return nil
}
