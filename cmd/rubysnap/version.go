package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"rubysnap/internal/engine"
	"rubysnap/internal/oracle"
	"rubysnap/internal/version"
)

type versionOptions struct {
	format   string
	showHash bool
	showDate bool
}

type versionPayload struct {
	Tool          string `json:"tool"`
	Version       string `json:"version"`
	EngineGrammar string `json:"engine_grammar"`
	Oracle        string `json:"oracle"`
	OracleGrammar string `json:"oracle_grammar"`
	GitCommit     string `json:"git_commit,omitempty"`
	BuildDate     string `json:"build_date,omitempty"`
}

func newVersionCmd() *cobra.Command {
	var (
		format   string
		showHash bool
		showDate bool
		showFull bool
	)
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show build and grammar versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := versionOptions{
				format:   strings.ToLower(format),
				showHash: showHash || showFull,
				showDate: showDate || showFull,
			}
			payload := collectVersion(opts)
			switch opts.format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(payload)
			case "pretty":
				renderVersionPretty(cmd.OutOrStdout(), payload, opts)
				return nil
			default:
				return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
			}
		},
	}
	cmd.Flags().BoolVar(&showHash, "hash", false, "include git commit hash")
	cmd.Flags().BoolVar(&showDate, "date", false, "include build timestamp")
	cmd.Flags().BoolVar(&showFull, "full", false, "show every recorded bit of build metadata")
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return cmd
}

func collectVersion(opts versionOptions) versionPayload {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		v = "dev"
	}
	orc := oracle.New()
	p := versionPayload{
		Tool:          "rubysnap",
		Version:       v,
		EngineGrammar: engine.GrammarVersion,
		Oracle:        orc.Name(),
		OracleGrammar: orc.GrammarVersion(),
	}
	if opts.showHash {
		p.GitCommit = valueOrUnknown(version.GitCommit)
	}
	if opts.showDate {
		p.BuildDate = valueOrUnknown(version.BuildDate)
	}
	return p
}

func renderVersionPretty(out io.Writer, p versionPayload, opts versionOptions) {
	fmt.Fprintf(out, "rubysnap %s\n", version.Colored())
	fmt.Fprintf(out, "grammar: engine %s, %s %s\n", p.EngineGrammar, p.Oracle, p.OracleGrammar)
	if opts.showHash {
		fmt.Fprintf(out, "commit:  %s\n", p.GitCommit)
	}
	if opts.showDate {
		fmt.Fprintf(out, "built:   %s\n", p.BuildDate)
	}
}

func valueOrUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}
	return s
}
