package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rubysnap/internal/config"
	"rubysnap/internal/engine"
	"rubysnap/internal/harness"
	"rubysnap/internal/oracle"
	"rubysnap/internal/trace"
)

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.Resolve(path, wd)
}

// harnessConfig loads the config and attaches the command's tracer.
func harnessConfig(cmd *cobra.Command) (harness.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return harness.Config{}, err
	}
	hc := cfg.Harness()
	hc.Tracer = trace.FromContext(cmd.Context())
	return hc, nil
}

func newEngine() *engine.Engine { return engine.New(engine.Options{}) }

func newOracle() *oracle.Oracle { return oracle.New() }

func readInput(path string) ([]byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return src, nil
}
