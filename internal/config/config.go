// Package config loads rubysnap.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"rubysnap/internal/harness"
)

// FileName is the config file searched for by Find.
const FileName = "rubysnap.toml"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Fixtures struct {
	Root          string   `toml:"root"`
	Ext           string   `toml:"ext"`
	KnownFailures []string `toml:"known_failures"`
}

type Snapshots struct {
	Root        string `toml:"root"`
	FailOnDrift bool   `toml:"fail_on_drift"`
}

type Oracle struct {
	Exempt           []string `toml:"exempt"`
	AllowNewerEngine bool     `toml:"allow_newer_engine"`
}

type Run struct {
	Jobs     int  `toml:"jobs"` // 0 = GOMAXPROCS
	Parallel bool `toml:"parallel"`
}

// Config mirrors rubysnap.toml. Dir is the directory relative paths are
// resolved against; Path is empty for Default.
type Config struct {
	Fixtures  Fixtures  `toml:"fixtures"`
	Snapshots Snapshots `toml:"snapshots"`
	Oracle    Oracle    `toml:"oracle"`
	Run       Run       `toml:"run"`

	Path string `toml:"-"`
	Dir  string `toml:"-"`
}

// Default returns the built-in configuration rooted at the working
// directory.
func Default() *Config {
	return &Config{
		Fixtures: Fixtures{
			Root: "testdata/fixtures",
			Ext:  harness.DefaultFixtureExt,
		},
		Snapshots: Snapshots{
			Root:        "testdata/snapshots",
			FailOnDrift: true,
		},
		Run: Run{Parallel: true},
		Dir: ".",
	}
}

// Load reads path on top of Default. Keys missing from the file keep their
// default values; unknown keys are an error.
func Load(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	cfg := Default()
	meta, err := toml.DecodeFile(abs, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", abs, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: %w: unknown keys %s", abs, ErrInvalid, strings.Join(keys, ", "))
	}
	cfg.Path = abs
	cfg.Dir = filepath.Dir(abs)

	for _, f := range []struct {
		key   []string
		value string
	}{
		{[]string{"fixtures", "root"}, cfg.Fixtures.Root},
		{[]string{"fixtures", "ext"}, cfg.Fixtures.Ext},
		{[]string{"snapshots", "root"}, cfg.Snapshots.Root},
	} {
		if meta.IsDefined(f.key...) && strings.TrimSpace(f.value) == "" {
			return nil, fmt.Errorf("%s: %w: [%s].%s is empty", abs, ErrInvalid, f.key[0], f.key[1])
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", abs, err)
	}
	return cfg, nil
}

// Validate checks values that do not depend on the filesystem.
func (c *Config) Validate() error {
	if c.Run.Jobs < 0 {
		return fmt.Errorf("%w: [run].jobs must be >= 0, got %d", ErrInvalid, c.Run.Jobs)
	}
	if ext := c.Fixtures.Ext; ext != "" && !strings.HasPrefix(ext, ".") {
		return fmt.Errorf("%w: [fixtures].ext %q must start with '.'", ErrInvalid, ext)
	}
	for _, list := range []struct {
		name  string
		paths []string
	}{
		{"[fixtures].known_failures", c.Fixtures.KnownFailures},
		{"[oracle].exempt", c.Oracle.Exempt},
	} {
		for _, p := range list.paths {
			if p == "" || filepath.IsAbs(p) || strings.HasPrefix(filepath.ToSlash(filepath.Clean(p)), "../") {
				return fmt.Errorf("%w: %s entry %q must be relative to the fixtures root", ErrInvalid, list.name, p)
			}
		}
	}
	return nil
}

// Find walks up from startDir to locate rubysnap.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Resolve loads explicit when it is set, otherwise the nearest
// rubysnap.toml above startDir, otherwise Default rooted at startDir.
func Resolve(explicit, startDir string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if ok {
		return Load(path)
	}
	cfg := Default()
	if cfg.Dir, err = filepath.Abs(startDir); err != nil {
		return nil, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	return cfg, nil
}

// Abs resolves p against the config directory.
func (c *Config) Abs(p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// Harness converts the config into a harness.Config. Advisor, Tracer and
// Timer are left for the caller.
func (c *Config) Harness() harness.Config {
	return harness.Config{
		FixturesRoot:     c.Abs(c.Fixtures.Root),
		Ext:              c.Fixtures.Ext,
		KnownFailures:    append([]string(nil), c.Fixtures.KnownFailures...),
		SnapshotsRoot:    c.Abs(c.Snapshots.Root),
		FailOnDrift:      c.Snapshots.FailOnDrift,
		OracleExempt:     append([]string(nil), c.Oracle.Exempt...),
		AllowNewerEngine: c.Oracle.AllowNewerEngine,
		Parallel:         c.Run.Parallel,
		Jobs:             c.Run.Jobs,
	}
}
