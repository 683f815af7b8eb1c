package harness

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const DefaultFixtureExt = ".txt"

// Fixture is one discovered input file.
type Fixture struct {
	Path         string // slash-separated, relative to the fixtures root
	Abs          string
	KnownFailure bool
	OracleExempt bool
}

// DiscoverOptions controls Discover.
type DiscoverOptions struct {
	Ext           string   // DefaultFixtureExt when empty
	KnownFailures []string // relative slash paths, excluded from the run
	OracleExempt  []string // relative slash paths that skip oracle checks
}

// FixtureSet is the result of discovery.
type FixtureSet struct {
	Root     string
	Fixtures []Fixture // runnable, sorted by Path
	Excluded []Fixture // known failures, sorted by Path
	// Stale lists known-failure entries that matched no file.
	Stale []string
}

// Paths returns the runnable fixture paths in order.
func (s *FixtureSet) Paths() []string {
	out := make([]string, len(s.Fixtures))
	for i, f := range s.Fixtures {
		out[i] = f.Path
	}
	return out
}

// Discover walks root and collects fixtures with the configured extension.
// The walk is lexical, so the order is stable within and across runs.
func Discover(root string, opts DiscoverOptions) (*FixtureSet, error) {
	ext := opts.Ext
	if ext == "" {
		ext = DefaultFixtureExt
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDiscovery, root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiscovery, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDiscovery, root)
	}

	known := toSet(opts.KnownFailures)
	exempt := toSet(opts.OracleExempt)
	seen := make(map[string]bool, len(known))
	set := &FixtureSet{Root: abs}

	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.Type().IsRegular() || filepath.Ext(path) != ext {
			return nil
		}
		rel, err := filepath.Rel(abs, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		fx := Fixture{Path: rel, Abs: path, OracleExempt: exempt[rel]}
		if known[rel] {
			seen[rel] = true
			fx.KnownFailure = true
			set.Excluded = append(set.Excluded, fx)
			return nil
		}
		set.Fixtures = append(set.Fixtures, fx)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiscovery, err)
	}

	for p := range known {
		if !seen[p] {
			set.Stale = append(set.Stale, p)
		}
	}
	sort.Strings(set.Stale)
	sortFixtures(set.Fixtures)
	sortFixtures(set.Excluded)
	return set, nil
}

// WalkDir уже обходит в лексическом порядке имён, но "a/b" и "a.b" по
// байтам сравниваются иначе, чем по компонентам пути.
func sortFixtures(fx []Fixture) {
	sort.Slice(fx, func(i, j int) bool { return fx[i].Path < fx[j].Path })
}

func toSet(paths []string) map[string]bool {
	out := make(map[string]bool, len(paths))
	for _, p := range paths {
		p = strings.TrimPrefix(filepath.ToSlash(filepath.Clean(p)), "./")
		out[p] = true
	}
	return out
}
