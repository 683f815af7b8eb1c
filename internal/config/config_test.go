package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[fixtures]
root = "corpus"
known_failures = ["bad/one.txt"]

[oracle]
allow_newer_engine = true

[run]
jobs = 3
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Fixtures.Root != "corpus" || cfg.Fixtures.Ext != ".txt" {
		t.Fatalf("fixtures = %+v", cfg.Fixtures)
	}
	if cfg.Snapshots.Root != "testdata/snapshots" || !cfg.Snapshots.FailOnDrift {
		t.Fatalf("snapshots defaults lost: %+v", cfg.Snapshots)
	}
	if !cfg.Run.Parallel || cfg.Run.Jobs != 3 {
		t.Fatalf("run = %+v", cfg.Run)
	}

	h := cfg.Harness()
	if want := filepath.Join(dir, "corpus"); h.FixturesRoot != want {
		t.Fatalf("fixtures root want %s got %s", want, h.FixturesRoot)
	}
	if want := filepath.Join(dir, "testdata", "snapshots"); h.SnapshotsRoot != want {
		t.Fatalf("snapshots root want %s got %s", want, h.SnapshotsRoot)
	}
	if diff := cmp.Diff([]string{"bad/one.txt"}, h.KnownFailures); diff != "" {
		t.Fatalf("known failures (-want +got):\n%s", diff)
	}
	if !h.AllowNewerEngine || !h.FailOnDrift || h.Jobs != 3 {
		t.Fatalf("harness config = %+v", h)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		invalid bool
	}{
		{"syntax", "[fixtures\n", false},
		{"unknown key", "[fixtures]\nrooot = \"x\"\n", true},
		{"empty root", "[snapshots]\nroot = \"  \"\n", true},
		{"negative jobs", "[run]\njobs = -1\n", true},
		{"bad ext", "[fixtures]\next = \"txt\"\n", true},
		{"escaping known failure", "[fixtures]\nknown_failures = [\"../x.txt\"]\n", true},
		{"absolute exempt", "[oracle]\nexempt = [\"/x.txt\"]\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, t.TempDir(), tt.body))
			if err == nil {
				t.Fatal("want error")
			}
			if errors.Is(err, ErrInvalid) != tt.invalid {
				t.Fatalf("errors.Is(ErrInvalid) = %v for %v", !tt.invalid, err)
			}
		})
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "")
	deep := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}
	got, ok, err := Find(deep)
	if err != nil || !ok {
		t.Fatalf("Find = %q %v %v", got, ok, err)
	}
	if got != path {
		t.Fatalf("want %s got %s", path, got)
	}
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	cfg, err := Resolve("", root)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != "" {
		t.Fatalf("no file expected, got %s", cfg.Path)
	}
	if cfg.Harness().FixturesRoot != filepath.Join(root, "testdata", "fixtures") {
		t.Fatalf("default root not resolved against start dir: %s", cfg.Harness().FixturesRoot)
	}

	other := t.TempDir()
	explicit := writeConfig(t, other, "[fixtures]\nroot = \"fx\"\n")
	cfg, err = Resolve(explicit, root)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Dir != other || cfg.Fixtures.Root != "fx" {
		t.Fatalf("explicit config ignored: %+v", cfg)
	}
}

func TestRepoConfigLoads(t *testing.T) {
	cfg, err := Load("../../" + FileName)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Fixtures.KnownFailures) == 0 {
		t.Fatal("repo config lists no known failures")
	}
	if _, err := os.Stat(cfg.Harness().FixturesRoot); err != nil {
		t.Fatalf("fixtures root: %v", err)
	}
}
