package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"rubysnap/internal/trace"
)

// SnapshotOutcome is what Compare did.
type SnapshotOutcome uint8

const (
	SnapshotMatched SnapshotOutcome = iota + 1
	SnapshotCreated
	SnapshotHealed
)

func (o SnapshotOutcome) String() string {
	switch o {
	case SnapshotMatched:
		return "matched"
	case SnapshotCreated:
		return "created"
	case SnapshotHealed:
		return "healed"
	default:
		return "unknown"
	}
}

// SnapshotResult carries the outcome and, when healed, the bytes that were
// on disk before the rewrite.
type SnapshotResult struct {
	Outcome  SnapshotOutcome
	Path     string
	Previous []byte
}

// InspectFunc renders serialized bytes for a human; used for drift diffs.
type InspectFunc func(data []byte) (string, error)

// SnapshotStore keeps one serialized tree per fixture under Root, mirroring
// the fixture's relative path. Snapshots are created lazily and rewritten
// in place on drift; they are never deleted.
type SnapshotStore struct {
	Root        string
	Advisor     Advisor
	FailOnDrift bool
	Inspect     InspectFunc
}

// Path returns the snapshot file for a fixture.
func (s *SnapshotStore) Path(fixture string) string {
	return filepath.Join(s.Root, filepath.FromSlash(fixture))
}

// Compare checks serialized against the stored snapshot and heals the store.
// Only I/O problems are returned as errors; drift is reported through the
// result, the advisor and Drift.
func (s *SnapshotStore) Compare(fixture string, serialized []byte) (SnapshotResult, error) {
	return s.compareWith(context.Background(), fixture, serialized, s.Inspect)
}

func (s *SnapshotStore) compareWith(ctx context.Context, fixture string, serialized []byte, inspect InspectFunc) (SnapshotResult, error) {
	path := s.Path(fixture)
	res := SnapshotResult{Path: path}

	before, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return res, checkErr(KindIO, fixture, err, "create snapshot directory")
		}
		if err := writeFileAtomic(path, serialized); err != nil {
			return res, checkErr(KindIO, fixture, err, "write snapshot")
		}
		res.Outcome = SnapshotCreated
		s.advise(ctx, Advisory{Kind: AdvisoryCreated, Fixture: fixture, Path: path})
		return res, nil
	case err != nil:
		return res, checkErr(KindIO, fixture, err, "read snapshot")
	}

	// вердикт - только по байтам, прочитанным до записи
	if bytes.Equal(before, serialized) {
		res.Outcome = SnapshotMatched
		return res, nil
	}
	if err := writeFileAtomic(path, serialized); err != nil {
		return res, checkErr(KindIO, fixture, err, "rewrite snapshot")
	}
	res.Outcome = SnapshotHealed
	res.Previous = before
	s.advise(ctx, Advisory{
		Kind:    AdvisoryUpdated,
		Fixture: fixture,
		Path:    path,
		Diff:    snapshotDiff(before, serialized, inspect),
	})
	return res, nil
}

// Drift converts a healed result into a failure when the store is strict.
func (s *SnapshotStore) Drift(fixture string, res SnapshotResult) error {
	if res.Outcome != SnapshotHealed || !s.FailOnDrift {
		return nil
	}
	return checkErr(KindSnapshotDrift, fixture, nil, "snapshot %s was out of date and has been rewritten", res.Path)
}

func (s *SnapshotStore) advise(ctx context.Context, a Advisory) {
	if adv := advisorFrom(ctx, s.Advisor); adv != nil {
		adv.Advise(a)
	}
	trace.PointIn(ctx, trace.ScopeFixture, "snapshot:"+a.Kind.String(), a.Fixture,
		map[string]string{"path": a.Path})
}

func snapshotDiff(before, after []byte, inspect InspectFunc) string {
	render := func(data []byte) string {
		if inspect != nil {
			if text, err := inspect(data); err == nil {
				return text
			}
		}
		return hexLines(data)
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(render(before)),
		B:        difflib.SplitLines(render(after)),
		FromFile: "snapshot",
		ToFile:   "current",
		Context:  3,
	})
	if err != nil {
		return fmt.Sprintf("diff unavailable: %v", err)
	}
	return diff
}

// hexLines - запасной вид, когда старый снимок уже не читается.
func hexLines(data []byte) string {
	var b strings.Builder
	for off := 0; off < len(data); off += 16 {
		end := min(off+16, len(data))
		fmt.Fprintf(&b, "%08x  % x\n", off, data[off:end])
	}
	return b.String()
}

// writeFileAtomic writes through a temp file in the same directory and
// renames it over path.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
