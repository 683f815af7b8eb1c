package harness

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
)

// AdvisoryKind says what happened to a snapshot.
type AdvisoryKind uint8

const (
	AdvisoryCreated AdvisoryKind = iota + 1
	AdvisoryUpdated
)

func (k AdvisoryKind) String() string {
	switch k {
	case AdvisoryCreated:
		return "created"
	case AdvisoryUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// Advisory is a non-fatal notice about the snapshot tree.
type Advisory struct {
	Kind    AdvisoryKind
	Fixture string
	Path    string // snapshot file
	Diff    string // unified diff of the inspected trees; updates only
}

func (a Advisory) String() string {
	return fmt.Sprintf("snapshot %s: %s", a.Kind, a.Path)
}

// Advisor receives advisories. Implementations must be safe for concurrent
// use.
type Advisor interface {
	Advise(Advisory)
}

// AdvisorFunc adapts a function to Advisor.
type AdvisorFunc func(Advisory)

func (f AdvisorFunc) Advise(a Advisory) { f(a) }

// WriterAdvisor prints advisories, coloured when the writer is a terminal
// and colours are on.
type WriterAdvisor struct {
	mu       sync.Mutex
	w        io.Writer
	ShowDiff bool
}

func NewWriterAdvisor(w io.Writer, showDiff bool) *WriterAdvisor {
	return &WriterAdvisor{w: w, ShowDiff: showDiff}
}

var (
	createdColor = color.New(color.FgCyan)
	updatedColor = color.New(color.FgYellow, color.Bold)
)

func (wa *WriterAdvisor) Advise(a Advisory) {
	wa.mu.Lock()
	defer wa.mu.Unlock()
	c := createdColor
	if a.Kind == AdvisoryUpdated {
		c = updatedColor
	}
	fmt.Fprintf(wa.w, "%s %s\n", c.Sprintf("%-8s", a.Kind), a.Path)
	if wa.ShowDiff && a.Diff != "" {
		for _, line := range strings.Split(strings.TrimRight(a.Diff, "\n"), "\n") {
			fmt.Fprintf(wa.w, "    %s\n", colorDiffLine(line))
		}
	}
}

func colorDiffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return color.New(color.Bold).Sprint(line)
	case strings.HasPrefix(line, "+"):
		return color.GreenString("%s", line)
	case strings.HasPrefix(line, "-"):
		return color.RedString("%s", line)
	case strings.HasPrefix(line, "@@"):
		return color.CyanString("%s", line)
	}
	return line
}

// TestAdvisor logs advisories into the test log.
type TestAdvisor struct {
	TB testing.TB
}

func (ta TestAdvisor) Advise(a Advisory) {
	ta.TB.Helper()
	if a.Diff != "" {
		ta.TB.Logf("%s\n%s", a, a.Diff)
		return
	}
	ta.TB.Log(a.String())
}

// AdvisoryLog collects advisories in memory.
type AdvisoryLog struct {
	mu    sync.Mutex
	items []Advisory
}

func (l *AdvisoryLog) Advise(a Advisory) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, a)
}

// Items returns a copy of the collected advisories.
func (l *AdvisoryLog) Items() []Advisory {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Advisory(nil), l.items...)
}

// Tee fans an advisory out to several advisors; nil entries are skipped.
func Tee(advisors ...Advisor) Advisor {
	return AdvisorFunc(func(a Advisory) {
		for _, adv := range advisors {
			if adv != nil {
				adv.Advise(a)
			}
		}
	})
}
