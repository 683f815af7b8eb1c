package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestReportFoldsByName(t *testing.T) {
	tm := NewTimer()
	tm.Record("parse", 2*time.Millisecond)
	tm.Record("snapshot", time.Millisecond)
	tm.Record("parse", 3*time.Millisecond)

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("want 2 phases got %d", len(r.Phases))
	}
	if p := r.Phases[0]; p.Name != "parse" || p.Count != 2 || p.DurationMS != 5 {
		t.Fatalf("unexpected parse phase %+v", p)
	}
	if r.TotalMS != 6 {
		t.Fatalf("want total 6ms got %v", r.TotalMS)
	}
	if s := tm.Summary(); !strings.Contains(s, "x2") || !strings.Contains(s, "total") {
		t.Fatalf("unexpected summary:\n%s", s)
	}
}

func TestBeginEnd(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("discover")
	tm.End(idx, "3 fixtures")
	tm.End(42, "ignored")
	r := tm.Report()
	if len(r.Phases) != 1 || r.Phases[0].Note != "3 fixtures" {
		t.Fatalf("unexpected report %+v", r)
	}
}

func TestConcurrentRecord(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Record("check", time.Microsecond)
		}()
	}
	wg.Wait()
	if c := tm.Report().Phases[0].Count; c != 16 {
		t.Fatalf("want 16 got %d", c)
	}
}

func TestSlowest(t *testing.T) {
	tm := NewTimer()
	tm.Record("a", time.Millisecond)
	tm.Record("b", 3*time.Millisecond)
	tm.Record("c", 2*time.Millisecond)
	got := tm.Slowest(2)
	if len(got) != 2 || got[0].Name != "b" || got[1].Name != "c" {
		t.Fatalf("unexpected %v", got)
	}
}

func TestNilRecord(t *testing.T) {
	var tm *Timer
	tm.Record("x", time.Second)
}
