package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeSuite, false},
		{LevelError, ScopeSuite, false},
		{LevelPhase, ScopeSuite, true},
		{LevelPhase, ScopeFixture, false},
		{LevelDetail, ScopeFixture, true},
		{LevelDetail, ScopeCheck, false},
		{LevelDebug, ScopeCheck, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		l, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if !strings.EqualFold(l.String(), s) {
			t.Fatalf("want %s got %s", s, l)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error")
	}
}

func TestStreamSpansAndPoints(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	suite := Begin(tr, ScopeSuite, "suite", 0)
	fx := Begin(tr, ScopeFixture, "fixture:a.txt", suite.ID())
	check := Begin(tr, ScopeCheck, "check:snapshot", fx.ID())
	Point(tr, ScopeCheck, "snapshot:created", "a.txt", fx.ID(), nil)
	check.End("")
	fx.WithExtra("result", "pass").End("")
	suite.End("1 case")

	out := buf.String()
	for _, want := range []string{
		"\u2192 suite",
		"\u2192 fixture:a.txt",
		"\u2022 snapshot:created (a.txt)",
		"\u2190 fixture:a.txt {result=pass}",
		"\u2190 suite (1 case)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "check:snapshot") {
		t.Errorf("check span leaked at detail level:\n%s", out)
	}
}

func TestNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeSuite, "warning", "stale", 0, map[string]string{"path": "x.txt"})

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if got["name"] != "warning" || got["scope"] != "suite" || got["kind"] != "point" {
		t.Fatalf("unexpected event %v", got)
	}
}

func TestRingWraps(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(r, ScopeSuite, name, "", 0, nil)
	}
	snap := r.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("want [b c] got %v", snap)
	}
}

func TestMultiFansOut(t *testing.T) {
	a := NewRingTracer(4, LevelDebug)
	b := NewRingTracer(4, LevelDebug)
	m := NewMultiTracer(LevelDebug, a, b)
	Begin(m, ScopeSuite, "suite", 0).End("")
	if len(a.Snapshot()) != 2 || len(b.Snapshot()) != 2 {
		t.Fatalf("want 2 events each, got %d and %d", len(a.Snapshot()), len(b.Snapshot()))
	}
}

func TestNopAndContext(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context must give Nop")
	}
	r := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != Tracer(r) {
		t.Fatal("tracer lost in context")
	}
	span := Begin(Nop, ScopeSuite, "x", 0)
	if span.End("") != 0 {
		t.Fatal("nop span must not measure")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("want disabled tracer, got %v %v", tr, err)
	}
}

func TestSpanContextCarriesFixture(t *testing.T) {
	r := NewRingTracer(8, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	ctx = WithSpanContext(ctx, SpanContext{SpanID: 7, Fixture: "calls/method_calls.txt"})
	// спан проверки без фикстуры наследует её
	ctx = WithSpanContext(ctx, SpanContext{SpanID: 9})
	if sc := CurrentSpan(ctx); sc.SpanID != 9 || sc.Fixture != "calls/method_calls.txt" {
		t.Fatalf("want span 9 of calls/method_calls.txt, got %+v", sc)
	}

	PointIn(ctx, ScopeFixture, "snapshot:created", "", map[string]string{"path": "p"})
	evs := r.Snapshot()
	if len(evs) != 1 {
		t.Fatalf("want 1 event got %d", len(evs))
	}
	ev := evs[0]
	if ev.ParentID != 9 || ev.Extra["fixture"] != "calls/method_calls.txt" || ev.Extra["path"] != "p" {
		t.Fatalf("unexpected point %+v", ev)
	}
}

func TestPointInWithoutTracer(t *testing.T) {
	// без трейсера в контексте ничего не происходит
	PointIn(context.Background(), ScopeSuite, "warning", "", nil)
	if sc := CurrentSpan(context.Background()); sc != (SpanContext{}) {
		t.Fatalf("want zero span context got %+v", sc)
	}
}
