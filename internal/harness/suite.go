package harness

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"rubysnap/internal/ast"
	"rubysnap/internal/observ"
	"rubysnap/internal/trace"
)

// Config is everything a Suite needs; there is no global registration.
type Config struct {
	FixturesRoot  string
	Ext           string
	KnownFailures []string

	SnapshotsRoot string
	FailOnDrift   bool

	OracleExempt     []string
	AllowNewerEngine bool

	Parallel bool // RunT: fixture cases call t.Parallel
	Jobs     int  // Run: worker count, GOMAXPROCS when <= 0

	// Match selects cases by name; nil selects all.
	Match func(name string) bool

	Advisor Advisor
	Tracer  trace.Tracer
	Timer   *observ.Timer
}

// Case is one registered test.
type Case struct {
	Name    string
	Fixture *Fixture // nil for fixed cases
	Run     func(ctx context.Context) error
}

// Result of one case in Run.
type Result struct {
	Name    string
	Fixture string
	Err     error
	Elapsed time.Duration
	Skipped bool
}

// Suite runs every check against every discovered fixture.
type Suite struct {
	cfg      Config
	eng      Engine
	orc      Oracle
	fixtures *FixtureSet
	store    *SnapshotStore
	tracer   trace.Tracer
}

// Fixed case inputs.
const (
	EmptyInputCase = "fixed/empty_input"
	FilePathCase   = "fixed/file_path"

	filePathSource = "def foo; __FILE__; end"
	filePathValue  = "filepath.rb"
)

// NewSuite validates cfg, checks grammar coupling and discovers fixtures.
func NewSuite(cfg Config, eng Engine, orc Oracle) (*Suite, error) {
	switch {
	case eng == nil || orc == nil:
		return nil, fmt.Errorf("%w: engine and oracle are required", ErrConfig)
	case cfg.FixturesRoot == "":
		return nil, fmt.Errorf("%w: fixtures root is empty", ErrConfig)
	case cfg.SnapshotsRoot == "":
		return nil, fmt.Errorf("%w: snapshots root is empty", ErrConfig)
	}
	if err := checkGrammarCoupling(eng, orc, cfg.AllowNewerEngine); err != nil {
		return nil, err
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}

	span := trace.Begin(tracer, trace.ScopeSuite, "discover", 0)
	set, err := Discover(cfg.FixturesRoot, DiscoverOptions{
		Ext:           cfg.Ext,
		KnownFailures: cfg.KnownFailures,
		OracleExempt:  cfg.OracleExempt,
	})
	if err != nil {
		span.End("error")
		return nil, err
	}
	for _, p := range set.Stale {
		trace.Point(tracer, trace.ScopeSuite, "warning", "known failure matches no fixture", span.ID(),
			map[string]string{"path": p})
	}
	span.WithExtra("fixtures", fmt.Sprint(len(set.Fixtures))).
		WithExtra("excluded", fmt.Sprint(len(set.Excluded))).
		End("")

	return &Suite{
		cfg:      cfg,
		eng:      eng,
		orc:      orc,
		fixtures: set,
		tracer:   tracer,
		store: &SnapshotStore{
			Root:        cfg.SnapshotsRoot,
			Advisor:     cfg.Advisor,
			FailOnDrift: cfg.FailOnDrift,
		},
	}, nil
}

func (s *Suite) Fixtures() *FixtureSet { return s.fixtures }
func (s *Suite) Store() *SnapshotStore { return s.store }
func (s *Suite) Config() Config        { return s.cfg }

// Cases returns one case per runnable fixture, then the fixed cases,
// filtered by Config.Match.
func (s *Suite) Cases() []Case {
	all := s.allCases()
	if s.cfg.Match == nil {
		return all
	}
	out := all[:0]
	for _, c := range all {
		if s.cfg.Match(c.Name) {
			out = append(out, c)
		}
	}
	return out
}

func (s *Suite) allCases() []Case {
	out := make([]Case, 0, len(s.fixtures.Fixtures)+2)
	for i := range s.fixtures.Fixtures {
		fx := &s.fixtures.Fixtures[i]
		out = append(out, Case{
			Name:    "fixture/" + fx.Path,
			Fixture: fx,
			Run:     func(ctx context.Context) error { return s.runFixture(ctx, fx) },
		})
	}
	out = append(out,
		Case{Name: EmptyInputCase, Run: s.runEmptyInput},
		Case{Name: FilePathCase, Run: s.runFilePath},
	)
	return out
}

// RunT registers every case as a subtest.
func (s *Suite) RunT(t *testing.T) {
	t.Helper()
	for _, c := range s.Cases() {
		t.Run(c.Name, func(t *testing.T) {
			if c.Fixture != nil && s.cfg.Parallel {
				t.Parallel()
			}
			ctx := withAdvisor(t.Context(), Tee(s.cfg.Advisor, TestAdvisor{TB: t}))
			ctx = trace.WithTracer(ctx, s.tracer)
			if err := c.Run(ctx); err != nil {
				t.Fatal(err)
			}
		})
	}
}

// Run executes every case on a bounded worker pool and returns one Result
// per case, in case order. Failures never cancel other cases; ctx
// cancellation only skips cases that have not started.
func (s *Suite) Run(ctx context.Context, jobs int, sink ProgressSink) []Result {
	if jobs <= 0 {
		jobs = s.cfg.Jobs
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if sink == nil {
		sink = nopSink{}
	}
	cases := s.Cases()
	results := make([]Result, len(cases))

	span := trace.Begin(s.tracer, trace.ScopeSuite, "suite", trace.CurrentSpan(ctx).SpanID)
	ctx = trace.WithTracer(ctx, s.tracer)
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})
	ctx = withSink(ctx, sink)
	if s.cfg.Advisor != nil {
		ctx = withAdvisor(ctx, s.cfg.Advisor)
	}

	for _, c := range cases {
		sink.OnEvent(Event{Case: c.Name, Status: StatusQueued})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, c := range cases {
		g.Go(func() error {
			res := Result{Name: c.Name}
			if c.Fixture != nil {
				res.Fixture = c.Fixture.Path
			}
			if err := gctx.Err(); err != nil {
				res.Err, res.Skipped = err, true
				results[i] = res
				sink.OnEvent(Event{Case: c.Name, Status: StatusSkipped, Err: err})
				return nil
			}
			sink.OnEvent(Event{Case: c.Name, Status: StatusWorking})
			start := time.Now()
			res.Err = c.Run(gctx)
			res.Elapsed = time.Since(start)
			results[i] = res

			status := StatusDone
			if res.Err != nil {
				status = StatusError
			}
			sink.OnEvent(Event{Case: c.Name, Status: status, Err: res.Err, Elapsed: res.Elapsed})
			return nil
		})
	}
	_ = g.Wait() // воркеры ошибок не возвращают

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	span.WithExtra("cases", fmt.Sprint(len(results))).
		WithExtra("failed", fmt.Sprint(failed)).
		End("")
	return results
}

// fixtureRun carries per-case state through the checks.
type fixtureRun struct {
	s    *Suite
	ctx  context.Context
	fx   *Fixture
	span *trace.Span
}

// stage runs one check under its own trace span, timer entry and progress
// event.
func (r *fixtureRun) stage(st Stage, fn func() error) error {
	sinkFrom(r.ctx).OnEvent(Event{Case: "fixture/" + r.fx.Path, Stage: st, Status: StatusWorking})
	span := trace.Begin(r.s.tracer, trace.ScopeCheck, "check:"+string(st), r.span.ID())
	start := time.Now()
	err := fn()
	r.s.cfg.Timer.Record(string(st), time.Since(start))
	detail := "ok"
	if err != nil {
		detail = KindOf(err).String()
	}
	span.End(detail)
	return err
}

func (s *Suite) runFixture(ctx context.Context, fx *Fixture) (err error) {
	span := trace.Begin(s.tracer, trace.ScopeFixture, "fixture:"+fx.Path, trace.CurrentSpan(ctx).SpanID)
	defer func() {
		detail := "pass"
		if err != nil {
			detail = KindOf(err).String()
		}
		span.End(detail)
	}()
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID(), Fixture: fx.Path})
	r := &fixtureRun{s: s, ctx: ctx, fx: fx, span: span}

	src, readErr := os.ReadFile(fx.Abs)
	if readErr != nil {
		return checkErr(KindIO, fx.Path, readErr, "read fixture")
	}

	var drift error
	hard := s.fixtureChecks(r, src, &drift)
	switch {
	case hard != nil && drift != nil:
		return errors.Join(hard, drift)
	case hard != nil:
		return hard
	}
	return drift
}

// fixtureChecks runs the checks in order and stops at the first hard
// failure. Snapshot drift goes to *drift and never stops the sequence.
func (s *Suite) fixtureChecks(r *fixtureRun, src []byte, drift *error) error {
	fx := r.fx

	if !fx.OracleExempt {
		if err := r.stage(StageOracle, func() error { return CheckSyntax(s.orc, src, fx.Path) }); err != nil {
			return err
		}
	}

	var root *ast.ProgramNode
	err := r.stage(StageParse, func() error {
		res, err := s.eng.Parse(src, fx.Path)
		if err != nil {
			return checkErr(KindParse, fx.Path, err, "parse failed")
		}
		if len(res.Errors) > 0 {
			return checkErr(KindParse, fx.Path, nil, "%d parse errors\n%s", len(res.Errors), res.FormatErrors())
		}
		root = res.Root
		return nil
	})
	if err != nil {
		return err
	}

	var data []byte
	err = r.stage(StageSnapshot, func() error {
		var err error
		if data, err = s.eng.Dump(src, fx.Path); err != nil {
			return checkErr(KindRoundTrip, fx.Path, err, "dump failed")
		}
		inspect := func(d []byte) (string, error) {
			loaded, err := s.eng.Load(src, d)
			if err != nil {
				return "", err
			}
			return ast.Format(loaded), nil
		}
		res, err := s.store.compareWith(r.ctx, fx.Path, data, inspect)
		if err != nil {
			return err
		}
		*drift = s.store.Drift(fx.Path, res)
		return nil
	})
	if err != nil {
		return err
	}

	if err := r.stage(StageRoundTrip, func() error { return verifyLoaded(s.eng, src, fx.Path, root, data) }); err != nil {
		return err
	}
	if err := r.stage(StageNewlines, func() error { return checkNewlines(src, s.eng.Newlines(src), fx.Path) }); err != nil {
		return err
	}
	if !fx.OracleExempt {
		if err := r.stage(StageLex, func() error { return checkLexCompat(s.eng, s.orc, src, fx.Path) }); err != nil {
			return err
		}
	}
	return nil
}

func (s *Suite) runEmptyInput(context.Context) error {
	res, err := s.eng.Parse(nil, "")
	if err != nil {
		return checkErr(KindParse, EmptyInputCase, err, "parse failed")
	}
	if len(res.Errors) > 0 {
		return checkErr(KindParse, EmptyInputCase, nil, "empty input produced %d errors", len(res.Errors))
	}
	if res.Root == nil || res.Root.Statements == nil {
		return checkErr(KindParse, EmptyInputCase, nil, "no statements node")
	}
	if n := len(res.Root.Statements.Body); n != 0 {
		return checkErr(KindParse, EmptyInputCase, nil, "want empty body got %d statements", n)
	}
	return nil
}

func (s *Suite) runFilePath(context.Context) error {
	res, err := s.eng.Parse([]byte(filePathSource), filePathValue)
	if err != nil {
		return checkErr(KindParse, FilePathCase, err, "parse failed")
	}
	if len(res.Errors) > 0 {
		return checkErr(KindParse, FilePathCase, nil, "%d parse errors\n%s", len(res.Errors), res.FormatErrors())
	}
	node, ok := ast.FindFirst[*ast.SourceFileNode](res.Root)
	if !ok {
		return checkErr(KindParse, FilePathCase, nil, "no SourceFileNode in tree")
	}
	if node.Filepath != filePathValue {
		return checkErr(KindParse, FilePathCase, nil, "want filepath %q got %q", filePathValue, node.Filepath)
	}
	return nil
}

type sinkKey struct{}
type advisorKey struct{}

func withSink(ctx context.Context, sink ProgressSink) context.Context {
	return context.WithValue(ctx, sinkKey{}, sink)
}

func sinkFrom(ctx context.Context) ProgressSink {
	if sink, ok := ctx.Value(sinkKey{}).(ProgressSink); ok {
		return sink
	}
	return nopSink{}
}

func withAdvisor(ctx context.Context, adv Advisor) context.Context {
	return context.WithValue(ctx, advisorKey{}, adv)
}

func advisorFrom(ctx context.Context, fallback Advisor) Advisor {
	if adv, ok := ctx.Value(advisorKey{}).(Advisor); ok {
		return adv
	}
	return fallback
}
