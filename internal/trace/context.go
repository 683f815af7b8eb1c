package trace

import "context"

type tracerKey struct{}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx; nil means Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// SpanContext is the innermost open span of a harness run and the fixture
// it belongs to. Fixture is empty at suite level.
type SpanContext struct {
	SpanID  uint64
	Fixture string
}

type spanKey struct{}

// CurrentSpan returns the span context of ctx, zero when none is attached.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx == nil {
		return SpanContext{}
	}
	sc, _ := ctx.Value(spanKey{}).(SpanContext)
	return sc
}

// WithSpanContext attaches sc. An empty Fixture inherits the enclosing
// one, so check spans stay attributed to their fixture.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	if ctx == nil {
		return nil
	}
	if sc.Fixture == "" {
		sc.Fixture = CurrentSpan(ctx).Fixture
	}
	return context.WithValue(ctx, spanKey{}, sc)
}

// PointIn emits a point event under the current span of ctx using the
// tracer from ctx. The fixture, when known, is added to extra.
func PointIn(ctx context.Context, scope Scope, name, detail string, extra map[string]string) {
	t := FromContext(ctx)
	if !t.Enabled() {
		return
	}
	sc := CurrentSpan(ctx)
	if sc.Fixture != "" {
		if extra == nil {
			extra = make(map[string]string, 1)
		}
		extra["fixture"] = sc.Fixture
	}
	Point(t, scope, name, detail, sc.SpanID, extra)
}
