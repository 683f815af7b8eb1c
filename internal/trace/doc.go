// Package trace records what a harness run is doing: which suite, which
// fixture, which check, and how long each took.
//
// Enable it from the CLI:
//
//	rubysnap check --trace=- --trace-level=detail
//
// Tracers:
//
//   - Nop: used when tracing is off
//   - StreamTracer: writes every event as it happens (text or NDJSON)
//   - RingTracer: keeps the last N events for a post-mortem dump
//   - MultiTracer: fan-out
//
// Levels map onto scopes: phase emits suite events, detail adds fixtures,
// debug adds individual checks. Point events (advisories, warnings) use the
// scope of whatever produced them.
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFixture, "fixture:calls.txt", 0)
//	defer span.End("")
package trace
