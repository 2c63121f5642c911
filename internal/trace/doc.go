// Package trace records what the annotation pipeline is doing: which
// fixtures were loaded, how long analysis and rendering took and, at the
// debug level, every annotation as it is recorded.
//
// # Usage
//
//	moveide render --trace=- --trace-level=detail testdata/render
//
// Tracers travel through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	sp := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "render", 0)
//	defer sp.End("")
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: per-annotation points
package trace
