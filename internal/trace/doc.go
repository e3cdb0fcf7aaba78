// Package trace records where time goes in a tokenize run.
//
// Events are emitted as begin/end pairs around the driver, each pass (load,
// lex) and each file, and are written as text or NDJSON to a stream.
//
//	akuru tokenize --trace=- --trace-level=detail src/
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: reserved for failure reports
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "lex", parentID)
//	defer span.End("")
package trace
