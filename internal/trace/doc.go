// Package trace records what luapretty is doing while it formats files.
//
// Tracing exists to explain slow runs and stuck ones: every file and every
// formatting stage can be wrapped in a span, and the events go either
// straight to a stream or into a ring buffer that is dumped when a run
// fails.
//
// # Usage
//
//	luapretty fmt --trace=- --trace-level=detail src/
//
// # Tracers
//
//   - Nop: zero-cost tracer used when tracing is off
//   - StreamTracer: writes every event as it happens (text or NDJSON)
//   - RingTracer: keeps the last N events for a post-mortem dump
//   - MultiTracer: fans events out to several tracers
//
// # Levels and scopes
//
//   - LevelPhase: the run and each file (ScopeRun, ScopeFile)
//   - LevelDetail: formatting stages inside a file (ScopeStage)
//   - LevelDebug: everything, including cache lookups (ScopeInternal)
//
// Tracers and the current span travel in context.Context. Files are
// formatted in parallel, so a file span tags everything below it with the
// file's path:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, file := trace.StartFile(ctx, "src/a.lua")
//	_, span := trace.Start(ctx, trace.ScopeStage, "parse")
//	span.End("")
//	file.End("changed")
package trace
