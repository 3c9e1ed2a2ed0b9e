// Package trace records what featsync does while it rewrites a manifest.
//
// # Usage
//
//	featsync sync --trace=- --trace-level=detail --config Tauri.toml Cargo.toml
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: failures only
//   - LevelPhase: command boundaries
//   - LevelDetail: pipeline stages (load, parse, features, resolve, render, write)
//   - LevelDebug: everything, including per-entry decisions
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeStage, "parse", trace.SpanID(ctx))
//	defer span.End("")
package trace
