// Package tracer measures individual calls.
//
// A Span captures the wall clock and process CPU time at the start of a
// call and computes the deltas when it ends:
//
//   - span.go: Span lifecycle and Measurement
//   - id.go: ULID call identifiers
//
// Spans are synchronous and carry no exporter; they exist so that the
// instrumentor and its tests share one measurement path.
package tracer
