// Package instrument logs function calls.
//
// An Instrumentor wraps a call, masks its arguments, measures it with a
// tracer span and emits one line per call:
//
//   - instrument.go: Instrumentor, Do, Call and Wrap
//   - record.go: Call record serialization
//   - class.go: Per-type registration of instrumented methods
//   - duration.go: Human readable durations
//
// A successful call is logged at INFO with the JSON record as message:
//
//	{"function":"add","args":[2,3],"kwargs":{},"duration":"0.00s","cpu_time":"0.00","memory_usage":"0.42%","thread":"goroutine-1"}
//
// A failing call is logged once at ERROR and its error is returned
// unchanged. A panic is logged once at ERROR and re-raised.
package instrument
