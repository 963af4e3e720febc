// Package benchmark provides performance benchmarks for calllog.
//
// Run benchmarks with:
//
//	go test -bench=. -benchmem ./internal/tests/benchmark/...
//
// Run only masking with larger payloads:
//
//	go test -bench=BenchmarkMask -benchmem -benchtime=5s ./internal/tests/benchmark/...
//
// Compare results:
//
//	benchstat old.txt new.txt
package benchmark
