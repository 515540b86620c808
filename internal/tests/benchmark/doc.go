// Package benchmark provides performance benchmarks for RestoreMesh.
//
// Run benchmarks with:
//
//	go test -bench=. -benchmem ./internal/tests/benchmark/...
//
// Run with a specific registry size:
//
//	go test -bench='BenchmarkRegistry.*/entries_100000' -benchmem ./internal/tests/benchmark/...
//
// Compare results:
//
//	benchstat old.txt new.txt
package benchmark
