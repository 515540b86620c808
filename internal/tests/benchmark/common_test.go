package benchmark

import (
	"context"
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/yndnr/restoremesh-go/internal/core/domain"
	"github.com/yndnr/restoremesh-go/internal/storage/memory"
	"github.com/yndnr/restoremesh-go/pkg/token"
)

// EntryCounts defines the registry sizes for benchmarking.
var EntryCounts = []int{1000, 10000, 100000}

// SmallEntryCounts for quick benchmarks.
var SmallEntryCounts = []int{1000, 10000}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// newSession creates a session registered under a fresh token.
func newSession(issuedAt time.Time) (string, *domain.Session) {
	tok, err := token.Generate()
	if err != nil {
		panic(err)
	}
	s := domain.NewSession()
	s.Set("user", "bench")
	s.Set("room", "lobby")
	s.SetRestoreMetadata(domain.RestoreMetadata{Token: tok, IssuedAt: issuedAt})
	return tok, s
}

// prefillRegistry registers count sessions issued at issuedAt.
func prefillRegistry(b *testing.B, reg *memory.Registry, count int, issuedAt time.Time) []string {
	b.Helper()

	tokens := make([]string, count)
	for i := range tokens {
		tok, s := newSession(issuedAt)
		if err := reg.Put(tok, s, issuedAt); err != nil {
			b.Fatalf("Put failed: %v", err)
		}
		tokens[i] = tok
	}
	return tokens
}

// benchEvent is a minimal event that discards everything sent to it.
type benchEvent struct {
	conn    bool
	msg     any
	session *domain.Session
}

func (e *benchEvent) IsConnection() bool             { return e.conn }
func (e *benchEvent) Message() any                   { return e.msg }
func (e *benchEvent) Session() *domain.Session       { return e.session }
func (e *benchEvent) Send(domain.Notification) error { return nil }

func nopNext(context.Context) error { return nil }

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithEntryCounts runs a benchmark function with various registry sizes.
func runWithEntryCounts(b *testing.B, counts []int, benchFn func(b *testing.B, count int)) {
	for _, count := range counts {
		b.Run(fmt.Sprintf("entries_%d", count), func(b *testing.B) {
			benchFn(b, count)
		})
	}
}
