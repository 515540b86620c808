package service

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/yndnr/restoremesh-go/internal/telemetry/logger"
	"github.com/yndnr/restoremesh-go/internal/telemetry/metric"
)

// Sweeper removes expired registry entries.
type Sweeper interface {
	Sweep(now time.Time, lifetime time.Duration) int
}

// Evictor periodically sweeps entries older than the token lifetime.
//
// The restore path checks lifetime on its own, so the evictor only bounds
// memory; a late sweep never lets an expired token restore.
type Evictor struct {
	target   Sweeper
	lifetime time.Duration
	interval time.Duration

	clock   clock.Clock
	logger  logger.Logger
	metrics *metric.Registry

	mu      sync.Mutex
	started bool
	stopped bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewEvictor creates an evictor for target. It does nothing until Start.
func NewEvictor(target Sweeper, lifetime, interval time.Duration, opts ...Option) *Evictor {
	o := options{
		clock:  clock.New(),
		logger: logger.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Evictor{
		target:   target,
		lifetime: lifetime,
		interval: interval,
		clock:    o.clock,
		logger:   o.logger.With("component", "evictor"),
		metrics:  o.metrics,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins sweeping every interval. Calls after the first, and calls
// after Stop, are no-ops.
func (e *Evictor) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started || e.stopped {
		return
	}
	e.started = true

	// Created here rather than in the goroutine so that a tick can never be
	// missed between Start returning and the loop running.
	ticker := e.clock.Ticker(e.interval)
	go e.loop(ticker)

	e.logger.Info("evictor started", "interval", e.interval, "lifetime", e.lifetime)
}

// Stop ends the sweep loop and waits for it to exit. It is idempotent and
// safe to call on an evictor that was never started.
func (e *Evictor) Stop() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	started := e.started
	close(e.stopCh)
	e.mu.Unlock()

	if started {
		<-e.doneCh
		e.logger.Info("evictor stopped")
	}
}

// SweepNow runs one sweep immediately and returns the number of entries removed.
func (e *Evictor) SweepNow() int {
	removed := e.target.Sweep(e.clock.Now(), e.lifetime)
	e.metrics.AddEvicted(removed)
	if removed > 0 {
		e.logger.Debug("expired restoration entries evicted", "count", removed)
	}
	return removed
}

func (e *Evictor) loop(ticker *clock.Ticker) {
	defer close(e.doneCh)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.SweepNow()
		case <-e.stopCh:
			return
		}
	}
}
