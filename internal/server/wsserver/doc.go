// Package wsserver serves the WebSocket endpoint and its HTTP side routes.
//
// Every accepted connection owns a domain.Session and a ULID. Its frames are
// read by one goroutine and run, in order, through the event pipeline:
//
//	Recover -> Logging -> RateLimit -> Restore -> application stage
//
// Outbound frames go through a per-connection queue drained by a writer
// goroutine, so handlers never block on a slow client.
//
// Side routes:
//
//   - /health: liveness
//   - /version: build information
//   - /metrics: Prometheus exposition (when enabled)
//   - /debug/registry: restoration registry and connection counts
package wsserver
