// Package shutdown provides graceful shutdown for restoremesh.
//
// This package handles process termination signals:
//
//   - Signal handling (SIGINT, SIGTERM)
//   - Timeout-bounded hook execution, in reverse registration order
//   - Errors from every hook combined into one
//
// Usage:
//
//	h := shutdown.NewHandler(15 * time.Second)
//	h.OnShutdown("server", srv.Shutdown)
//	err := h.Wait(ctx)
package shutdown
