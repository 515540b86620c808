// Package logger provides structured logging for restoremesh.
//
// It wraps log/slog:
//
//   - logger.go: Logger interface, JSON/text handlers, dynamic level
//   - context.go: context propagation of the logger and connection ID
//   - redact.go: masking of restoration tokens in log attributes
//
// Restoration tokens grant access to another connection's state, so any
// UUID-shaped substring of a string attribute is masked before output.
package logger
