// Package domain defines the core domain models for restoremesh.
//
// Domain models are pure value objects and entities without any
// IO dependencies or framework coupling. This package contains:
//
//   - Session: per-connection field map plus reserved restoration metadata
//   - RestoreEntry, RestoreMetadata: what the registry keeps per token
//   - Notification: the payloads sent to clients
//   - Errors: domain-specific error definitions
package domain
