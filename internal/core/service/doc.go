// Package service implements the connection restoration protocol.
//
// This package contains:
//
//   - RestoreService: per-event handler that issues restoration tokens on new
//     connections and answers restore requests on messages
//   - Evictor: background sweep of expired registry entries
//   - ParseRestoreRequest: extraction of the token from a restore request
//
// The registry is an injected dependency (RestoreRegistry), constructed once
// per server instance. All time comparisons go through one clock.Clock
// shared by the handler and the evictor.
package service
