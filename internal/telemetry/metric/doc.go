// Package metric provides Prometheus metrics for restoremesh.
//
// Metrics are registered on a private prometheus.Registry (plus the Go and
// process collectors) and served by Registry.Handler. All recording methods
// are safe to call on a nil *Registry, which lets components run without
// metrics in tests.
package metric
