// Package buildinfo provides build information for restoremesh.
//
// Values are injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/restoremesh-go/internal/infra/buildinfo.Version=v1.0.0"
//
// When a value was not injected, the Go version and VCS revision recorded by
// the toolchain are used instead.
package buildinfo
