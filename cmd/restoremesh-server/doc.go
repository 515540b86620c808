// Package main provides the entry point for restoremesh-server.
//
// The server accepts WebSocket connections, issues a restoration token to
// each one and lets a later connection take over the session fields of an
// earlier one by presenting its token.
//
// Usage:
//
//	restoremesh-server [flags]
//	restoremesh-server --config /path/to/config.yaml --addr :8080
//
// Configuration is read from defaults, the YAML file, RESTOREMESH_
// environment variables and flags, in increasing priority. Changes to the
// log level in the file are applied without a restart.
package main
