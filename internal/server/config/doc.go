// Package config provides server configuration for restoremesh.
//
// This package defines the server configuration structure and validation:
//
//   - spec.go: ServerConfig struct definition
//   - default.go: Default configuration values
//   - verify.go: Validation, reporting every problem at once
//   - convert.go: Conversion into component configurations
//   - load.go: Loading through internal/infra/confloader
//
// Configuration supports multiple sources: files, environment variables,
// and flags.
package config
