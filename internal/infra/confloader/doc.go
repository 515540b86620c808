// Package confloader provides configuration loading mechanism.
//
// This package implements a configuration loader on top of koanf that
// merges several sources into one typed struct.
//
// Priority (highest to lowest):
//
//  1. Overrides (command-line flags)
//  2. Environment variables (RESTOREMESH_ prefix)
//  3. Configuration file (YAML)
//  4. Default values
//
// Watcher reports writes to the configuration file so that reloadable
// settings, such as the log level, can be applied without a restart.
package confloader
