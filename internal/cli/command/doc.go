// Package command provides CLI command definitions for restoremesh-cli.
//
// It uses urfave/cli/v2 for command parsing. Every command opens its own
// connection; a token printed by connect is consumed by restore.
package command
