// Package main provides the entry point for restoremesh-cli.
//
// Usage:
//
//	restoremesh-cli connect --set user=alice
//	restoremesh-cli restore --token <token>
//	restoremesh-cli -o json status
package main
