// Package output renders restoremesh-cli results as a table, JSON or YAML.
package output
