// Package cmap provides a concurrent map used by the restoration registry.
//
// Keys are spread over a power-of-two number of shards, each guarded by its
// own RWMutex. Single-key operations hold exactly one shard lock, so
// check-then-act helpers (SetIfAbsent, RemoveIf) are atomic per key.
// Whole-map operations (Range, DeleteFunc, Count) visit shards one at a time
// and therefore observe a per-shard consistent view only.
//
// Usage:
//
//	m := cmap.New[string, Entry]()
//	m.SetIfAbsent(token, entry)
//	e, ok := m.RemoveIf(token, func(e Entry) bool { return e.Expired(now) })
package cmap
