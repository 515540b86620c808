// Package memory provides the in-memory restoration registry.
//
// The registry maps restoration tokens to the session that owns them and the
// time the token was issued. It is backed by a sharded concurrent map, so
// single-token operations lock one shard and a sweep write-locks one shard at
// a time.
//
// Thread Safety:
//
// All operations are thread-safe. Claim performs its existence check, its
// lifetime check and the deletion under one shard lock, so it cannot race a
// concurrent Sweep or Remove of the same token.
package memory
