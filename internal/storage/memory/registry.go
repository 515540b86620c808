package memory

import (
	"time"

	"github.com/yndnr/restoremesh-go/internal/core/domain"
	"github.com/yndnr/restoremesh-go/pkg/cmap"
)

// Registry is the per-server mapping from restoration token to session.
type Registry struct {
	entries *cmap.Map[string, domain.RestoreEntry]
}

// Option configures the Registry.
type Option func(*registryOptions)

type registryOptions struct {
	shards int
}

// WithShardCount sets the number of map shards (a power of 2).
func WithShardCount(n int) Option {
	return func(o *registryOptions) {
		o.shards = n
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	o := registryOptions{shards: cmap.DefaultShardCount}
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry{
		entries: cmap.NewWithShards[string, domain.RestoreEntry](o.shards),
	}
}

// Put registers session under token. A token that is already present is an
// invariant violation and yields ErrTokenConflict; the existing entry is kept.
func (r *Registry) Put(token string, session *domain.Session, issuedAt time.Time) error {
	entry := domain.RestoreEntry{Session: session, IssuedAt: issuedAt}
	if !r.entries.SetIfAbsent(token, entry) {
		return domain.ErrTokenConflict.WithDetails("token already registered")
	}
	return nil
}

// Get returns the session registered under token without modifying the registry.
func (r *Registry) Get(token string) (*domain.Session, bool) {
	e, ok := r.entries.Get(token)
	if !ok {
		return nil, false
	}
	return e.Session, true
}

// Entry returns the full registry entry for token.
func (r *Registry) Entry(token string) (domain.RestoreEntry, bool) {
	return r.entries.Get(token)
}

// Remove deletes token. Removing an unknown token is a no-op.
func (r *Registry) Remove(token string) {
	r.entries.Delete(token)
}

// Claim presents token for restoration at now.
//
// An entry whose session was never decorated with restoration metadata for
// this token is reported as missing and left in place. Otherwise the entry is
// removed and the outcome says whether it was still within lifetime. The
// returned entry is only meaningful for ClaimRestored.
func (r *Registry) Claim(token string, now time.Time, lifetime time.Duration) (domain.RestoreEntry, domain.ClaimOutcome) {
	var outcome domain.ClaimOutcome

	entry, _, _ := r.entries.RemoveIf(token, func(e domain.RestoreEntry) bool {
		if !registeredUnder(e, token) {
			outcome = domain.ClaimMissing
			return false
		}
		if e.ValidAt(now, lifetime) {
			outcome = domain.ClaimRestored
		} else {
			outcome = domain.ClaimExpired
		}
		return true
	})
	return entry, outcome
}

// Sweep removes every entry issued more than lifetime before now and returns
// how many were removed.
func (r *Registry) Sweep(now time.Time, lifetime time.Duration) int {
	return r.entries.DeleteFunc(func(_ string, e domain.RestoreEntry) bool {
		return e.SweepableAt(now, lifetime)
	})
}

// Len returns the number of registered tokens.
func (r *Registry) Len() int {
	return r.entries.Count()
}

// Tokens returns a snapshot of the registered tokens.
func (r *Registry) Tokens() []string {
	return r.entries.Keys()
}

func registeredUnder(e domain.RestoreEntry, token string) bool {
	if e.Session == nil {
		return false
	}
	md, ok := e.Session.RestoreMetadata()
	return ok && md.Token == token
}
