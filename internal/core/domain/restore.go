package domain

import "time"

// RestoreMetadata is attached to a session once it has been registered.
type RestoreMetadata struct {
	Token    string
	IssuedAt time.Time
}

// RestoreEntry is the registry value stored under a restoration token.
type RestoreEntry struct {
	Session  *Session
	IssuedAt time.Time
}

// ValidAt reports whether the entry may still be restored at now.
// A token issued at t is valid strictly before t+lifetime.
func (e RestoreEntry) ValidAt(now time.Time, lifetime time.Duration) bool {
	return e.IssuedAt.Add(lifetime).After(now)
}

// SweepableAt reports whether the evictor should drop the entry at now.
// The evictor is lenient at the exact boundary; the restore path is not.
func (e RestoreEntry) SweepableAt(now time.Time, lifetime time.Duration) bool {
	return e.IssuedAt.Add(lifetime).Before(now)
}

// ClaimOutcome is the result of presenting a token to the registry.
type ClaimOutcome int

const (
	// ClaimMissing means no restorable entry exists for the token.
	ClaimMissing ClaimOutcome = iota
	// ClaimRestored means the entry was valid and has been consumed.
	ClaimRestored
	// ClaimExpired means the entry was past its lifetime and has been removed.
	ClaimExpired
)

func (o ClaimOutcome) String() string {
	switch o {
	case ClaimRestored:
		return "restored"
	case ClaimExpired:
		return "timed_out"
	default:
		return "missing"
	}
}
