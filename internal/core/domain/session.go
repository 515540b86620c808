package domain

import (
	"sort"
	"sync"
)

// Reserved field names. They are connection specific and never copied
// across a restore.
const (
	// FieldConnection holds the live transport handle.
	FieldConnection = "@@WebsocketConnection"
	// FieldRequest holds the upgrade request that opened the connection.
	FieldRequest = "@@WebsocketRequest"
	// FieldMessage holds the raw inbound message being processed.
	FieldMessage = "message"
)

// Session is the mutable state record of one logical client session.
//
// Fields are an open mapping from name to value owned by the dispatch
// pipeline. Restoration metadata lives outside that mapping, so it is never
// visible to field iteration and never copied.
//
// Session is safe for concurrent use, but a restore merge is not atomic with
// respect to other writers: callers must not mutate a session while a merge
// targeting it is in progress.
type Session struct {
	mu      sync.RWMutex
	fields  map[string]any
	restore *RestoreMetadata
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{fields: make(map[string]any)}
}

// Get returns the value of a field.
func (s *Session) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.fields[key]
	return v, ok
}

// Set stores a field, replacing any existing value.
func (s *Session) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields[key] = value
}

// Delete removes a field.
func (s *Session) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fields, key)
}

// Len returns the number of fields.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fields)
}

// Keys returns the field names in sorted order.
func (s *Session) Keys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.fields))
	for k := range s.fields {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	sort.Strings(keys)
	return keys
}

// Fields returns a shallow snapshot of the fields, leaving out names in skip.
func (s *Session) Fields(skip KeySet) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]any, len(s.fields))
	for k, v := range s.fields {
		if skip.Has(k) {
			continue
		}
		out[k] = v
	}
	return out
}

// RestoreMetadata returns the restoration metadata, if the session has been
// registered.
func (s *Session) RestoreMetadata() (RestoreMetadata, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.restore == nil {
		return RestoreMetadata{}, false
	}
	return *s.restore, true
}

// SetRestoreMetadata attaches restoration metadata, replacing any previous one.
func (s *Session) SetRestoreMetadata(md RestoreMetadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restore = &md
}

// CopyFrom shallow-copies every field of src whose name is not in skip onto
// s, overwriting same-named fields. It returns the number of fields copied.
// Restoration metadata is not copied.
func (s *Session) CopyFrom(src *Session, skip KeySet) int {
	if src == nil || src == s {
		return 0
	}

	snapshot := src.Fields(skip)

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range snapshot {
		s.fields[k] = v
	}
	return len(snapshot)
}
