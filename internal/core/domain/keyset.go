package domain

// KeySet is a set of field names.
type KeySet map[string]struct{}

// NewKeySet builds a set from the given names.
func NewKeySet(keys ...string) KeySet {
	ks := make(KeySet, len(keys))
	for _, k := range keys {
		ks[k] = struct{}{}
	}
	return ks
}

// Has reports whether key is in the set. A nil set contains nothing.
func (ks KeySet) Has(key string) bool {
	_, ok := ks[key]
	return ok
}

// Union returns a new set holding the names of ks and every other set.
func (ks KeySet) Union(others ...KeySet) KeySet {
	out := make(KeySet, len(ks))
	for k := range ks {
		out[k] = struct{}{}
	}
	for _, o := range others {
		for k := range o {
			out[k] = struct{}{}
		}
	}
	return out
}

// ReservedFields returns the fixed deny-list of connection-specific fields.
func ReservedFields() KeySet {
	return NewKeySet(FieldConnection, FieldRequest, FieldMessage)
}
