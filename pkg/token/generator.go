package token

import (
	"strings"

	"github.com/google/uuid"
)

// Length is the length of a canonical token.
const Length = 36

// Generate returns a new random token in canonical form.
func Generate() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// IsCanonical reports whether s is a token in 8-4-4-4-12 hex form
// (either case). Braced, URN and unhyphenated UUID forms are rejected.
func IsCanonical(s string) bool {
	if len(s) != Length {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// Canonicalize validates s and returns its lowercase canonical form.
func Canonicalize(s string) (string, bool) {
	if !IsCanonical(s) {
		return "", false
	}
	return strings.ToLower(s), true
}
