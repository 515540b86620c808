// Package token provides restoration token generation and validation.
//
// Token Format:
//
//   - Random (version 4) UUID, 122 bits of entropy
//   - Canonical textual form: 8-4-4-4-12 lowercase hex groups
//   - Total: 36 characters
//
// Tokens are compared in canonical form. Canonicalize accepts any hex case
// and returns the lowercase form used as the registry key.
package token
