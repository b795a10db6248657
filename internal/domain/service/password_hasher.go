// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying construction (HMAC-SHA512 over a per-account
// salt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a fresh random salt and computes a keyed digest of the
	// password. Two calls with the same password yield different salts and
	// therefore different digests.
	Hash(password string) (digest, salt []byte, err error)

	// Verify recomputes the digest of password using the stored salt and
	// compares it against the expected digest in constant time.
	Verify(password string, salt, expectedDigest []byte) bool
}
