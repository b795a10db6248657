// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"

	"github.com/pkg/errors"

	"taskdeck/internal/domain/service"
)

// saltLength is the size of the per-account HMAC key. SHA-512's block-sized
// key leaves no key material unused.
const saltLength = 64

// hmacHasher is a concrete implementation of the PasswordHasher interface.
// It digests the password with HMAC-SHA512, using a fresh random salt as the
// HMAC key. Digest and salt are stored separately on the account.
type hmacHasher struct{}

// NewHMACHasher is the constructor for hmacHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewHMACHasher() service.PasswordHasher {
	return &hmacHasher{}
}

// Hash generates a random salt and computes the keyed digest of the password.
// The salt makes the result non-deterministic across calls.
func (h *hmacHasher) Hash(password string) (digest, salt []byte, err error) {
	salt = make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, errors.Wrap(err, "failed to generate password salt")
	}

	return computeDigest(password, salt), salt, nil
}

// Verify recomputes the digest of password under the stored salt and compares
// it with the expected digest. hmac.Equal compares in constant time, so the
// comparison leaks nothing about where the first mismatching byte occurs.
func (h *hmacHasher) Verify(password string, salt, expectedDigest []byte) bool {
	return hmac.Equal(computeDigest(password, salt), expectedDigest)
}

func computeDigest(password string, salt []byte) []byte {
	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))

	return mac.Sum(nil)
}
