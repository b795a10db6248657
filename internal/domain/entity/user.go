// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the core identity in the system, representing a single account.
// The email is stored trimmed and lower-cased; it is unique across all
// accounts and never changes after registration.
type User struct {
	ID           int64     // Numeric identifier assigned by the store on creation.
	DisplayName  string    // The user's display name. Mutable.
	Email        string    // Canonical (lower-case) login identifier. Immutable after creation.
	PasswordHash []byte    // HMAC-SHA512 digest of the password, keyed by PasswordSalt.
	PasswordSalt []byte    // Per-account random salt, generated once at registration.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
