// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"taskdeck/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for account persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindByEmail retrieves a single user by email. The lookup is
	// case-insensitive.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// EmailExists reports whether any account already uses the given email,
	// ignoring case. It is a fast-path check only; the unique index on the
	// email column is the authoritative guard.
	EmailExists(ctx context.Context, email string) (bool, error)

	// Create persists a new user and fills in the assigned ID and timestamps.
	Create(ctx context.Context, user *entity.User) error

	// UpdateDisplayName changes the display name of an existing user.
	// Returns ErrUserNotFound if no such account exists.
	UpdateDisplayName(ctx context.Context, id int64, displayName string) error

	// Delete removes the user and all tasks they own. Returns ErrUserNotFound
	// if no such account exists.
	Delete(ctx context.Context, id int64) error
}
