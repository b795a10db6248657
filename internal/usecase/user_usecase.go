// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import "context"

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	DisplayName string `json:"displayName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateDisplayNameInput defines the data for a display name change.
type UpdateDisplayNameInput struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"displayName" validate:"required"`
}

// --- Output DTOs ---

// UserOutput is what the request layer sees after registration or login.
// It deliberately carries no password, digest, or salt.
type UserOutput struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Token       string `json:"token"`
}

// UserUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// Register creates a new account and returns it with a freshly issued
	// token. Fails with a conflict error when the email is already taken.
	Register(ctx context.Context, input *RegisterInput) (*UserOutput, error)

	// Login verifies credentials and issues a token. An unknown email and a
	// wrong password produce the same unauthorized error.
	Login(ctx context.Context, input *LoginInput) (*UserOutput, error)

	// UpdateDisplayName changes a user's display name.
	UpdateDisplayName(ctx context.Context, input *UpdateDisplayNameInput) error

	// DeleteAccount removes the account and all tasks it owns, atomically.
	DeleteAccount(ctx context.Context, id int64) error
}
