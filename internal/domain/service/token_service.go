package service

import (
	"github.com/golang-jwt/jwt/v5"

	"taskdeck/internal/domain/entity"
)

// Claims defines the custom claims carried by an issued token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for minting and verifying the signed,
// time-bounded identity assertions handed to clients after authentication.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// CreateToken builds and signs a bearer token asserting the given user's
	// identity. The token expires seven days after issuance; expiry is the
	// only way it stops being valid.
	CreateToken(user *entity.User) (string, error)

	// ValidateToken checks the signature and expiry of a token string and
	// returns its claims.
	ValidateToken(tokenString string) (*Claims, error)
}
