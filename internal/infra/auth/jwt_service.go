package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"taskdeck/config"
	"taskdeck/internal/domain/entity"
	"taskdeck/internal/domain/service"
)

// minSecretLength is the minimum length of the signing secret. Anything
// shorter is brute-forceable against HMAC-SHA512 signatures.
const minSecretLength = 64

// tokenTTL bounds the lifetime of every issued token. There is no revocation;
// expiry is the only way a token stops being valid.
const tokenTTL = 7 * 24 * time.Hour

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService is the constructor for jwtService. A missing or short secret
// is a configuration fault, so it fails here at startup rather than on the
// first request.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	secret := cfg.SecretKey.Token
	if len(secret) < minSecretLength {
		return nil, errors.Errorf("token signing secret must be at least %d bytes, got %d", minSecretLength, len(secret))
	}

	return &jwtService{
		secret: []byte(secret),
		ttl:    tokenTTL,
	}, nil
}

// CreateToken builds and signs a bearer token asserting the user's identity.
// The token is a pure function of the account, the secret, and the issue
// instant.
func (s *jwtService) CreateToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := service.Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// ValidateToken checks the signature and expiry of a token string and returns its claims.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token")
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	return claims, nil
}
