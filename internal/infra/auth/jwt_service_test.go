package auth

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/config"
	"taskdeck/internal/domain/entity"
)

const testSecret = "test-signing-secret-0123456789abcdef0123456789abcdef0123456789abcdef"

func newTestConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Token = secret

	return cfg
}

func TestJWTService_RejectsShortSecret(t *testing.T) {
	_, err := NewJWTService(newTestConfig("too-short"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 64 bytes")

	_, err = NewJWTService(newTestConfig(""))
	require.Error(t, err)

	// Exactly 64 bytes is accepted.
	_, err = NewJWTService(newTestConfig(strings.Repeat("a", 64)))
	require.NoError(t, err)
}

func TestJWTService_CreateAndValidateToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig(testSecret))
	require.NoError(t, err)

	user := &entity.User{
		ID:          42,
		DisplayName: "Ann",
		Email:       "ann@example.com",
	}

	before := time.Now()
	token, err := svc.CreateToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, strconv.FormatInt(user.ID, 10), claims.Subject)
	assert.Equal(t, user.Email, claims.Email)

	// Expiry is seven days after issuance.
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, before.Add(7*24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
	assert.Equal(t, 7*24*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig(testSecret))
	require.NoError(t, err)

	token, err := svc.CreateToken(&entity.User{ID: 1, Email: "ann@example.com"})
	require.NoError(t, err)

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.ValidateToken(tampered)
	assert.Error(t, err)
}

func TestJWTService_RejectsTokenFromOtherSecret(t *testing.T) {
	svcA, err := NewJWTService(newTestConfig(testSecret))
	require.NoError(t, err)
	svcB, err := NewJWTService(newTestConfig(strings.Repeat("b", 64)))
	require.NoError(t, err)

	token, err := svcA.CreateToken(&entity.User{ID: 1, Email: "ann@example.com"})
	require.NoError(t, err)

	_, err = svcB.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc, err := NewJWTService(newTestConfig(testSecret))
	require.NoError(t, err)

	_, err = svc.ValidateToken("clearly-not-a-jwt-token")
	assert.Error(t, err)
}
