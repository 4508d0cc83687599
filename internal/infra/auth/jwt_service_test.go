package auth

import (
	"encoding/base64"
	"testing"
	"time"

	"taskbox/config"
	"taskbox/internal/domain/entity"
	domainerrors "taskbox/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTConfig(secret string, ttl time.Duration) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{TokenTTL: ttl},
	}
	cfg.SecretKey.Token = secret

	return cfg
}

func testSecret() string {
	return base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(newJWTConfig("", time.Hour))

	require.Error(t, err)
}

func TestNewJWTService_RejectsInvalidBase64(t *testing.T) {
	_, err := NewJWTService(newJWTConfig("not-valid-base64!!!", time.Hour))

	require.Error(t, err)
}

func TestJWTService_IssueAndDecode(t *testing.T) {
	svc, err := NewJWTService(newJWTConfig(testSecret(), time.Hour))
	require.NoError(t, err)

	user := &entity.User{ID: 42, Username: "alice", Email: "alice@example.com"}

	token, err := svc.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_DecodeExpiredToken(t *testing.T) {
	svc, err := NewJWTService(newJWTConfig(testSecret(), time.Millisecond))
	require.NoError(t, err)

	token, err := svc.Issue(&entity.User{ID: 42, Username: "alice"})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	claims, err := svc.Decode(token)
	require.Error(t, err)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestJWTService_DecodeTamperedToken(t *testing.T) {
	issuer, err := NewJWTService(newJWTConfig(testSecret(), time.Hour))
	require.NoError(t, err)

	otherSecret := base64.StdEncoding.EncodeToString([]byte("fedcba9876543210fedcba9876543210"))
	verifier, err := NewJWTService(newJWTConfig(otherSecret, time.Hour))
	require.NoError(t, err)

	token, err := issuer.Issue(&entity.User{ID: 42, Username: "alice"})
	require.NoError(t, err)

	claims, err := verifier.Decode(token)
	require.Error(t, err)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestJWTService_DecodeGarbage(t *testing.T) {
	svc, err := NewJWTService(newJWTConfig(testSecret(), time.Hour))
	require.NoError(t, err)

	claims, err := svc.Decode("definitely.not.a-jwt")
	require.Error(t, err)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestJWTService_TTL(t *testing.T) {
	svc, err := NewJWTService(newJWTConfig(testSecret(), 30*time.Minute))
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, svc.TTL())
}

func TestJWTService_DefaultTTL(t *testing.T) {
	svc, err := NewJWTService(newJWTConfig(testSecret(), 0))
	require.NoError(t, err)

	assert.Equal(t, time.Hour, svc.TTL())
}
