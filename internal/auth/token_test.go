package auth_test

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/planner-service/internal/auth"
	"github.com/spec-kit/planner-service/internal/config"
)

const testSecret = "test-secret-key"

func TestGenerateAndParseToken(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)

	token, expiresAt, err := tm.GenerateToken("user-123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := tm.ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
}

func TestGenerateToken_TTLFromConfig(t *testing.T) {
	cfg := config.AuthConfig{AccessTokenTTLMinutes: 2}
	tm := auth.NewTokenManager(testSecret, cfg.AccessTokenTTL())

	_, expiresAt, err := tm.GenerateToken("user-123")
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(2*time.Minute), expiresAt, 5*time.Second)

	cfg = config.AuthConfig{}
	tm = auth.NewTokenManager(testSecret, cfg.AccessTokenTTL())

	_, expiresAt, err = tm.GenerateToken("user-123")
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)
}

func TestParseToken_Garbage(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)

	_, err := tm.ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)

	claims := jwt.RegisteredClaims{
		Subject:   "user-123",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)

	_, err = tm.ParseToken(expired)
	assert.Error(t, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	issuer := auth.NewTokenManager("other-secret", time.Hour)
	token, _, err := issuer.GenerateToken("user-123")
	assert.NoError(t, err)

	tm := auth.NewTokenManager(testSecret, time.Hour)
	_, err = tm.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_WrongSigningMethod(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "user-123",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)

	tm := auth.NewTokenManager(testSecret, time.Hour)
	_, err = tm.ParseToken(signed)
	assert.Error(t, err)
}

func TestParseToken_MissingSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)

	tm := auth.NewTokenManager(testSecret, time.Hour)
	_, err = tm.ParseToken(signed)
	assert.Error(t, err)
}
