package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traintrack/traintrack-api/internal/config"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService(config.AuthConfig{JWTSecret: "test-secret", ExpirationHours: 1})

	token, err := svc.GenerateToken("guest_abc12345")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "guest_abc12345", claims.UserID)
	assert.Equal(t, "guest_abc12345", claims.GetUserID())
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService(config.AuthConfig{JWTSecret: "secret-a", ExpirationHours: 1})
	verifier := NewJWTService(config.AuthConfig{JWTSecret: "secret-b", ExpirationHours: 1})

	token, err := issuer.GenerateToken("guest_abc12345")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := NewJWTService(config.AuthConfig{JWTSecret: "test-secret", ExpirationHours: -1})

	token, err := svc.GenerateToken("guest_abc12345")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsMalformedToken(t *testing.T) {
	svc := NewJWTService(config.AuthConfig{JWTSecret: "test-secret", ExpirationHours: 1})

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
