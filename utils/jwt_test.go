package utils

import (
	"testing"

	"github.com/Nerfise/bossing/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret", JWTExpiry: "1h"}

	token, err := GenerateToken(42, "juan@example.com", "customer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "juan@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret", JWTExpiry: "1h"}
	token, err := GenerateToken(1, "a@b.c", "customer")
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "different-secret"
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	ok, err := VerifyPassword(hash, "s3cret-pass")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = VerifyPassword(hash, "wrong-pass")
	assert.False(t, ok)
}
