package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() JWTConfig {
	return JWTConfig{
		Secret:   []byte("test-secret-key-0123456789"),
		TokenTTL: time.Hour,
	}
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	cfg := testJWTConfig()

	token, expiresAt, err := GenerateAccessToken(cfg, "octocat")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ValidateAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "octocat", claims.Username)
	assert.Equal(t, DefaultIssuer, claims.Issuer)
}

func TestGenerateAccessToken_EmptyUsername(t *testing.T) {
	_, _, err := GenerateAccessToken(testJWTConfig(), "")
	assert.Error(t, err)
}

func TestValidateAccessToken_Invalid(t *testing.T) {
	cfg := testJWTConfig()
	token, _, err := GenerateAccessToken(cfg, "octocat")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other := cfg
		other.Secret = []byte("another-secret-key-987654")
		_, err := ValidateAccessToken(other, token)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := cfg
		other.Issuer = "someone-else"
		_, err := ValidateAccessToken(other, token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		expiredCfg := cfg
		expiredCfg.TokenTTL = -time.Minute
		expired, _, err := GenerateAccessToken(expiredCfg, "octocat")
		require.NoError(t, err)
		_, err = ValidateAccessToken(cfg, expired)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ValidateAccessToken(cfg, "not-a-jwt")
		assert.Error(t, err)
	})
}
