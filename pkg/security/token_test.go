package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcsonSantos/lu-estilo/pkg/config"
)

func newTestTokenManager(accessTTL, refreshTTL time.Duration) *TokenManager {
	return NewTokenManager(&config.JWTConfig{
		SigningKey:      "test-signing-key",
		Issuer:          "lu-estilo-test",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: refreshTTL,
	})
}

func TestTokenManager_AccessTokenRoundTrip(t *testing.T) {
	manager := newTestTokenManager(15*time.Minute, 7*24*time.Hour)

	token, err := manager.GenerateAccessToken("a@b.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "a@b.com", claims.Subject)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, "lu-estilo-test", claims.Issuer)
}

func TestTokenManager_ExpiredTokenFails(t *testing.T) {
	manager := newTestTokenManager(-1*time.Minute, 7*24*time.Hour)

	token, err := manager.GenerateAccessToken("a@b.com")
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
	// Expiry is still an invalid token to callers that do not distinguish.
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_TamperedTokenFails(t *testing.T) {
	manager := newTestTokenManager(15*time.Minute, 7*24*time.Hour)

	token, err := manager.GenerateAccessToken("a@b.com")
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = manager.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongSigningKeyFails(t *testing.T) {
	manager := newTestTokenManager(15*time.Minute, 7*24*time.Hour)
	other := NewTokenManager(&config.JWTConfig{
		SigningKey:      "a-different-key",
		Issuer:          "lu-estilo-test",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	})

	token, err := manager.GenerateAccessToken("a@b.com")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_TokenTypeIsEnforced(t *testing.T) {
	manager := newTestTokenManager(15*time.Minute, 7*24*time.Hour)

	access, err := manager.GenerateAccessToken("a@b.com")
	require.NoError(t, err)
	refresh, err := manager.GenerateRefreshToken("a@b.com")
	require.NoError(t, err)

	// A refresh token must not pass as an access token and vice versa.
	_, err = manager.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = manager.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims, err := manager.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.TokenType)
}
