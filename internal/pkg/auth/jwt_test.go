// internal/pkg/auth/jwt_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/fertilizer-backend/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "fertilizer-backend-test"
	cfg.JWT.Secret = "test-secret-key-that-is-long-enough-0"
	cfg.JWT.AccessTokenExpiry = time.Hour
	cfg.JWT.RefreshTokenExpiry = 24 * time.Hour
	cfg.Security.BcryptCost = 4
	return cfg
}

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager(testConfig())

	token, err := manager.GenerateAccessToken(42, "staff@example.com", "manager")
	require.NoError(t, err)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "staff@example.com", claims.Email)
	assert.Equal(t, "manager", claims.Role)
	assert.Equal(t, "access", claims.TokenType)
}

func TestRefreshTokenCarriesNoRole(t *testing.T) {
	manager := NewJWTManager(testConfig())

	token, err := manager.GenerateRefreshToken(42, "staff@example.com")
	require.NoError(t, err)

	claims, err := manager.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Empty(t, claims.Role)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestTokenTypeMismatchRejected(t *testing.T) {
	manager := NewJWTManager(testConfig())

	access, err := manager.GenerateAccessToken(1, "a@example.com", "staff")
	require.NoError(t, err)
	refresh, err := manager.GenerateRefreshToken(1, "a@example.com")
	require.NoError(t, err)

	_, err = manager.ValidateRefreshToken(access)
	assert.Error(t, err)

	_, err = manager.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestTokenFromAnotherSecretRejected(t *testing.T) {
	manager := NewJWTManager(testConfig())

	otherCfg := testConfig()
	otherCfg.JWT.Secret = "another-secret-key-that-is-long-enough"
	other := NewJWTManager(otherCfg)

	token, err := other.GenerateAccessToken(1, "a@example.com", "staff")
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	cfg := testConfig()
	cfg.JWT.AccessTokenExpiry = -time.Minute
	manager := NewJWTManager(cfg)

	token, err := manager.GenerateAccessToken(1, "a@example.com", "staff")
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc.def.ghi", ExtractTokenFromHeader("Bearer abc.def.ghi"))
	assert.Empty(t, ExtractTokenFromHeader("abc.def.ghi"))
	assert.Empty(t, ExtractTokenFromHeader(""))
	assert.Empty(t, ExtractTokenFromHeader("Bearer "))
}
