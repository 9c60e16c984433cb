package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumierebeauty/lumiere-backend/pkg/config"
	"github.com/lumierebeauty/lumiere-backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "lumiere",
		ExpirationMinutes: 1440,
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	cfg := testJWTConfig()

	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID: 42,
		Role:   enums.UserRoleUser,
		Email:  "shopper@example.com",
	})
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, token)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, enums.UserRoleUser, claims.Role)
	assert.Equal(t, "shopper@example.com", claims.Email)
	assert.False(t, claims.System)

	principal := claims.Principal()
	assert.Equal(t, PrincipalDatabaseUser, principal.Kind)
	assert.False(t, principal.IsAdmin())
}

func TestOperatorTokenYieldsSystemPrincipal(t *testing.T) {
	cfg := testJWTConfig()

	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID: 0,
		Role:   enums.UserRoleAdmin,
		Email:  "ops@example.com",
		System: true,
	})
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, token)
	require.NoError(t, err)

	principal := claims.Principal()
	assert.Equal(t, PrincipalSystemAdmin, principal.Kind)
	assert.Equal(t, uint(0), principal.UserID)
	assert.True(t, principal.IsAdmin())
	assert.True(t, principal.IsSystem())
}

func TestExpiredTokenRejected(t *testing.T) {
	cfg := testJWTConfig()

	issued := time.Now().Add(-25 * time.Hour)
	token, err := MintAccessToken(cfg, issued, AccessTokenPayload{
		UserID: 1,
		Role:   enums.UserRoleUser,
	})
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, token)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	cfg := testJWTConfig()

	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID: 1,
		Role:   enums.UserRoleUser,
	})
	require.NoError(t, err)

	other := cfg
	other.Secret = "different-secret"
	_, err = ParseAccessToken(other, token)
	assert.Error(t, err)
}

func TestWrongIssuerRejected(t *testing.T) {
	minting := testJWTConfig()
	minting.Issuer = "someone-else"

	token, err := MintAccessToken(minting, time.Now(), AccessTokenPayload{
		UserID: 1,
		Role:   enums.UserRoleUser,
	})
	require.NoError(t, err)

	_, err = ParseAccessToken(testJWTConfig(), token)
	assert.Error(t, err)
}

func TestInvalidRoleRejectedAtMint(t *testing.T) {
	_, err := MintAccessToken(testJWTConfig(), time.Now(), AccessTokenPayload{
		UserID: 1,
		Role:   enums.UserRole("superuser"),
	})
	assert.Error(t, err)
}
