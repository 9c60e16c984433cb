package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgAuth "github.com/lumierebeauty/lumiere-backend/pkg/auth"
	"github.com/lumierebeauty/lumiere-backend/pkg/config"
	"github.com/lumierebeauty/lumiere-backend/pkg/enums"
	"github.com/lumierebeauty/lumiere-backend/pkg/types"
)

var testJWT = config.JWTConfig{
	Secret:            "middleware-test-secret",
	Issuer:            "lumiere",
	ExpirationMinutes: 60,
}

func mintToken(t *testing.T, payload pkgAuth.AccessTokenPayload) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(testJWT, time.Now(), payload)
	require.NoError(t, err)
	return token
}

func echoPrincipal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal := PrincipalFromContext(r.Context())
		_ = json.NewEncoder(w).Encode(principal)
	}
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) types.ErrorBody {
	t.Helper()
	var body types.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestAuthMissingToken(t *testing.T) {
	handler := Auth(testJWT, nil)(echoPrincipal())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeErrorBody(t, rec)
	assert.Equal(t, "Access token required", body.Error)
	assert.Equal(t, "UNAUTHORIZED", body.Code)
}

func TestAuthInvalidTokenMatchesMissing(t *testing.T) {
	handler := Auth(testJWT, nil)(echoPrincipal())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeErrorBody(t, rec)
	assert.Equal(t, "Access token required", body.Error)
}

func TestAuthValidTokenSeedsPrincipal(t *testing.T) {
	handler := Auth(testJWT, nil)(echoPrincipal())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, pkgAuth.AccessTokenPayload{
		UserID: 7,
		Role:   enums.UserRoleUser,
		Email:  "shopper@example.com",
	}))
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var principal pkgAuth.Principal
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&principal))
	assert.Equal(t, uint(7), principal.UserID)
	assert.Equal(t, pkgAuth.PrincipalDatabaseUser, principal.Kind)
}

func TestOptionalAuthNoTokenIsAnonymous(t *testing.T) {
	handler := OptionalAuth(testJWT, nil)(echoPrincipal())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var principal pkgAuth.Principal
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&principal))
	assert.True(t, principal.IsZero())
}

func TestOptionalAuthPresentedInvalidTokenRejected(t *testing.T) {
	handler := OptionalAuth(testJWT, nil)(echoPrincipal())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminForbidsUsers(t *testing.T) {
	chain := Auth(testJWT, nil)(RequireAdmin(nil)(echoPrincipal()))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, pkgAuth.AccessTokenPayload{
		UserID: 7,
		Role:   enums.UserRoleUser,
	}))
	chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeErrorBody(t, rec)
	assert.Equal(t, "Admin access required", body.Error)
	assert.Equal(t, "FORBIDDEN", body.Code)
}

func TestRequireAdminAllowsAdmins(t *testing.T) {
	chain := Auth(testJWT, nil)(RequireAdmin(nil)(echoPrincipal()))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, pkgAuth.AccessTokenPayload{
		UserID: 1,
		Role:   enums.UserRoleAdmin,
	}))
	chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdminWithoutPrincipalIsUnauthorized(t *testing.T) {
	handler := RequireAdmin(nil)(echoPrincipal())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
