package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/lumierebeauty/lumiere-backend/api/responses"
	pkgAuth "github.com/lumierebeauty/lumiere-backend/pkg/auth"
	"github.com/lumierebeauty/lumiere-backend/pkg/config"
	pkgerrors "github.com/lumierebeauty/lumiere-backend/pkg/errors"
	"github.com/lumierebeauty/lumiere-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the
// caller's principal. Missing, malformed, expired and badly signed tokens
// are all rejected with the same 401.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Access token required"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "Access token required"))
				return
			}

			next.ServeHTTP(w, r.WithContext(seedContext(r, claims.Principal(), logg)))
		})
	}
}

// OptionalAuth attaches a principal when a valid bearer token is present
// and lets the request proceed as anonymous otherwise. Used on routes like
// checkout where guests and signed-in shoppers share one endpoint.
func OptionalAuth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				// A presented-but-invalid token is still a rejection, not
				// a silent downgrade to anonymous.
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "Access token required"))
				return
			}

			next.ServeHTTP(w, r.WithContext(seedContext(r, claims.Principal(), logg)))
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}

func seedContext(r *http.Request, principal pkgAuth.Principal, logg *logger.Logger) context.Context {
	ctx := WithPrincipal(r.Context(), principal)
	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{
			"user_id":    principal.UserID,
			"actor_role": string(principal.Role),
		})
	}
	return ctx
}
