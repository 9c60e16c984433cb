package middleware

import (
	"net/http"

	"github.com/lumierebeauty/lumiere-backend/api/responses"
	"github.com/lumierebeauty/lumiere-backend/pkg/enums"
	pkgerrors "github.com/lumierebeauty/lumiere-backend/pkg/errors"
	"github.com/lumierebeauty/lumiere-backend/pkg/logger"
)

// RequireRole rejects requests whose principal does not carry one of the
// allowed roles. Must run after Auth in the chain.
func RequireRole(logg *logger.Logger, allowed ...enums.UserRole) func(http.Handler) http.Handler {
	allowedSet := map[enums.UserRole]struct{}{}
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := PrincipalFromContext(r.Context())
			if principal.IsZero() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Access token required"))
				return
			}

			if _, ok := allowedSet[principal.Role]; !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "Admin access required"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is the common guard for back-office routes.
func RequireAdmin(logg *logger.Logger) func(http.Handler) http.Handler {
	return RequireRole(logg, enums.UserRoleAdmin)
}
