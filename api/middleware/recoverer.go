package middleware

import (
	"fmt"
	"net/http"

	"github.com/lumierebeauty/lumiere-backend/api/responses"
	pkgerrors "github.com/lumierebeauty/lumiere-backend/pkg/errors"
	"github.com/lumierebeauty/lumiere-backend/pkg/logger"
)

// Recoverer converts handler panics into a 500 response instead of tearing
// down the connection.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if recovered := recover(); recovered != nil {
					if recovered == http.ErrAbortHandler {
						panic(recovered)
					}

					err := pkgerrors.Wrap(
						pkgerrors.CodeInternal,
						fmt.Errorf("panic: %v", recovered),
						"unexpected error",
					)
					responses.WriteError(r.Context(), logg, w, err)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
