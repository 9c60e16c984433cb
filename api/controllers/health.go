package controllers

import (
	"net/http"

	"github.com/lumierebeauty/lumiere-backend/api/responses"
	"github.com/lumierebeauty/lumiere-backend/pkg/db"
	pkgerrors "github.com/lumierebeauty/lumiere-backend/pkg/errors"
	"github.com/lumierebeauty/lumiere-backend/pkg/logger"
	"github.com/lumierebeauty/lumiere-backend/pkg/redis"
)

// Liveness reports that the process is serving requests.
func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// Readiness verifies the datastore (and redis, when configured) before
// reporting ready.
func Readiness(database db.Pinger, cache redis.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := database.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
			return
		}

		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
