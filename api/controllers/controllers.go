package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/lumierebeauty/lumiere-backend/pkg/errors"
)

func pathID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid id").
			WithDetails(map[string]string{"id": "must be a positive integer"})
	}
	return uint(id), nil
}
