package settings

import (
	"context"
	"fmt"

	"github.com/lumierebeauty/lumiere-backend/pkg/db/models"
	pkgerrors "github.com/lumierebeauty/lumiere-backend/pkg/errors"
	"github.com/lumierebeauty/lumiere-backend/pkg/logger"
)

// Defaults returned when a key has no stored row.
var defaultSettings = map[string]string{
	"storeName": "Lumière",
	"email":     "hello@lumierebeauty.com",
	"phone":     "+1 (800) 555-0199",
}

// Service exposes the store settings key/value surface.
type Service interface {
	Get(ctx context.Context) (map[string]string, error)
	Update(ctx context.Context, values map[string]string) (map[string]string, error)
}

// ServiceParams wires the service dependencies.
type ServiceParams struct {
	Repo   Repo
	Logger *logger.Logger
}

type service struct {
	repo Repo
	logg *logger.Logger
}

// NewService validates dependencies and builds the settings service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("settings: repo is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("settings: logger is required")
	}
	return &service{repo: params.Repo, logg: params.Logger}, nil
}

// Get merges stored rows over the hardcoded defaults.
func (s *service) Get(ctx context.Context) (map[string]string, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading settings")
	}

	merged := make(map[string]string, len(defaultSettings)+len(rows))
	for key, value := range defaultSettings {
		merged[key] = value
	}
	for _, row := range rows {
		merged[row.Key] = row.Value
	}
	return merged, nil
}

// Update upserts each provided key and returns the merged view.
func (s *service) Update(ctx context.Context, values map[string]string) (map[string]string, error) {
	if len(values) == 0 {
		return s.Get(ctx)
	}

	rows := make([]models.Setting, 0, len(values))
	for key, value := range values {
		if key == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "setting keys cannot be empty")
		}
		rows = append(rows, models.Setting{Key: key, Value: value})
	}

	if err := s.repo.Upsert(ctx, rows); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving settings")
	}

	s.logg.Info(s.logg.WithField(ctx, "settings_keys", len(rows)), "settings.updated")
	return s.Get(ctx)
}
