package franchise

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lumierebeauty/lumiere-backend/pkg/db"
	"github.com/lumierebeauty/lumiere-backend/pkg/db/models"
	"github.com/lumierebeauty/lumiere-backend/pkg/enums"
	pkgerrors "github.com/lumierebeauty/lumiere-backend/pkg/errors"
	"github.com/lumierebeauty/lumiere-backend/pkg/logger"
)

// Service exposes franchise application operations.
type Service interface {
	List(ctx context.Context) ([]ApplicationResponse, error)
	Get(ctx context.Context, id uint) (*ApplicationResponse, error)
	Create(ctx context.Context, input CreateApplicationInput) (*ApplicationResponse, error)
	Update(ctx context.Context, id uint, input UpdateApplicationInput) (*ApplicationResponse, error)
	Delete(ctx context.Context, id uint) error
}

// ServiceParams wires the service dependencies.
type ServiceParams struct {
	Repo   Repo
	Logger *logger.Logger
	Now    func() time.Time
}

type service struct {
	repo Repo
	logg *logger.Logger
	now  func() time.Time
}

// NewService validates dependencies and builds the franchise service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("franchise: repo is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("franchise: logger is required")
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &service{repo: params.Repo, logg: params.Logger, now: params.Now}, nil
}

func (s *service) List(ctx context.Context) ([]ApplicationResponse, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing franchise applications")
	}
	return toResponses(rows), nil
}

func (s *service) Get(ctx context.Context, id uint) (*ApplicationResponse, error) {
	row, err := s.repo.Get(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Application not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching franchise application")
	}
	resp := toResponse(row)
	return &resp, nil
}

func (s *service) Create(ctx context.Context, input CreateApplicationInput) (*ApplicationResponse, error) {
	app := &models.FranchiseApplication{
		Name:            input.Name,
		Email:           strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:           input.Phone,
		City:            input.City,
		InvestmentRange: input.InvestmentRange,
		Experience:      input.Experience,
		Message:         input.Message,
		Status:          enums.FranchiseStatusPending,
		Date:            s.now(),
	}

	if err := s.repo.Create(ctx, app); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating franchise application")
	}

	s.logg.Info(s.logg.WithField(ctx, "application_id", app.ID), "franchise.application.created")

	resp := toResponse(app)
	return &resp, nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateApplicationInput) (*ApplicationResponse, error) {
	changes := map[string]any{}
	if input.Status != nil {
		status, err := enums.ParseFranchiseStatus(*input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid application status").
				WithDetails(map[string]string{"status": err.Error()})
		}
		changes["status"] = status
	}
	if input.Notes != nil {
		changes["notes"] = *input.Notes
	}

	if len(changes) == 0 {
		return s.Get(ctx, id)
	}

	row, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Application not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating franchise application")
	}

	resp := toResponse(row)
	return &resp, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting franchise application")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Application not found")
	}

	s.logg.Info(s.logg.WithField(ctx, "application_id", id), "franchise.application.deleted")
	return nil
}
