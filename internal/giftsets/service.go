package giftsets

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lumierebeauty/lumiere-backend/pkg/db"
	"github.com/lumierebeauty/lumiere-backend/pkg/db/models"
	dbtypes "github.com/lumierebeauty/lumiere-backend/pkg/db/types"
	pkgerrors "github.com/lumierebeauty/lumiere-backend/pkg/errors"
	"github.com/lumierebeauty/lumiere-backend/pkg/logger"
)

const defaultRating = 5

// Service exposes gift set operations.
type Service interface {
	List(ctx context.Context) ([]GiftSetResponse, error)
	Get(ctx context.Context, id uint) (*GiftSetResponse, error)
	Create(ctx context.Context, input CreateGiftSetInput) (*GiftSetResponse, error)
	Update(ctx context.Context, id uint, input UpdateGiftSetInput) (*GiftSetResponse, error)
	Delete(ctx context.Context, id uint) error
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

// NewService validates dependencies and builds the gift set service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("giftsets: repo is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("giftsets: logger is required")
	}
	return &service{repo: params.Repo, logg: params.Logger}, nil
}

func (s *service) List(ctx context.Context) ([]GiftSetResponse, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing gift sets")
	}
	return toResponses(rows), nil
}

func (s *service) Get(ctx context.Context, id uint) (*GiftSetResponse, error) {
	row, err := s.repo.Get(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Gift set not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching gift set")
	}
	resp := toResponse(row)
	return &resp, nil
}

func (s *service) Create(ctx context.Context, input CreateGiftSetInput) (*GiftSetResponse, error) {
	set := &models.GiftSet{
		Name:        input.Name,
		Category:    input.Category,
		Price:       decimal.NewFromFloat(input.Price),
		Image:       input.Image,
		Images:      dbtypes.StringList(input.Images),
		Rating:      defaultRating,
		Description: input.Description,
		Products:    toSummaryColumn(input.Products),
		InStock:     true,
		StockCount:  input.StockCount,
	}
	if input.OriginalPrice != nil {
		original := decimal.NewFromFloat(*input.OriginalPrice)
		set.OriginalPrice = &original
	}
	if input.Rating != nil {
		set.Rating = *input.Rating
	}
	if input.Featured != nil {
		set.Featured = *input.Featured
	}
	if input.InStock != nil {
		set.InStock = *input.InStock
	}

	if err := s.repo.Create(ctx, set); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating gift set")
	}

	s.logg.Info(s.logg.WithField(ctx, "gift_set_id", set.ID), "gift_set.created")

	resp := toResponse(set)
	return &resp, nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateGiftSetInput) (*GiftSetResponse, error) {
	changes := input.changes()
	if len(changes) == 0 {
		return s.Get(ctx, id)
	}

	row, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Gift set not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating gift set")
	}

	resp := toResponse(row)
	return &resp, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting gift set")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Gift set not found")
	}

	s.logg.Info(s.logg.WithField(ctx, "gift_set_id", id), "gift_set.deleted")
	return nil
}
