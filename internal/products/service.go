package products

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

// Service exposes catalog product operations.
type Service interface {
	List(ctx context.Context) ([]ProductResponse, error)
	Get(ctx context.Context, id uint) (*ProductResponse, error)
	Create(ctx context.Context, input CreateProductInput) (*ProductResponse, error)
	Update(ctx context.Context, id uint, input UpdateProductInput) (*ProductResponse, error)
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

// NewService validates dependencies and builds the product service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("products: repo is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("products: logger is required")
	}
	return &service{repo: params.Repo, logg: params.Logger}, nil
}

func (s *service) List(ctx context.Context) ([]ProductResponse, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	return toResponses(rows), nil
}

func (s *service) Get(ctx context.Context, id uint) (*ProductResponse, error) {
	row, err := s.repo.Get(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching product")
	}
	resp := toResponse(row)
	return &resp, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductResponse, error) {
	product := &models.Product{
		Name:        input.Name,
		Category:    input.Category,
		Price:       decimal.NewFromFloat(input.Price),
		Image:       input.Image,
		Images:      dbtypes.StringList(input.Images),
		Rating:      defaultRating,
		Description: input.Description,
	}
	if input.Rating != nil {
		product.Rating = *input.Rating
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
	}

	s.logg.Info(s.logg.WithField(ctx, "product_id", product.ID), "product.created")

	resp := toResponse(product)
	return &resp, nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateProductInput) (*ProductResponse, error) {
	changes := input.changes()
	if len(changes) == 0 {
		return s.Get(ctx, id)
	}

	row, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating product")
	}

	resp := toResponse(row)
	return &resp, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting product")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
	}

	s.logg.Info(s.logg.WithField(ctx, "product_id", id), "product.deleted")
	return nil
}
