package customers

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumierebeauty/lumiere-backend/pkg/db"
	"github.com/lumierebeauty/lumiere-backend/pkg/db/models"
	dbtypes "github.com/lumierebeauty/lumiere-backend/pkg/db/types"
	pkgerrors "github.com/lumierebeauty/lumiere-backend/pkg/errors"
	"github.com/lumierebeauty/lumiere-backend/pkg/logger"
)

const emailUniqueIndex = "idx_customers_email"

// Service exposes customer operations.
type Service interface {
	List(ctx context.Context) ([]CustomerResponse, error)
	Get(ctx context.Context, id uint) (*CustomerResponse, error)
	Create(ctx context.Context, input CreateCustomerInput) (*CustomerResponse, error)
	Update(ctx context.Context, id uint, input UpdateCustomerInput) (*CustomerResponse, error)
	Delete(ctx context.Context, id uint) error
	FindOrCreate(ctx context.Context, input CreateCustomerInput) (*CustomerResponse, error)
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

// NewService validates dependencies and builds the customer service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("customers: repo is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("customers: logger is required")
	}
	return &service{repo: params.Repo, logg: params.Logger}, nil
}

func (s *service) List(ctx context.Context) ([]CustomerResponse, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing customers")
	}
	return toResponses(rows), nil
}

func (s *service) Get(ctx context.Context, id uint) (*CustomerResponse, error) {
	row, err := s.repo.Get(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching customer")
	}
	resp := toResponse(row)
	return &resp, nil
}

func (s *service) Create(ctx context.Context, input CreateCustomerInput) (*CustomerResponse, error) {
	customer := &models.Customer{
		Name:    input.Name,
		Email:   normalizeEmail(input.Email),
		Phone:   input.Phone,
		Address: dbtypes.JSONMap(input.Address),
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		if db.IsUniqueViolation(err, emailUniqueIndex) {
			return nil, pkgerrors.New(pkgerrors.CodeDuplicateEmail, "email is already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating customer")
	}

	s.logg.Info(s.logg.WithField(ctx, "customer_id", customer.ID), "customer.created")

	resp := toResponse(customer)
	return &resp, nil
}

// FindOrCreate backs guest checkout: an existing customer with the same
// email is reused rather than rejected as a duplicate.
func (s *service) FindOrCreate(ctx context.Context, input CreateCustomerInput) (*CustomerResponse, error) {
	email := normalizeEmail(input.Email)

	existing, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		resp := toResponse(existing)
		return &resp, nil
	}
	if !db.IsNotFound(err) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up customer")
	}

	created, err := s.Create(ctx, input)
	if err != nil {
		// A concurrent checkout may have inserted the same email first.
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeDuplicateEmail {
			row, lookupErr := s.repo.GetByEmail(ctx, email)
			if lookupErr != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, lookupErr, "looking up customer")
			}
			resp := toResponse(row)
			return &resp, nil
		}
		return nil, err
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateCustomerInput) (*CustomerResponse, error) {
	changes := input.changes()
	if len(changes) == 0 {
		return s.Get(ctx, id)
	}

	row, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Customer not found")
		}
		if db.IsUniqueViolation(err, emailUniqueIndex) {
			return nil, pkgerrors.New(pkgerrors.CodeDuplicateEmail, "email is already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating customer")
	}

	resp := toResponse(row)
	return &resp, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting customer")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Customer not found")
	}

	s.logg.Info(s.logg.WithField(ctx, "customer_id", id), "customer.deleted")
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
