package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumierebeauty/lumiere-backend/internal/customers"
	pkgAuth "github.com/lumierebeauty/lumiere-backend/pkg/auth"
	"github.com/lumierebeauty/lumiere-backend/pkg/db"
	"github.com/lumierebeauty/lumiere-backend/pkg/db/models"
	dbtypes "github.com/lumierebeauty/lumiere-backend/pkg/db/types"
	"github.com/lumierebeauty/lumiere-backend/pkg/enums"
	pkgerrors "github.com/lumierebeauty/lumiere-backend/pkg/errors"
	"github.com/lumierebeauty/lumiere-backend/pkg/logger"
)

// Service exposes checkout and back-office order operations.
type Service interface {
	List(ctx context.Context) ([]OrderResponse, error)
	ListByUser(ctx context.Context, userID uint) ([]OrderResponse, error)
	Get(ctx context.Context, id uint) (*OrderResponse, error)
	Create(ctx context.Context, actor pkgAuth.Principal, input CreateOrderInput) (*OrderResponse, error)
	Update(ctx context.Context, id uint, input UpdateOrderInput) (*OrderResponse, error)
	Delete(ctx context.Context, id uint) error
}

// ServiceParams wires the service dependencies.
type ServiceParams struct {
	Repo      Repo
	Customers customers.Service
	Logger    *logger.Logger
	Now       func() time.Time
}

type service struct {
	repo      Repo
	customers customers.Service
	logg      *logger.Logger
	now       func() time.Time
}

// NewService validates dependencies and builds the order service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders: repo is required")
	}
	if params.Customers == nil {
		return nil, fmt.Errorf("orders: customers service is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("orders: logger is required")
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &service{
		repo:      params.Repo,
		customers: params.Customers,
		logg:      params.Logger,
		now:       params.Now,
	}, nil
}

func (s *service) List(ctx context.Context) ([]OrderResponse, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	return toResponses(rows), nil
}

func (s *service) ListByUser(ctx context.Context, userID uint) ([]OrderResponse, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing user orders")
	}
	return toResponses(rows), nil
}

func (s *service) Get(ctx context.Context, id uint) (*OrderResponse, error) {
	row, err := s.repo.Get(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching order")
	}
	resp := toResponse(row)
	return &resp, nil
}

// Create places an order for a guest or a signed-in shopper. Items,
// shipping, payment and total are stored as submitted; the server never
// recomputes the total from the items.
func (s *service) Create(ctx context.Context, actor pkgAuth.Principal, input CreateOrderInput) (*OrderResponse, error) {
	orderNumber, err := NewOrderNumber(s.now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
	}

	order := &models.Order{
		OrderNumber: orderNumber,
		Items:       toItemColumn(input.Items),
		Shipping:    dbtypes.JSONMap(input.Shipping),
		Payment:     dbtypes.JSONMap(input.Payment),
		Total:       decimal.NewFromFloat(input.Total),
		Status:      enums.OrderStatusPending,
		Notes:       input.Notes,
	}

	switch {
	case actor.Kind == pkgAuth.PrincipalDatabaseUser:
		userID := actor.UserID
		order.UserID = &userID
	case input.Customer != nil && input.Customer.Email != "":
		customer, err := s.customers.FindOrCreate(ctx, customers.CreateCustomerInput{
			Name:    guestName(input.Customer),
			Email:   input.Customer.Email,
			Phone:   input.Customer.Phone,
			Address: input.Shipping,
		})
		if err != nil {
			return nil, err
		}
		customerID := customer.ID
		order.CustomerID = &customerID
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	}), "order.created")

	resp := toResponse(order)
	return &resp, nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateOrderInput) (*OrderResponse, error) {
	changes := map[string]any{}
	if input.Status != nil {
		status, err := enums.ParseOrderStatus(*input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
				WithDetails(map[string]string{"status": err.Error()})
		}
		changes["status"] = status
	}
	if input.Notes != nil {
		changes["notes"] = *input.Notes
	}
	if input.Shipping != nil {
		changes["shipping"] = dbtypes.JSONMap(*input.Shipping)
	}
	if input.Payment != nil {
		changes["payment"] = dbtypes.JSONMap(*input.Payment)
	}

	if len(changes) == 0 {
		return s.Get(ctx, id)
	}

	row, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order")
	}

	resp := toResponse(row)
	return &resp, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting order")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Order not found")
	}

	s.logg.Info(s.logg.WithField(ctx, "order_id", id), "order.deleted")
	return nil
}

func guestName(info *CustomerInfoInput) string {
	if info.Name != "" {
		return info.Name
	}
	return "Guest"
}
