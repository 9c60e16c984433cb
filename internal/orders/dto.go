package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumierebeauty/lumiere-backend/pkg/db/models"
	dbtypes "github.com/lumierebeauty/lumiere-backend/pkg/db/types"
	"github.com/lumierebeauty/lumiere-backend/pkg/enums"
)

// OrderItemInput is the client-side snapshot of one line item. It is
// stored verbatim and never resolved against the products table.
type OrderItemInput struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"required,min=1"`
	Image    string  `json:"image"`
}

// CustomerInfoInput identifies the guest shopper at checkout. Ignored for
// authenticated checkouts, which link the order to the user instead.
type CustomerInfoInput struct {
	Name  string  `json:"name"`
	Email string  `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone"`
}

type CreateOrderInput struct {
	Items    []OrderItemInput   `json:"items" validate:"required,min=1,dive"`
	Shipping map[string]any     `json:"shipping"`
	Payment  map[string]any     `json:"payment"`
	Total    float64            `json:"total" validate:"required,gte=0"`
	Customer *CustomerInfoInput `json:"customer"`
	Notes    *string            `json:"notes"`
}

type UpdateOrderInput struct {
	Status   *string         `json:"status"`
	Notes    *string         `json:"notes"`
	Shipping *map[string]any `json:"shipping"`
	Payment  *map[string]any `json:"payment"`
}

type OrderItemResponse struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
}

type OrderResponse struct {
	ID          uint                `json:"id"`
	OrderNumber string              `json:"orderNumber"`
	UserID      *uint               `json:"userId,omitempty"`
	CustomerID  *uint               `json:"customerId,omitempty"`
	Items       []OrderItemResponse `json:"items"`
	Shipping    map[string]any      `json:"shipping,omitempty"`
	Payment     map[string]any      `json:"payment,omitempty"`
	Total       float64             `json:"total"`
	Status      enums.OrderStatus   `json:"status"`
	Notes       *string             `json:"notes,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

func toItemColumn(inputs []OrderItemInput) dbtypes.OrderItemList {
	out := make(dbtypes.OrderItemList, 0, len(inputs))
	for _, input := range inputs {
		out = append(out, dbtypes.OrderItem{
			ID:       input.ID,
			Name:     input.Name,
			Price:    decimal.NewFromFloat(input.Price),
			Quantity: input.Quantity,
			Image:    input.Image,
		})
	}
	return out
}

func toResponse(order *models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price.InexactFloat64(),
			Quantity: item.Quantity,
			Image:    item.Image,
		})
	}

	return OrderResponse{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		CustomerID:  order.CustomerID,
		Items:       items,
		Shipping:    order.Shipping,
		Payment:     order.Payment,
		Total:       order.Total.InexactFloat64(),
		Status:      order.Status,
		Notes:       order.Notes,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

func toResponses(rows []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toResponse(&rows[i]))
	}
	return out
}
