package models

import (
	"time"

	"github.com/shopspring/decimal"

	dbtypes "github.com/lumierebeauty/lumiere-backend/pkg/db/types"
	"github.com/lumierebeauty/lumiere-backend/pkg/enums"
)

// Order holds a placed checkout. Items, Shipping and Payment are owned
// snapshots taken at checkout time. Total is the client-submitted figure
// stored verbatim; the server never recomputes it from the items.
type Order struct {
	ID          uint                  `gorm:"column:id;primaryKey;autoIncrement"`
	OrderNumber string                `gorm:"column:order_number;not null;index:idx_orders_number"`
	UserID      *uint                 `gorm:"column:user_id;index:idx_orders_user"`
	CustomerID  *uint                 `gorm:"column:customer_id"`
	Items       dbtypes.OrderItemList `gorm:"column:items;type:jsonb;not null"`
	Shipping    dbtypes.JSONMap       `gorm:"column:shipping;type:jsonb"`
	Payment     dbtypes.JSONMap       `gorm:"column:payment;type:jsonb"`
	Total       decimal.Decimal       `gorm:"column:total;type:numeric(12,2);not null"`
	Status      enums.OrderStatus     `gorm:"column:status;not null;default:Pending"`
	Notes       *string               `gorm:"column:notes"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
