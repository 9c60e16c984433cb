package models

import (
	"time"

	dbtypes "github.com/lumierebeauty/lumiere-backend/pkg/db/types"
)

// Customer is a checkout contact record. It is created implicitly during
// guest checkout or explicitly by the back-office, and is not linked to a
// User unless the order was placed while authenticated.
type Customer struct {
	ID        uint            `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string          `gorm:"column:name;not null"`
	Email     string          `gorm:"column:email;type:text;not null;uniqueIndex:idx_customers_email"`
	Phone     *string         `gorm:"column:phone"`
	Address   dbtypes.JSONMap `gorm:"column:address;type:jsonb"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
