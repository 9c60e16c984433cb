package models

import (
	"time"

	"github.com/shopspring/decimal"

	dbtypes "github.com/lumierebeauty/lumiere-backend/pkg/db/types"
)

// Product represents a catalog listing.
type Product struct {
	ID          uint               `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string             `gorm:"column:name;not null"`
	Category    string             `gorm:"column:category;not null"`
	Price       decimal.Decimal    `gorm:"column:price;type:numeric(12,2);not null"`
	Image       string             `gorm:"column:image;not null;default:''"`
	Images      dbtypes.StringList `gorm:"column:images;type:jsonb"`
	Rating      int                `gorm:"column:rating;not null;default:5"`
	Featured    bool               `gorm:"column:featured;not null;default:false"`
	Description string             `gorm:"column:description;not null;default:''"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
