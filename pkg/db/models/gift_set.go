package models

import (
	"time"

	"github.com/shopspring/decimal"

	dbtypes "github.com/lumierebeauty/lumiere-backend/pkg/db/types"
)

// GiftSet is a curated bundle. Products holds denormalized member
// summaries, not foreign keys: already-published sets keep their contents
// even when a member product is edited or deleted.
type GiftSet struct {
	ID            uint                       `gorm:"column:id;primaryKey;autoIncrement"`
	Name          string                     `gorm:"column:name;not null"`
	Category      string                     `gorm:"column:category;not null;default:''"`
	Price         decimal.Decimal            `gorm:"column:price;type:numeric(12,2);not null"`
	OriginalPrice *decimal.Decimal           `gorm:"column:original_price;type:numeric(12,2)"`
	Image         string                     `gorm:"column:image;not null;default:''"`
	Images        dbtypes.StringList         `gorm:"column:images;type:jsonb"`
	Rating        int                        `gorm:"column:rating;not null;default:5"`
	Featured      bool                       `gorm:"column:featured;not null;default:false"`
	Description   string                     `gorm:"column:description;not null;default:''"`
	Products      dbtypes.ProductSummaryList `gorm:"column:products;type:jsonb"`
	InStock       bool                       `gorm:"column:in_stock;not null;default:true"`
	StockCount    *int                       `gorm:"column:stock_count"`
	CreatedAt     time.Time                  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time                  `gorm:"column:updated_at;autoUpdateTime"`
}
