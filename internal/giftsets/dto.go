package giftsets

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumierebeauty/lumiere-backend/pkg/db/models"
	dbtypes "github.com/lumierebeauty/lumiere-backend/pkg/db/types"
)

// ProductSummaryInput is a denormalized member reference submitted with a
// gift set. Stored as-is; never resolved against the products table.
type ProductSummaryInput struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

type CreateGiftSetInput struct {
	Name          string                `json:"name" validate:"required"`
	Category      string                `json:"category"`
	Price         float64               `json:"price" validate:"required,gt=0"`
	OriginalPrice *float64              `json:"originalPrice" validate:"omitempty,gt=0"`
	Image         string                `json:"image"`
	Images        []string              `json:"images"`
	Rating        *int                  `json:"rating" validate:"omitempty,min=1,max=5"`
	Featured      *bool                 `json:"featured"`
	Description   string                `json:"description"`
	Products      []ProductSummaryInput `json:"products"`
	InStock       *bool                 `json:"inStock"`
	StockCount    *int                  `json:"stockCount" validate:"omitempty,min=0"`
}

type UpdateGiftSetInput struct {
	Name          *string                `json:"name"`
	Category      *string                `json:"category"`
	Price         *float64               `json:"price" validate:"omitempty,gt=0"`
	OriginalPrice *float64               `json:"originalPrice" validate:"omitempty,gt=0"`
	Image         *string                `json:"image"`
	Images        *[]string              `json:"images"`
	Rating        *int                   `json:"rating" validate:"omitempty,min=1,max=5"`
	Featured      *bool                  `json:"featured"`
	Description   *string                `json:"description"`
	Products      *[]ProductSummaryInput `json:"products"`
	InStock       *bool                  `json:"inStock"`
	StockCount    *int                   `json:"stockCount" validate:"omitempty,min=0"`
}

func (in UpdateGiftSetInput) changes() map[string]any {
	changes := map[string]any{}
	if in.Name != nil {
		changes["name"] = *in.Name
	}
	if in.Category != nil {
		changes["category"] = *in.Category
	}
	if in.Price != nil {
		changes["price"] = decimal.NewFromFloat(*in.Price)
	}
	if in.OriginalPrice != nil {
		changes["original_price"] = decimal.NewFromFloat(*in.OriginalPrice)
	}
	if in.Image != nil {
		changes["image"] = *in.Image
	}
	if in.Images != nil {
		changes["images"] = dbtypes.StringList(*in.Images)
	}
	if in.Rating != nil {
		changes["rating"] = *in.Rating
	}
	if in.Featured != nil {
		changes["featured"] = *in.Featured
	}
	if in.Description != nil {
		changes["description"] = *in.Description
	}
	if in.Products != nil {
		changes["products"] = toSummaryColumn(*in.Products)
	}
	if in.InStock != nil {
		changes["in_stock"] = *in.InStock
	}
	if in.StockCount != nil {
		changes["stock_count"] = *in.StockCount
	}
	return changes
}

type ProductSummaryResponse struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
}

type GiftSetResponse struct {
	ID            uint                     `json:"id"`
	Name          string                   `json:"name"`
	Category      string                   `json:"category"`
	Price         float64                  `json:"price"`
	OriginalPrice *float64                 `json:"originalPrice,omitempty"`
	Image         string                   `json:"image"`
	Images        []string                 `json:"images"`
	Rating        int                      `json:"rating"`
	Featured      bool                     `json:"featured"`
	Description   string                   `json:"description"`
	Products      []ProductSummaryResponse `json:"products"`
	InStock       bool                     `json:"inStock"`
	StockCount    *int                     `json:"stockCount,omitempty"`
	CreatedAt     time.Time                `json:"createdAt"`
	UpdatedAt     time.Time                `json:"updatedAt"`
}

func toSummaryColumn(inputs []ProductSummaryInput) dbtypes.ProductSummaryList {
	out := make(dbtypes.ProductSummaryList, 0, len(inputs))
	for _, input := range inputs {
		out = append(out, dbtypes.ProductSummary{
			ID:    input.ID,
			Name:  input.Name,
			Price: decimal.NewFromFloat(input.Price),
			Image: input.Image,
		})
	}
	return out
}

func toResponse(set *models.GiftSet) GiftSetResponse {
	summaries := make([]ProductSummaryResponse, 0, len(set.Products))
	for _, member := range set.Products {
		summaries = append(summaries, ProductSummaryResponse{
			ID:    member.ID,
			Name:  member.Name,
			Price: member.Price.InexactFloat64(),
			Image: member.Image,
		})
	}

	var originalPrice *float64
	if set.OriginalPrice != nil {
		value := set.OriginalPrice.InexactFloat64()
		originalPrice = &value
	}

	return GiftSetResponse{
		ID:            set.ID,
		Name:          set.Name,
		Category:      set.Category,
		Price:         set.Price.InexactFloat64(),
		OriginalPrice: originalPrice,
		Image:         set.Image,
		Images:        backfillImages(set.Images, set.Image),
		Rating:        set.Rating,
		Featured:      set.Featured,
		Description:   set.Description,
		Products:      summaries,
		InStock:       set.InStock,
		StockCount:    set.StockCount,
		CreatedAt:     set.CreatedAt,
		UpdatedAt:     set.UpdatedAt,
	}
}

func toResponses(rows []models.GiftSet) []GiftSetResponse {
	out := make([]GiftSetResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toResponse(&rows[i]))
	}
	return out
}

func backfillImages(images []string, primary string) []string {
	if len(images) > 0 {
		return images
	}
	return []string{primary}
}
