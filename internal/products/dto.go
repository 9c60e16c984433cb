package products

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumierebeauty/lumiere-backend/pkg/db/models"
	dbtypes "github.com/lumierebeauty/lumiere-backend/pkg/db/types"
)

// CreateProductInput is the payload accepted by the create endpoint.
type CreateProductInput struct {
	Name        string   `json:"name" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Image       string   `json:"image"`
	Images      []string `json:"images"`
	Rating      *int     `json:"rating" validate:"omitempty,min=1,max=5"`
	Featured    *bool    `json:"featured"`
	Description string   `json:"description"`
}

// UpdateProductInput carries partial-update semantics: only non-nil fields
// are written.
type UpdateProductInput struct {
	Name        *string   `json:"name"`
	Category    *string   `json:"category"`
	Price       *float64  `json:"price" validate:"omitempty,gt=0"`
	Image       *string   `json:"image"`
	Images      *[]string `json:"images"`
	Rating      *int      `json:"rating" validate:"omitempty,min=1,max=5"`
	Featured    *bool     `json:"featured"`
	Description *string   `json:"description"`
}

func (in UpdateProductInput) changes() map[string]any {
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
	return changes
}

// ProductResponse is the transport shape. Prices travel as plain numbers
// and Images is never empty: an empty stored list is backfilled with the
// primary image.
type ProductResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	Images      []string  `json:"images"`
	Rating      int       `json:"rating"`
	Featured    bool      `json:"featured"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toResponse(product *models.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Category:    product.Category,
		Price:       product.Price.InexactFloat64(),
		Image:       product.Image,
		Images:      backfillImages(product.Images, product.Image),
		Rating:      product.Rating,
		Featured:    product.Featured,
		Description: product.Description,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func toResponses(rows []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(rows))
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
