package franchise

import (
	"time"

	"github.com/lumierebeauty/lumiere-backend/pkg/db/models"
	"github.com/lumierebeauty/lumiere-backend/pkg/enums"
)

// CreateApplicationInput is the public lead-capture payload.
type CreateApplicationInput struct {
	Name            string  `json:"name" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	Phone           string  `json:"phone"`
	City            *string `json:"city"`
	InvestmentRange string  `json:"investmentRange"`
	Experience      string  `json:"experience"`
	Message         string  `json:"message"`
}

type UpdateApplicationInput struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

type ApplicationResponse struct {
	ID              uint                  `json:"id"`
	Name            string                `json:"name"`
	Email           string                `json:"email"`
	Phone           string                `json:"phone"`
	City            *string               `json:"city,omitempty"`
	InvestmentRange string                `json:"investmentRange"`
	Experience      string                `json:"experience"`
	Message         string                `json:"message"`
	Status          enums.FranchiseStatus `json:"status"`
	Notes           *string               `json:"notes,omitempty"`
	Date            time.Time             `json:"date"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

func toResponse(app *models.FranchiseApplication) ApplicationResponse {
	return ApplicationResponse{
		ID:              app.ID,
		Name:            app.Name,
		Email:           app.Email,
		Phone:           app.Phone,
		City:            app.City,
		InvestmentRange: app.InvestmentRange,
		Experience:      app.Experience,
		Message:         app.Message,
		Status:          app.Status,
		Notes:           app.Notes,
		Date:            app.Date,
		CreatedAt:       app.CreatedAt,
		UpdatedAt:       app.UpdatedAt,
	}
}

func toResponses(rows []models.FranchiseApplication) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toResponse(&rows[i]))
	}
	return out
}
