package customers

import (
	"time"

	"github.com/lumierebeauty/lumiere-backend/pkg/db/models"
	dbtypes "github.com/lumierebeauty/lumiere-backend/pkg/db/types"
)

// CreateCustomerInput is accepted both from the public checkout flow and
// the back-office.
type CreateCustomerInput struct {
	Name    string         `json:"name" validate:"required"`
	Email   string         `json:"email" validate:"required,email"`
	Phone   *string        `json:"phone"`
	Address map[string]any `json:"address"`
}

type UpdateCustomerInput struct {
	Name    *string         `json:"name"`
	Email   *string         `json:"email" validate:"omitempty,email"`
	Phone   *string         `json:"phone"`
	Address *map[string]any `json:"address"`
}

func (in UpdateCustomerInput) changes() map[string]any {
	changes := map[string]any{}
	if in.Name != nil {
		changes["name"] = *in.Name
	}
	if in.Email != nil {
		changes["email"] = normalizeEmail(*in.Email)
	}
	if in.Phone != nil {
		changes["phone"] = *in.Phone
	}
	if in.Address != nil {
		changes["address"] = dbtypes.JSONMap(*in.Address)
	}
	return changes
}

type CustomerResponse struct {
	ID        uint           `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     *string        `json:"phone,omitempty"`
	Address   map[string]any `json:"address,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func toResponse(customer *models.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Email:     customer.Email,
		Phone:     customer.Phone,
		Address:   customer.Address,
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
	}
}

func toResponses(rows []models.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toResponse(&rows[i]))
	}
	return out
}
