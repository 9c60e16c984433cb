package auth

import (
	"github.com/lumierebeauty/lumiere-backend/internal/users"
)

type RegisterInput struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Phone    *string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileInput struct {
	Name    *string         `json:"name"`
	Phone   *string         `json:"phone"`
	Address *map[string]any `json:"address"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

type PromoteAdminInput struct {
	Email string `json:"email" validate:"required,email"`
}

// AuthResponse pairs the minted token with the caller profile.
type AuthResponse struct {
	Token string             `json:"token"`
	User  users.UserResponse `json:"user"`
}
