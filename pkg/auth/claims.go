package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/lumierebeauty/lumiere-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID uint
	Role   enums.UserRole
	Email  string
	System bool
}

// AccessTokenClaims represents the typed JWT issued to clients. System is
// true only for the operator identity, whose id 0 has no backing row.
type AccessTokenClaims struct {
	UserID uint           `json:"id"`
	Role   enums.UserRole `json:"role"`
	Email  string         `json:"email,omitempty"`
	System bool           `json:"system,omitempty"`
	jwt.RegisteredClaims
}

// Principal converts verified claims into the tagged identity handlers use.
func (c *AccessTokenClaims) Principal() Principal {
	if c == nil {
		return Principal{}
	}
	kind := PrincipalDatabaseUser
	if c.System {
		kind = PrincipalSystemAdmin
	}
	return Principal{
		Kind:   kind,
		UserID: c.UserID,
		Role:   c.Role,
		Email:  c.Email,
	}
}
