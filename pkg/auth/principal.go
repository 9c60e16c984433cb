package auth

import "github.com/lumierebeauty/lumiere-backend/pkg/enums"

// PrincipalKind distinguishes the config-backed operator identity from a
// persisted account, so the sentinel id 0 never needs special-casing at the
// call sites that would otherwise treat it as a real row.
type PrincipalKind string

const (
	PrincipalSystemAdmin  PrincipalKind = "system_admin"
	PrincipalDatabaseUser PrincipalKind = "database_user"
)

// Principal is the verified caller identity attached to a request context.
type Principal struct {
	Kind   PrincipalKind
	UserID uint
	Role   enums.UserRole
	Email  string
}

// IsZero reports whether no principal was attached (anonymous request).
func (p Principal) IsZero() bool {
	return p.Kind == ""
}

// IsAdmin reports whether the caller holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == enums.UserRoleAdmin
}

// IsSystem reports whether the caller is the non-persisted operator.
func (p Principal) IsSystem() bool {
	return p.Kind == PrincipalSystemAdmin
}
