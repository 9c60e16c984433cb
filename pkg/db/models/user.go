package models

import (
	"time"

	dbtypes "github.com/lumierebeauty/lumiere-backend/pkg/db/types"
	"github.com/lumierebeauty/lumiere-backend/pkg/enums"
)

// User represents a persisted account. The operator identity (id 0) is
// config-backed and never stored here.
type User struct {
	ID           uint            `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string          `gorm:"column:name;not null"`
	Email        string          `gorm:"column:email;type:text;not null;uniqueIndex:idx_users_email"`
	PasswordHash string          `gorm:"column:password_hash;not null"`
	Phone        *string         `gorm:"column:phone"`
	Role         enums.UserRole  `gorm:"column:role;not null;default:user"`
	Address      dbtypes.JSONMap `gorm:"column:address;type:jsonb"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
