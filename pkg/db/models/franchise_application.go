package models

import (
	"time"

	"github.com/lumierebeauty/lumiere-backend/pkg/enums"
)

// FranchiseApplication is a public lead captured by the franchise form.
type FranchiseApplication struct {
	ID              uint                  `gorm:"column:id;primaryKey;autoIncrement"`
	Name            string                `gorm:"column:name;not null"`
	Email           string                `gorm:"column:email;not null"`
	Phone           string                `gorm:"column:phone;not null;default:''"`
	City            *string               `gorm:"column:city"`
	InvestmentRange string                `gorm:"column:investment_range;not null;default:''"`
	Experience      string                `gorm:"column:experience;not null;default:''"`
	Message         string                `gorm:"column:message;not null;default:''"`
	Status          enums.FranchiseStatus `gorm:"column:status;not null;default:Pending"`
	Notes           *string               `gorm:"column:notes"`
	Date            time.Time             `gorm:"column:date"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
