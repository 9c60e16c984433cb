package users

import (
	"context"

	"gorm.io/gorm"

	"github.com/lumierebeauty/lumiere-backend/pkg/db/models"
)

// EmailUniqueIndex is the constraint name checked on duplicate inserts.
const EmailUniqueIndex = "idx_users_email"

// Repo is the persistence surface for user accounts.
type Repo interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id uint, changes map[string]any) (*models.User, error)
}

type gormRepo struct {
	conn *gorm.DB
}

// NewRepo builds the GORM-backed user repository.
func NewRepo(conn *gorm.DB) Repo {
	return &gormRepo{conn: conn}
}

func (r *gormRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var row models.User
	if err := r.conn.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *gormRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var row models.User
	if err := r.conn.WithContext(ctx).First(&row, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *gormRepo) Create(ctx context.Context, user *models.User) error {
	return r.conn.WithContext(ctx).Create(user).Error
}

func (r *gormRepo) Update(ctx context.Context, id uint, changes map[string]any) (*models.User, error) {
	result := r.conn.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(changes)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}
