package giftsets

import (
	"context"

	"gorm.io/gorm"

	"github.com/lumierebeauty/lumiere-backend/pkg/db/models"
)

// Repo is the persistence surface for gift sets.
type Repo interface {
	List(ctx context.Context) ([]models.GiftSet, error)
	Get(ctx context.Context, id uint) (*models.GiftSet, error)
	Create(ctx context.Context, set *models.GiftSet) error
	Update(ctx context.Context, id uint, changes map[string]any) (*models.GiftSet, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type gormRepo struct {
	conn *gorm.DB
}

// NewRepo builds the GORM-backed gift set repository.
func NewRepo(conn *gorm.DB) Repo {
	return &gormRepo{conn: conn}
}

func (r *gormRepo) List(ctx context.Context) ([]models.GiftSet, error) {
	var rows []models.GiftSet
	err := r.conn.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *gormRepo) Get(ctx context.Context, id uint) (*models.GiftSet, error) {
	var row models.GiftSet
	if err := r.conn.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *gormRepo) Create(ctx context.Context, set *models.GiftSet) error {
	return r.conn.WithContext(ctx).Create(set).Error
}

func (r *gormRepo) Update(ctx context.Context, id uint, changes map[string]any) (*models.GiftSet, error) {
	result := r.conn.WithContext(ctx).
		Model(&models.GiftSet{}).
		Where("id = ?", id).
		Updates(changes)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.Get(ctx, id)
}

func (r *gormRepo) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.conn.WithContext(ctx).Delete(&models.GiftSet{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
