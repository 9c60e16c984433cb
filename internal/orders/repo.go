package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/lumierebeauty/lumiere-backend/pkg/db/models"
)

// Repo is the persistence surface for orders.
type Repo interface {
	List(ctx context.Context) ([]models.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Order, error)
	Get(ctx context.Context, id uint) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, id uint, changes map[string]any) (*models.Order, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type gormRepo struct {
	conn *gorm.DB
}

// NewRepo builds the GORM-backed order repository.
func NewRepo(conn *gorm.DB) Repo {
	return &gormRepo{conn: conn}
}

func (r *gormRepo) List(ctx context.Context) ([]models.Order, error) {
	var rows []models.Order
	err := r.conn.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *gormRepo) ListByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var rows []models.Order
	err := r.conn.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *gormRepo) Get(ctx context.Context, id uint) (*models.Order, error) {
	var row models.Order
	if err := r.conn.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *gormRepo) Create(ctx context.Context, order *models.Order) error {
	return r.conn.WithContext(ctx).Create(order).Error
}

func (r *gormRepo) Update(ctx context.Context, id uint, changes map[string]any) (*models.Order, error) {
	result := r.conn.WithContext(ctx).
		Model(&models.Order{}).
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
	result := r.conn.WithContext(ctx).Delete(&models.Order{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
