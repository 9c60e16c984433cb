package products

import (
	"context"

	"gorm.io/gorm"

	"github.com/lumierebeauty/lumiere-backend/pkg/db/models"
)

// Repo is the persistence surface for catalog products.
type Repo interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id uint, changes map[string]any) (*models.Product, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type gormRepo struct {
	conn *gorm.DB
}

// NewRepo builds the GORM-backed product repository.
func NewRepo(conn *gorm.DB) Repo {
	return &gormRepo{conn: conn}
}

func (r *gormRepo) List(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.conn.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *gormRepo) Get(ctx context.Context, id uint) (*models.Product, error) {
	var row models.Product
	if err := r.conn.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *gormRepo) Create(ctx context.Context, product *models.Product) error {
	return r.conn.WithContext(ctx).Create(product).Error
}

func (r *gormRepo) Update(ctx context.Context, id uint, changes map[string]any) (*models.Product, error) {
	result := r.conn.WithContext(ctx).
		Model(&models.Product{}).
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
	result := r.conn.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
