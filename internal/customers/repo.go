package customers

import (
	"context"

	"gorm.io/gorm"

	"github.com/lumierebeauty/lumiere-backend/pkg/db/models"
)

// Repo is the persistence surface for checkout customers.
type Repo interface {
	List(ctx context.Context) ([]models.Customer, error)
	Get(ctx context.Context, id uint) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, id uint, changes map[string]any) (*models.Customer, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type gormRepo struct {
	conn *gorm.DB
}

// NewRepo builds the GORM-backed customer repository.
func NewRepo(conn *gorm.DB) Repo {
	return &gormRepo{conn: conn}
}

func (r *gormRepo) List(ctx context.Context) ([]models.Customer, error) {
	var rows []models.Customer
	err := r.conn.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *gormRepo) Get(ctx context.Context, id uint) (*models.Customer, error) {
	var row models.Customer
	if err := r.conn.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *gormRepo) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var row models.Customer
	if err := r.conn.WithContext(ctx).First(&row, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *gormRepo) Create(ctx context.Context, customer *models.Customer) error {
	return r.conn.WithContext(ctx).Create(customer).Error
}

func (r *gormRepo) Update(ctx context.Context, id uint, changes map[string]any) (*models.Customer, error) {
	result := r.conn.WithContext(ctx).
		Model(&models.Customer{}).
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
	result := r.conn.WithContext(ctx).Delete(&models.Customer{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
