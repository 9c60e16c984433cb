package settings

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lumierebeauty/lumiere-backend/pkg/db/models"
)

// Repo is the persistence surface for store settings.
type Repo interface {
	List(ctx context.Context) ([]models.Setting, error)
	Upsert(ctx context.Context, rows []models.Setting) error
}

type gormRepo struct {
	conn *gorm.DB
}

// NewRepo builds the GORM-backed settings repository.
func NewRepo(conn *gorm.DB) Repo {
	return &gormRepo{conn: conn}
}

func (r *gormRepo) List(ctx context.Context) ([]models.Setting, error) {
	var rows []models.Setting
	err := r.conn.WithContext(ctx).Find(&rows).Error
	return rows, err
}

func (r *gormRepo) Upsert(ctx context.Context, rows []models.Setting) error {
	if len(rows) == 0 {
		return nil
	}
	return r.conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rows).Error
}
