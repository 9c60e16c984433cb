package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumierebeauty/lumiere-backend/pkg/db/models"
	"gorm.io/gorm"
)

// provisionedModels lists every table the API depends on. The check runs
// once at startup instead of per-request missing-table recovery: a deploy
// against an unmigrated database refuses to serve rather than degrade.
var provisionedModels = []any{
	&models.User{},
	&models.Customer{},
	&models.Product{},
	&models.GiftSet{},
	&models.Order{},
	&models.FranchiseApplication{},
	&models.Setting{},
}

// CheckProvisioned verifies that every required table exists, returning an
// error naming the missing tables and the remediation command.
func CheckProvisioned(ctx context.Context, conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db connection is required")
	}

	migrator := conn.WithContext(ctx).Migrator()
	missing := []string{}
	for _, model := range provisionedModels {
		if !migrator.HasTable(model) {
			stmt := &gorm.Statement{DB: conn}
			if err := stmt.Parse(model); err != nil {
				return fmt.Errorf("parsing model: %w", err)
			}
			missing = append(missing, stmt.Schema.Table)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf(
			"schema not provisioned, missing tables: %s (run `go run ./cmd/migrate -cmd up`)",
			strings.Join(missing, ", "),
		)
	}
	return nil
}
