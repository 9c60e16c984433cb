package main

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lumierebeauty/lumiere-backend/pkg/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lumierectl",
		Short:         "Operator utilities for the Lumière storefront database",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newCreateAdminCmd(),
		newMakeAdminCmd(),
		newResetPasswordCmd(),
		newClearDemoDataCmd(),
		newDiagnoseCmd(),
	)

	return root
}

// openDB connects directly with the db settings only; the server's required
// JWT and operator credentials are not needed for operator scripts.
func openDB(ctx context.Context) (*gorm.DB, error) {
	cfg, err := config.LoadDB()
	if err != nil {
		return nil, err
	}

	quiet := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger:                 quiet,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return conn, nil
}

func closeDB(conn *gorm.DB) {
	if conn == nil {
		return
	}
	if sqlDB, err := conn.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
