package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/lumierebeauty/lumiere-backend/pkg/config"
	"github.com/lumierebeauty/lumiere-backend/pkg/migrate"
)

func main() {
	_ = godotenv.Load()

	var (
		command = flag.String("cmd", "", "goose command: up, down, status, version, up-to, create, validate")
		dir     = flag.String("dir", migrate.DefaultDir, "migrations directory")
		name    = flag.String("name", "", "migration name (create)")
		version = flag.String("version", "", "target version (up-to / down-to)")
	)
	flag.Parse()

	if *command == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := execute(*command, *dir, *name, *version); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func execute(command, dir, name, version string) error {
	ctx := context.Background()

	switch command {
	case "create":
		if name == "" {
			return fmt.Errorf("-name is required for create")
		}
		path, err := migrate.CreateSQLMigration(dir, name)
		if err != nil {
			return err
		}
		fmt.Printf("created %s\n", path)
		return nil

	case "validate":
		return migrate.ValidateDir(dir)
	}

	dbCfg, err := config.LoadDB()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	conn, err := sql.Open("postgres", dbCfg.DSN)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer conn.Close()

	if err := conn.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	switch command {
	case "up-to", "down-to":
		return migrate.MigrateToVersion(ctx, conn, dir, version)
	default:
		return migrate.Run(ctx, conn, dir, command)
	}
}
