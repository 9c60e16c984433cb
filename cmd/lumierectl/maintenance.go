package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/lumierebeauty/lumiere-backend/pkg/db"
	"github.com/lumierebeauty/lumiere-backend/pkg/db/models"
)

func newClearDemoDataCmd() *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "clear-demo-data",
		Short: "Delete seeded demo rows (products, gift sets, customers, orders)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("refusing to delete without --yes")
			}

			conn, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB(conn)

			targets := []struct {
				name  string
				model any
			}{
				{"orders", &models.Order{}},
				{"customers", &models.Customer{}},
				{"gift sets", &models.GiftSet{}},
				{"products", &models.Product{}},
			}

			return conn.WithContext(cmd.Context()).Transaction(func(tx *gorm.DB) error {
				for _, target := range targets {
					result := tx.Where("1 = 1").Delete(target.model)
					if result.Error != nil {
						return fmt.Errorf("clearing %s: %w", target.name, result.Error)
					}
					fmt.Printf("deleted %d %s\n", result.RowsAffected, target.name)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm deletion")

	return cmd
}

func newDiagnoseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diagnose",
		Short: "Check connectivity, schema provisioning and row counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB(conn)

			fmt.Println("database: reachable")

			if err := db.CheckProvisioned(cmd.Context(), conn); err != nil {
				fmt.Printf("schema: %v\n", err)
				return nil
			}
			fmt.Println("schema: all tables provisioned")

			counts := []struct {
				name  string
				model any
			}{
				{"users", &models.User{}},
				{"customers", &models.Customer{}},
				{"products", &models.Product{}},
				{"gift_sets", &models.GiftSet{}},
				{"orders", &models.Order{}},
				{"franchise_applications", &models.FranchiseApplication{}},
				{"settings", &models.Setting{}},
			}

			for _, target := range counts {
				var count int64
				if err := conn.WithContext(cmd.Context()).Model(target.model).Count(&count).Error; err != nil {
					fmt.Printf("%s: error (%v)\n", target.name, err)
					continue
				}
				fmt.Printf("%s: %d rows\n", target.name, count)
			}
			return nil
		},
	}
}
