package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lumierebeauty/lumiere-backend/pkg/config"
	"github.com/lumierebeauty/lumiere-backend/pkg/db"
	"github.com/lumierebeauty/lumiere-backend/pkg/db/models"
	"github.com/lumierebeauty/lumiere-backend/pkg/enums"
	"github.com/lumierebeauty/lumiere-backend/pkg/security"
)

const tempPasswordLength = 16

func newCreateAdminCmd() *cobra.Command {
	var (
		email    string
		name     string
		password string
	)

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a new admin user",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB(conn)

			generated := false
			if password == "" {
				password, err = security.GenerateTempPassword(tempPasswordLength)
				if err != nil {
					return err
				}
				generated = true
			}

			hash, err := security.HashPassword(password, config.PasswordConfig{})
			if err != nil {
				return err
			}

			user := &models.User{
				Name:         name,
				Email:        normalizeEmail(email),
				PasswordHash: hash,
				Role:         enums.UserRoleAdmin,
			}
			if err := conn.WithContext(cmd.Context()).Create(user).Error; err != nil {
				if db.IsUniqueViolation(err, "idx_users_email") {
					return fmt.Errorf("a user with email %s already exists", user.Email)
				}
				return err
			}

			fmt.Printf("created admin %s (id %d)\n", user.Email, user.ID)
			if generated {
				// Printed once; not stored anywhere else.
				fmt.Printf("temporary password: %s\n", password)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email (required)")
	cmd.Flags().StringVar(&name, "name", "", "admin display name (required)")
	cmd.Flags().StringVar(&password, "password", "", "password (random temporary password when omitted)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newMakeAdminCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "make-admin",
		Short: "Promote an existing user to admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB(conn)

			result := conn.WithContext(cmd.Context()).
				Model(&models.User{}).
				Where("email = ?", normalizeEmail(email)).
				Update("role", enums.UserRoleAdmin)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("no user with email %s", normalizeEmail(email))
			}

			fmt.Printf("promoted %s to admin\n", normalizeEmail(email))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "user email (required)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newResetPasswordCmd() *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Reset a user's password",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB(conn)

			generated := false
			if password == "" {
				password, err = security.GenerateTempPassword(tempPasswordLength)
				if err != nil {
					return err
				}
				generated = true
			}

			hash, err := security.HashPassword(password, config.PasswordConfig{})
			if err != nil {
				return err
			}

			result := conn.WithContext(cmd.Context()).
				Model(&models.User{}).
				Where("email = ?", normalizeEmail(email)).
				Update("password_hash", hash)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("no user with email %s", normalizeEmail(email))
			}

			fmt.Printf("password reset for %s\n", normalizeEmail(email))
			if generated {
				fmt.Printf("temporary password: %s\n", password)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "user email (required)")
	cmd.Flags().StringVar(&password, "password", "", "new password (random temporary password when omitted)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
