package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	database "itqan_backend/internals/databases"
	scheduler "itqan_backend/internals/features/users/auth/scheduler"
	"itqan_backend/internals/seeds"
	"itqan_backend/internals/seeds/admin"
)

const commandTimeout = 2 * time.Minute

// Register memasang semua sub-command ke root
func Register(root *cobra.Command) {
	root.AddCommand(migrateCmd(), seedCmd(), createAdminCmd(), cleanupSessionsCmd())
}

func withDB(fn func(ctx context.Context, db *gorm.DB) error) error {
	db, err := database.Open()
	if err != nil {
		return fmt.Errorf("gagal konek DB: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	return fn(ctx, db)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "AutoMigrate semua tabel",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(func(ctx context.Context, db *gorm.DB) error {
				if err := database.Migrate(db.WithContext(ctx)); err != nil {
					return err
				}
				cmd.Println("✅ migrate selesai")
				return nil
			})
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Isi setting default, template email dan admin (ADMIN_EMAIL/ADMIN_PASSWORD)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(func(ctx context.Context, db *gorm.DB) error {
				if err := seeds.RunAllSeeds(ctx, db); err != nil {
					return err
				}
				cmd.Println("✅ seed selesai")
				return nil
			})
		},
	}
}

func createAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Buat (atau promosikan) akun admin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			name, _ := cmd.Flags().GetString("name")

			return withDB(func(ctx context.Context, db *gorm.DB) error {
				u, created, err := admin.EnsureAdmin(ctx, db, email, password, name)
				if err != nil {
					return err
				}
				if created {
					cmd.Printf("✅ admin dibuat: %s (%s)\n", u.Email, u.ID)
				} else {
					cmd.Printf("ℹ️ akun sudah ada, dijadikan admin: %s\n", u.Email)
				}
				return nil
			})
		},
	}
	cmd.Flags().String("email", "", "email admin")
	cmd.Flags().String("password", "", "password admin (min 6)")
	cmd.Flags().String("name", "", "nama tampilan")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func cleanupSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup-sessions",
		Short: "Hapus user_sessions dan token_blacklist yang kadaluarsa (sekali jalan)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(func(ctx context.Context, db *gorm.DB) error {
				scheduler.RunCleanupOnce(ctx, db)
				return nil
			})
		},
	}
}
