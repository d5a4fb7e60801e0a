package seeds

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"itqan_backend/internals/configs"
	emailService "itqan_backend/internals/features/system/email_templates/service"
	"itqan_backend/internals/seeds/admin"
	"itqan_backend/internals/seeds/settings"
)

// RunAllSeeds idempotent: aman dijalankan berulang kali
func RunAllSeeds(ctx context.Context, db *gorm.DB) error {
	//* System settings
	if err := settings.SeedDefaults(ctx, db); err != nil {
		return err
	}
	zap.L().Info("🌱 default settings OK")

	//* Email templates
	if err := emailService.SeedDefaults(ctx, db); err != nil {
		return err
	}
	zap.L().Info("🌱 email templates OK")

	//* Admin
	if configs.AdminEmail != "" && configs.AdminPassword != "" {
		if _, _, err := admin.EnsureAdmin(ctx, db, configs.AdminEmail, configs.AdminPassword, ""); err != nil {
			return err
		}
	}
	return nil
}
