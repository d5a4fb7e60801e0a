package route

import (
	"itqan_backend/internals/features/system/settings/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SettingsAdminRoutes: router sudah lewat AuthMiddleware + OnlyRoles(admin)
func SettingsAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewSettingsController(db)

	admin.Get("/settings", ctl.GetSettings)
	admin.Put("/settings", ctl.UpdateSettings)
	admin.Get("/homepage", ctl.GetHomepage)
	admin.Put("/homepage", ctl.UpdateHomepage)
}

func SettingsPublicRoutes(public fiber.Router, db *gorm.DB) {
	ctl := controller.NewSettingsController(db)

	public.Get("/homepage", ctl.GetHomepage)
}
