package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/features/system/analytics/controller"
)

func AnalyticsPublicRoutes(public fiber.Router, db *gorm.DB) {
	ctl := controller.NewAnalyticsController(db)
	public.Post("/analytics/page-view", ctl.PageView)
}

// AnalyticsAdminRoutes: router sudah lewat AuthMiddleware + OnlyRoles(admin)
func AnalyticsAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewAnalyticsController(db)
	admin.Get("/analytics", ctl.Summary)
}
