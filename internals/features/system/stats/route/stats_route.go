package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/features/system/stats/controller"
)

// StatsAdminRoutes: router sudah lewat AuthMiddleware + OnlyRoles(admin)
func StatsAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewStatsController(db)
	admin.Get("/stats", ctl.Get)
	admin.Get("/reports", ctl.Reports)
}

// StatsPublicRoutes: /api/public (JWT opsional)
func StatsPublicRoutes(public fiber.Router, db *gorm.DB) {
	ctl := controller.NewStatsController(db)
	public.Get("/stats", ctl.Public)
}
