package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/features/system/maintenance/controller"
)

// MaintenanceAdminRoutes: router sudah lewat AuthMiddleware + OnlyRoles(admin)
func MaintenanceAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewMaintenanceController(db)
	admin.Post("/maintenance", ctl.Run)
}
