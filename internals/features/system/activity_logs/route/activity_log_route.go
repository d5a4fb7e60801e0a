package route

import (
	"itqan_backend/internals/features/system/activity_logs/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ActivityLogAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewActivityLogController(db)
	admin.Get("/activity-logs", ctl.List)
}
