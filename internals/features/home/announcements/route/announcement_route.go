package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/features/home/announcements/controller"
)

// AnnouncementUserRoutes: router sudah lewat AuthMiddleware
func AnnouncementUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewAnnouncementController(db)
	user.Get("/announcements", ctl.ListMine)
}

// AnnouncementAdminRoutes: router sudah lewat AuthMiddleware + OnlyRoles(admin)
func AnnouncementAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewAnnouncementController(db)

	r := admin.Group("/announcements")
	r.Get("/", ctl.AdminList)
	r.Post("/", ctl.Create)
	r.Get("/:id", ctl.Get)
	r.Patch("/:id", ctl.Update)
	r.Put("/:id", ctl.Update)
	r.Delete("/:id", ctl.Delete)
}
