package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/features/site/contents/controller"
)

// ContentPublicRoutes: /api/public
func ContentPublicRoutes(public fiber.Router, db *gorm.DB) {
	ctl := controller.NewContentController(db)

	contents := public.Group("/contents")
	contents.Get("/", ctl.ListPublic)     // 📄 daftar konten terbit
	contents.Get("/:slug", ctl.GetPublic) // 🔍 detail + views_count++

	public.Get("/search", ctl.Search)
}

// ContentAdminRoutes: router sudah lewat AuthMiddleware + OnlyRoles(admin)
func ContentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewContentController(db)

	contents := admin.Group("/contents")
	contents.Get("/", ctl.AdminList)
	contents.Post("/", ctl.Create)
	contents.Get("/:id", ctl.AdminGet)
	contents.Patch("/:id", ctl.Update)
	contents.Put("/:id", ctl.Update)
	contents.Delete("/:id", ctl.Delete)
}
