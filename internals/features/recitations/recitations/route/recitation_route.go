package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/constants"
	"itqan_backend/internals/features/recitations/recitations/controller"
	authMiddleware "itqan_backend/internals/middlewares/auth"
)

// RecitationUserRoutes: router sudah lewat AuthMiddleware
func RecitationUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewRecitationController(db)
	onlyStudent := authMiddleware.OnlyRolesSlice("", constants.StudentOnly)
	onlyReader := authMiddleware.OnlyRolesSlice("غير مصرح - يجب أن تكون مقرئاً", constants.ReaderOnly)

	r := user.Group("/recitations")
	r.Get("/", ctl.List)
	r.Get("/my-latest", onlyStudent, ctl.MyLatest)
	r.Post("/", onlyStudent, ctl.Create)
	r.Get("/:id", ctl.Get)
	r.Delete("/:id", ctl.Delete)
	r.Post("/:id/review", onlyReader, ctl.Review)
}

// RecitationAdminRoutes: router sudah lewat AuthMiddleware + OnlyRoles(admin)
func RecitationAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewAdminRecitationController(db)

	r := admin.Group("/recitations")
	r.Get("/", ctl.List)
	r.Get("/:id", ctl.Get)
	r.Patch("/:id", ctl.Update)
}
