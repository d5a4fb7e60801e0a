package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/constants"
	"itqan_backend/internals/features/users/users/controller"
	authMiddleware "itqan_backend/internals/middlewares/auth"
)

// ReaderPublicRoutes: /api/readers
func ReaderPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewAdminUserController(db)
	api.Get("/readers", ctl.ListReaders)
}

// UserAdminRoutes: router sudah lewat AuthMiddleware + OnlyRoles(admin)
func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewAdminUserController(db)

	admin.Get("/search", ctl.QuickSearch)

	users := admin.Group("/users")
	users.Get("/", ctl.ListUsers)
	users.Post("/", ctl.CreateUser)
	users.Get("/:id", ctl.GetUser)
	users.Patch("/:id", ctl.UpdateUser)
	users.Delete("/:id", ctl.DeleteUser)

	apps := controller.NewReaderApplicationController(db)
	admin.Get("/reader-applications", apps.List)
	admin.Put("/reader-applications", apps.Decide)
}

// ReaderSearchRoutes: router sudah lewat AuthMiddleware
func ReaderSearchRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewAdminUserController(db)
	user.Get("/reader/search",
		authMiddleware.OnlyRolesSlice("غير مصرح - يجب أن تكون مقرئاً", constants.ReaderOnly),
		ctl.SearchStudents)
}
