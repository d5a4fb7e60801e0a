package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/constants"
	"itqan_backend/internals/features/bookings/availability/controller"
	authMiddleware "itqan_backend/internals/middlewares/auth"
)

// ReaderScheduleRoutes: router sudah lewat AuthMiddleware.
// /readers/:id/availability terbuka untuk semua user login.
func ReaderScheduleRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewAvailabilityController(db)

	// didaftarkan sebelum grup /reader: middleware grup cocok dengan prefix "/readers"
	user.Get("/readers/:id/availability", ctl.ReaderAvailability)

	r := user.Group("/reader", authMiddleware.OnlyRolesSlice("غير مصرح - يجب أن تكون مقرئاً", constants.ReaderOnly))
	r.Get("/schedule", ctl.List)
	r.Post("/schedule", ctl.Create)
	r.Post("/schedule/bulk", ctl.Bulk)
	r.Delete("/schedule/:id", ctl.Delete)
	r.Get("/stats", ctl.Stats)
}
