package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/constants"
	"itqan_backend/internals/features/bookings/bookings/controller"
	authMiddleware "itqan_backend/internals/middlewares/auth"
)

// BookingUserRoutes: router sudah lewat AuthMiddleware
func BookingUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewBookingController(db)
	onlyStudent := authMiddleware.OnlyRolesSlice("", constants.StudentOnly)
	onlyReader := authMiddleware.OnlyRolesSlice("غير مصرح - يجب أن تكون مقرئاً", constants.ReaderOnly)

	b := user.Group("/bookings")
	b.Get("/", ctl.List)
	b.Post("/", onlyStudent, ctl.Create)
	b.Get("/available-slots", onlyStudent, ctl.AvailableSlots)
	b.Get("/:id", ctl.Get)
	b.Patch("/:id", ctl.UpdateStatus)
	b.Put("/:id/meeting-link", onlyReader, ctl.SetMeetingLink)
	b.Get("/:id/comments", ctl.ListComments)
	b.Post("/:id/comments", ctl.AddComment)
	b.Get("/:id/reschedule", ctl.ListReschedules)
	b.Post("/:id/reschedule", ctl.RequestReschedule)
	b.Patch("/:id/reschedule/:reqId", ctl.DecideReschedule)
}

// BookingAdminRoutes: router sudah lewat AuthMiddleware + OnlyRoles(admin)
func BookingAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewAdminBookingController(db)
	admin.Get("/bookings", ctl.List)
}
