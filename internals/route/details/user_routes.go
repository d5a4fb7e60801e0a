package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	availabilityRoute "itqan_backend/internals/features/bookings/availability/route"
	bookingRoute "itqan_backend/internals/features/bookings/bookings/route"
	certificateRoute "itqan_backend/internals/features/certificates/certificates/route"
	announcementRoute "itqan_backend/internals/features/home/announcements/route"
	notificationRoute "itqan_backend/internals/features/home/notifications/route"
	conversationRoute "itqan_backend/internals/features/messaging/conversations/route"
	recitationRoute "itqan_backend/internals/features/recitations/recitations/route"
	userRoute "itqan_backend/internals/features/users/users/route"
	uploadRoute "itqan_backend/internals/features/utils/uploads/route"
)

// UserRoutes: /api, sudah lewat AuthMiddleware
func UserRoutes(user fiber.Router, db *gorm.DB, uploadDir string) {
	recitationRoute.RecitationUserRoutes(user, db)
	bookingRoute.BookingUserRoutes(user, db)
	userRoute.ReaderSearchRoutes(user, db)
	availabilityRoute.ReaderScheduleRoutes(user, db)
	conversationRoute.ConversationUserRoutes(user, db)
	notificationRoute.NotificationUserRoutes(user, db)
	announcementRoute.AnnouncementUserRoutes(user, db)
	certificateRoute.CertificateUserRoutes(user, db)
	uploadRoute.UploadRoutes(user, uploadDir)
}
