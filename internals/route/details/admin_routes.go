package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookingRoute "itqan_backend/internals/features/bookings/bookings/route"
	certificateRoute "itqan_backend/internals/features/certificates/certificates/route"
	announcementRoute "itqan_backend/internals/features/home/announcements/route"
	conversationRoute "itqan_backend/internals/features/messaging/conversations/route"
	recitationRoute "itqan_backend/internals/features/recitations/recitations/route"
	commentRoute "itqan_backend/internals/features/site/comments/route"
	contentRoute "itqan_backend/internals/features/site/contents/route"
	logRoute "itqan_backend/internals/features/system/activity_logs/route"
	analyticsRoute "itqan_backend/internals/features/system/analytics/route"
	emailRoute "itqan_backend/internals/features/system/email_templates/route"
	maintenanceRoute "itqan_backend/internals/features/system/maintenance/route"
	settingsRoute "itqan_backend/internals/features/system/settings/route"
	statsRoute "itqan_backend/internals/features/system/stats/route"
	authRoute "itqan_backend/internals/features/users/auth/route"
	userRoute "itqan_backend/internals/features/users/users/route"
)

// AdminRoutes: /api/admin, sudah lewat AuthMiddleware + OnlyRoles(admin)
func AdminRoutes(admin fiber.Router, db *gorm.DB) {
	// pengguna & keamanan
	userRoute.UserAdminRoutes(admin, db)
	authRoute.SecurityAdminRoutes(admin, db)

	// platform tilawah
	recitationRoute.RecitationAdminRoutes(admin, db)
	bookingRoute.BookingAdminRoutes(admin, db)
	conversationRoute.ConversationAdminRoutes(admin, db)
	certificateRoute.CertificateAdminRoutes(admin, db)
	announcementRoute.AnnouncementAdminRoutes(admin, db)

	// sistem
	statsRoute.StatsAdminRoutes(admin, db)
	settingsRoute.SettingsAdminRoutes(admin, db)
	emailRoute.EmailTemplateAdminRoutes(admin, db)
	logRoute.ActivityLogAdminRoutes(admin, db)
	maintenanceRoute.MaintenanceAdminRoutes(admin, db)
	analyticsRoute.AnalyticsAdminRoutes(admin, db)

	// situs konten
	contentRoute.ContentAdminRoutes(admin, db)
	commentRoute.CommentAdminRoutes(admin, db)
}
