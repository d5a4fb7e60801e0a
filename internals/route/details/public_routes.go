package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	certificateRoute "itqan_backend/internals/features/certificates/certificates/route"
	commentRoute "itqan_backend/internals/features/site/comments/route"
	contentRoute "itqan_backend/internals/features/site/contents/route"
	quranRoute "itqan_backend/internals/features/site/quran/route"
	analyticsRoute "itqan_backend/internals/features/system/analytics/route"
	settingsRoute "itqan_backend/internals/features/system/settings/route"
	statsRoute "itqan_backend/internals/features/system/stats/route"
	userRoute "itqan_backend/internals/features/users/users/route"
)

// PublicRoutes: /api/public (JWT opsional)
func PublicRoutes(public fiber.Router, db *gorm.DB) {
	settingsRoute.SettingsPublicRoutes(public, db)
	certificateRoute.CertificatePublicRoutes(public, db)
	analyticsRoute.AnalyticsPublicRoutes(public, db)
	statsRoute.StatsPublicRoutes(public, db)

	// situs konten
	contentRoute.ContentPublicRoutes(public, db)
	commentRoute.CommentPublicRoutes(public, db)
	quranRoute.QuranPublicRoutes(public)
}

// OpenRoutes: /api tanpa login (daftar mu'allim)
func OpenRoutes(api fiber.Router, db *gorm.DB) {
	userRoute.ReaderPublicRoutes(api, db)
}
