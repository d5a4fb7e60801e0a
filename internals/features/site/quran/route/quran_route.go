package route

import (
	"github.com/gofiber/fiber/v2"

	"itqan_backend/internals/features/site/quran/controller"
)

// QuranPublicRoutes: /api/public/quran
func QuranPublicRoutes(public fiber.Router) {
	q := public.Group("/quran")
	q.Get("/fatiha", controller.Fatiha)
	q.Post("/detect", controller.Detect)
}
