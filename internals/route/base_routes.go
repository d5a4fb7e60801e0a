package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/configs"
	database "itqan_backend/internals/databases"
	settingsService "itqan_backend/internals/features/system/settings/service"
	rateLimiter "itqan_backend/internals/middlewares"
)

func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Itqan al-Fatiha API 🚀")
	})

	// ❤️ ping pool DB
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		dbStatus, serverStatus, httpStatus := "Connected", "OK", fiber.StatusOK
		if err := database.Ping(ctx, db); err != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"cache":          settingsService.CacheName(),
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    configs.AppEnv,
		})
	})

	app.Get("/metrics", rateLimiter.MetricsHandler())
	app.Static("/uploads", configs.UploadDir, fiber.Static{MaxAge: 3600})
}
