package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"
	"go.uber.org/zap"

	"itqan_backend/internals/configs"
	database "itqan_backend/internals/databases"
	settingsService "itqan_backend/internals/features/system/settings/service"
	scheduler "itqan_backend/internals/features/users/auth/scheduler"
	helper "itqan_backend/internals/helpers"
	middlewares "itqan_backend/internals/middlewares"
	"itqan_backend/internals/middlewares/logger"
	routes "itqan_backend/internals/route"
)

func main() {
	configs.LoadEnv()
	syncLogger := configs.InitLogger()
	defer func() { _ = syncLogger() }()
	configs.LogEnvStatus()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		EnableIPValidation:      true,
		TrustedProxies:          configs.TrustedProxies, // TRUSTED_PROXIES
		BodyLimit:               25 * 1024 * 1024,       // audio 20MB + overhead multipart
		ErrorHandler:            helper.ErrorHandler,
	})

	// ⚙️ middleware dasar + performa
	app.Use(middlewares.RecoveryMiddleware())
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// 🔎 Request-ID + timeout context
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("requestid", id)
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})

	app.Use(logger.LoggerMiddleware())
	app.Use(middlewares.CorsMiddleware())
	app.Use(middlewares.MetricsMiddleware())
	app.Use(middlewares.GlobalRateLimiter())

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()
	if configs.GetEnv("AUTO_MIGRATE") == "true" {
		if err := database.Migrate(database.DB); err != nil {
			zap.L().Fatal("migrate gagal", zap.Error(err))
		}
	}

	app.Use(middlewares.DBMiddleware(database.DB))
	app.Use(middlewares.MaintenanceMiddleware(database.DB))

	// 🧠 cache setting (redis kalau REDIS_URL ada) + mailer
	bg, stopBg := context.WithCancel(context.Background())
	defer stopBg()
	settingsService.InitCache(bg, configs.RedisURL)
	settingsService.ReloadMailer(bg, database.DB)

	// ⏱ scheduler setelah DB siap
	scheduler.StartSessionCleanupScheduler(bg, database.DB)

	// ✅ Routes
	routes.SetupRoutes(app, database.DB)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	go func() {
		zap.L().Info("✅ listening", zap.String("port", port))
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			zap.L().Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	stopBg()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	database.Close()
	zap.L().Info("server stopped")
}
