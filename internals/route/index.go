package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"itqan_backend/internals/configs"
	"itqan_backend/internals/constants"
	helper "itqan_backend/internals/helpers"
	authMiddleware "itqan_backend/internals/middlewares/auth"
	routeDetails "itqan_backend/internals/route/details"
)

var startTime time.Time

// SetupRoutes: urutan mount penting. Middleware group /api (AuthMiddleware)
// dipasang paling akhir supaya /api/auth, /api/public dan /api/admin tidak ikut tersaring.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== AUTH =====================
	zap.L().Info("setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== PUBLIC → JWT opsional =====================
	zap.L().Info("setting up PUBLIC group...")
	public := app.Group("/api/public", authMiddleware.OptionalAuth(db))
	routeDetails.PublicRoutes(public, db)
	// path publik tak dikenal -> 404, jangan jatuh ke group /api yang wajib login
	public.All("/*", func(c *fiber.Ctx) error {
		return helper.JsonError(c, fiber.StatusNotFound, helper.MsgRouteNotFound)
	})

	// ===================== ADMIN =====================
	zap.L().Info("setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/admin",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRolesSlice("", constants.AdminOnly),
	)
	routeDetails.AdminRoutes(admin, db)

	// ===================== OPEN (/api tanpa login) =====================
	routeDetails.OpenRoutes(app.Group("/api"), db)

	// ===================== PRIVATE (USER) =====================
	zap.L().Info("setting up PRIVATE group...")
	user := app.Group("/api", authMiddleware.AuthMiddleware(db))
	routeDetails.UserRoutes(user, db, configs.UploadDir)
}
