package route

import (
	controller "itqan_backend/internals/features/users/auth/controller"
	rateLimiter "itqan_backend/internals/middlewares"
	authMiddleware "itqan_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthRoutes Base: /api/auth
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	baseAuth := app.Group("/api/auth")

	// 🔓 Public
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	baseAuth.Post("/reader-register", rateLimiter.RegisterRateLimiter(), authController.ReaderRegister)
	baseAuth.Post("/verify", rateLimiter.VerifyCodeRateLimiter(), authController.Verify)
	baseAuth.Post("/resend-code", rateLimiter.ForgotPasswordRateLimiter(), authController.ResendCode)
	baseAuth.Post("/forgot-password", rateLimiter.ForgotPasswordRateLimiter(), authController.ForgotPassword)
	baseAuth.Post("/reset-password", rateLimiter.VerifyCodeRateLimiter(), authController.ResetPassword)
	baseAuth.Post("/google", rateLimiter.LoginRateLimiter(), authController.LoginGoogle)
	baseAuth.Post("/logout", authController.Logout)

	// 🔐 Protected
	requireAuth := authMiddleware.AuthMiddleware(db)
	baseAuth.Get("/me", requireAuth, authController.Me)
	baseAuth.Patch("/me", requireAuth, authController.UpdateMe)
	baseAuth.Post("/me/avatar", requireAuth, authController.UploadAvatar)
	baseAuth.Post("/change-password", requireAuth, authController.ChangePassword)
	baseAuth.Post("/heartbeat", requireAuth, authController.Heartbeat)
}

// SecurityAdminRoutes: router sudah lewat AuthMiddleware + OnlyRoles(admin)
func SecurityAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewSecurityController(db)

	sec := admin.Group("/security")
	sec.Get("/", ctl.Overview)
	sec.Patch("/", ctl.SetLock)
	sec.Post("/totp/setup", ctl.TOTPSetup)
	sec.Post("/totp/enable", ctl.TOTPEnable)
	sec.Delete("/totp", ctl.TOTPDisable)
}
