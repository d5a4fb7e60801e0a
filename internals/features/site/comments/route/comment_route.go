package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/features/site/comments/controller"
	rateLimiter "itqan_backend/internals/middlewares"
)

// CommentPublicRoutes: /api/public/comments
func CommentPublicRoutes(public fiber.Router, db *gorm.DB) {
	ctl := controller.NewCommentController(db)
	public.Get("/comments", ctl.List)
	public.Post("/comments", rateLimiter.CommentRateLimiter(), ctl.Create)
}

// CommentAdminRoutes: router sudah lewat AuthMiddleware + OnlyRoles(admin)
func CommentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewCommentController(db)
	admin.Get("/comments", ctl.AdminList)
	admin.Patch("/comments", ctl.Moderate)
}
