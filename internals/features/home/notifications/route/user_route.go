package route

import (
	"itqan_backend/internals/features/home/notifications/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// NotificationUserRoutes dipasang di group yang sudah lewat AuthMiddleware
func NotificationUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewNotificationController(db)

	notification := user.Group("/notifications")
	notification.Get("/", ctrl.List)          // 🟢 50 terbaru + unread_count
	notification.Patch("/", ctrl.MarkAllRead) // 🟠 tandai semua dibaca
	notification.Patch("/:id", ctrl.MarkRead) // 🟠 tandai satu dibaca
}
