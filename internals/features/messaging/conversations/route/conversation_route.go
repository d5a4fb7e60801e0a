package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/features/messaging/conversations/controller"
)

// ConversationUserRoutes: router sudah lewat AuthMiddleware
func ConversationUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewConversationController(db)

	user.Get("/unread-counts", ctl.UnreadCounts)

	r := user.Group("/conversations")
	r.Get("/", ctl.List)
	r.Post("/", ctl.Start)
	r.Delete("/:id", ctl.Delete)
	r.Get("/:id/messages", ctl.Messages)
	r.Post("/:id/messages", ctl.Send)
	r.Patch("/:id/messages/:msgId", ctl.EditMessage)
	r.Delete("/:id/messages/:msgId", ctl.DeleteMessage)
}

// ConversationAdminRoutes: router sudah lewat AuthMiddleware + OnlyRoles(admin)
func ConversationAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewConversationController(db)
	admin.Get("/conversations", ctl.AdminList)
}
