package route

import (
	"itqan_backend/internals/features/system/email_templates/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func EmailTemplateAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewEmailTemplateController(db)

	tpl := admin.Group("/email-templates")
	tpl.Get("/", ctl.List)
	tpl.Put("/:id", ctl.Update)
	tpl.Post("/:id/test", ctl.SendTest)
}
