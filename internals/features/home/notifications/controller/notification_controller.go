package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/features/home/notifications/service"
	helper "itqan_backend/internals/helpers"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// 🟢 GET /api/notifications
func (ctrl *NotificationController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	out, err := service.ListForUser(c.UserContext(), ctrl.DB, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", out)
}

// 🟢 PATCH /api/notifications
func (ctrl *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	n, err := service.MarkAllRead(c.UserContext(), ctrl.DB, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "تم تحديد جميع الإشعارات كمقروءة", fiber.Map{"updated": n})
}

// 🟢 PATCH /api/notifications/:id
func (ctrl *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	ok, err := service.MarkRead(c.UserContext(), ctrl.DB, userID, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "الإشعار غير موجود")
	}
	return helper.JsonUpdated(c, "تم تحديد الإشعار كمقروء", nil)
}
