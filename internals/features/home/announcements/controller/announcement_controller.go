package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/features/home/announcements/dto"
	"itqan_backend/internals/features/home/announcements/service"
	helper "itqan_backend/internals/helpers"
)

type AnnouncementController struct {
	DB *gorm.DB
}

func NewAnnouncementController(db *gorm.DB) *AnnouncementController {
	return &AnnouncementController{DB: db}
}

// 🟢 GET /api/announcements
func (ac *AnnouncementController) ListMine(c *fiber.Ctx) error {
	items, err := service.ListForRole(c.UserContext(), ac.DB, helper.GetUserRole(c), time.Now().UTC())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, helper.MsgServerError)
	}
	return helper.JsonOK(c, "", items)
}

// 🟢 GET /api/admin/announcements?audience=&published=
func (ac *AnnouncementController) AdminList(c *fiber.Ctx) error {
	items, err := service.AdminList(c.UserContext(), ac.DB,
		strings.TrimSpace(c.Query("audience")), strings.TrimSpace(c.Query("published")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, helper.MsgServerError)
	}
	return helper.JsonOK(c, "", items)
}

// 🟢 GET /api/admin/announcements/:id
func (ac *AnnouncementController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	a, err := service.Get(c.UserContext(), ac.DB, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", a)
}

// 🟡 POST /api/admin/announcements
func (ac *AnnouncementController) Create(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	if err := helper.Validator().Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	a, err := service.Create(c.UserContext(), ac.DB, adminID, req, helper.ClientIP(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "تم إنشاء الإعلان", a)
}

// 🟠 PATCH /api/admin/announcements/:id
func (ac *AnnouncementController) Update(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	if err := helper.Validator().Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	a, err := service.Update(c.UserContext(), ac.DB, adminID, id, req, helper.ClientIP(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "تم تحديث الإعلان", a)
}

// 🔴 DELETE /api/admin/announcements/:id
func (ac *AnnouncementController) Delete(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := service.Delete(c.UserContext(), ac.DB, adminID, id, helper.ClientIP(c)); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "تم حذف الإعلان", fiber.Map{"id": id})
}
