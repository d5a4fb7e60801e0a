package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/features/system/settings/model"
	"itqan_backend/internals/features/system/settings/service"
	helper "itqan_backend/internals/helpers"
)

type SettingsController struct {
	DB *gorm.DB
}

func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{DB: db}
}

// 🟢 GET /api/admin/settings
func (ctl *SettingsController) GetSettings(c *fiber.Ctx) error {
	out, err := service.ListByType(c.UserContext(), ctl.DB, model.TypeHomepage, true)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", out)
}

// 🟢 PUT /api/admin/settings  body: {"key": value, ...}
func (ctl *SettingsController) UpdateSettings(c *fiber.Ctx) error {
	return ctl.upsertMap(c, model.TypeGeneral)
}

// 🟢 GET /api/admin/homepage  &  GET /api/public/homepage
func (ctl *SettingsController) GetHomepage(c *fiber.Ctx) error {
	out, err := service.ListByType(c.UserContext(), ctl.DB, model.TypeHomepage, false)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", out)
}

// 🟢 PUT /api/admin/homepage
func (ctl *SettingsController) UpdateHomepage(c *fiber.Ctx) error {
	return ctl.upsertMap(c, model.TypeHomepage)
}

func (ctl *SettingsController) upsertMap(c *fiber.Ctx, settingType string) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	if len(body) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgNoDataToUpdate)
	}

	smtpChanged := false
	for key, val := range body {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if err := service.Set(c.UserContext(), ctl.DB, key, val, settingType, &adminID); err != nil {
			return helper.FromFiberError(c, err)
		}
		smtpChanged = smtpChanged || key == model.KeySMTPConfig
	}
	if smtpChanged {
		service.ReloadMailer(c.UserContext(), ctl.DB)
	}
	return helper.JsonUpdated(c, "تم حفظ الإعدادات بنجاح", fiber.Map{"updated": len(body)})
}
