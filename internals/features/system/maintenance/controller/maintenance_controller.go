package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/configs"
	"itqan_backend/internals/features/system/maintenance/dto"
	"itqan_backend/internals/features/system/maintenance/service"
	helper "itqan_backend/internals/helpers"
)

type MaintenanceController struct {
	DB *gorm.DB
}

func NewMaintenanceController(db *gorm.DB) *MaintenanceController {
	return &MaintenanceController{DB: db}
}

// 🟡 POST /api/admin/maintenance {action}
func (mc *MaintenanceController) Run(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.MaintenanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	out, err := service.Run(c.UserContext(), mc.DB, adminID, strings.TrimSpace(req.Action),
		configs.BackupDir, helper.ClientIP(c), time.Now())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "تم تنفيذ العملية بنجاح", out)
}
