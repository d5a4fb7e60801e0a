package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"itqan_backend/internals/features/users/users/dto"
	"itqan_backend/internals/features/users/users/service"
	helper "itqan_backend/internals/helpers"
)

type ReaderApplicationController struct {
	DB *gorm.DB
}

func NewReaderApplicationController(db *gorm.DB) *ReaderApplicationController {
	return &ReaderApplicationController{DB: db}
}

// 🟢 GET /api/admin/reader-applications
func (rc *ReaderApplicationController) List(c *fiber.Ctx) error {
	apps, err := service.ListReaderApplications(c.UserContext(), rc.DB)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", apps)
}

// 🟢 PUT /api/admin/reader-applications {user_id, action: approve|reject}
func (rc *ReaderApplicationController) Decide(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.ApplicationDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	req.Action = strings.ToLower(strings.TrimSpace(req.Action))
	if req.UserID == "" || req.Action == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgAllFieldsRequired)
	}
	userID, err := uuid.Parse(strings.TrimSpace(req.UserID))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidID)
	}

	u, err := service.DecideReaderApplication(c.UserContext(), rc.DB, adminID, userID, req.Action, helper.ClientIP(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	msg := "تم اعتماد المقرئ"
	if req.Action == service.ActionReject {
		msg = "تم رفض الطلب"
	}
	return helper.JsonUpdated(c, msg, fiber.Map{
		"user_id":         u.ID,
		"approval_status": u.ApprovalStatus,
	})
}
