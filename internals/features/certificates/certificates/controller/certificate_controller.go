package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/features/certificates/certificates/dto"
	"itqan_backend/internals/features/certificates/certificates/service"
	helper "itqan_backend/internals/helpers"
)

type CertificateController struct {
	DB *gorm.DB
}

func NewCertificateController(db *gorm.DB) *CertificateController {
	return &CertificateController{DB: db}
}

// 🟢 GET /api/certificate (student)
func (cc *CertificateController) Mine(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	resp, err := service.Mine(c.UserContext(), cc.DB, studentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, helper.MsgServerError)
	}
	return helper.JsonOK(c, "", resp)
}

// 🟡 POST /api/certificate (student)
func (cc *CertificateController) Save(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var in dto.CertificateInput
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	row, err := service.Save(c.UserContext(), cc.DB, studentID, in)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "تم حفظ بيانات الشهادة", row)
}

// 🟢 GET /api/public/certificates/:studentId
func (cc *CertificateController) Public(c *fiber.Ctx) error {
	studentID, err := helper.ParseUUIDParam(c, "studentId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	cert, err := service.Public(c.UserContext(), cc.DB, studentID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", cert)
}

// 🟢 GET /api/admin/certificates?status=pending|issued
func (cc *CertificateController) AdminList(c *fiber.Ctx) error {
	status := strings.TrimSpace(c.Query("status", service.StatusPending))
	list, err := service.AdminList(c.UserContext(), cc.DB, status)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, helper.MsgServerError)
	}
	return helper.JsonOK(c, "", list)
}

// 🟠 PUT /api/admin/certificates
func (cc *CertificateController) AdminAction(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.AdminCertificateAction
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	out, err := service.AdminAction(c.UserContext(), cc.DB, adminID, req, helper.ClientIP(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "تم تنفيذ الإجراء بنجاح", out)
}
