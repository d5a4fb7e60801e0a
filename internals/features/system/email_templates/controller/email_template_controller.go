package controller

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/features/system/email_templates/model"
	"itqan_backend/internals/features/system/email_templates/service"
	helper "itqan_backend/internals/helpers"
	"itqan_backend/internals/helpers/mailer"
)

type EmailTemplateController struct {
	DB *gorm.DB
}

func NewEmailTemplateController(db *gorm.DB) *EmailTemplateController {
	return &EmailTemplateController{DB: db}
}

type UpdateTemplateRequest struct {
	SubjectAr *string `json:"subject_ar"`
	SubjectEn *string `json:"subject_en"`
	BodyAr    *string `json:"body_ar"`
	BodyEn    *string `json:"body_en"`
	IsActive  *bool   `json:"is_active"`
}

// 🟢 GET /api/admin/email-templates
func (ctl *EmailTemplateController) List(c *fiber.Ctx) error {
	rows := []model.EmailTemplateModel{}
	if err := ctl.DB.WithContext(c.UserContext()).Order("created_at ASC").Find(&rows).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", rows)
}

// 🟢 PUT /api/admin/email-templates/:id
func (ctl *EmailTemplateController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req UpdateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}

	updates := map[string]any{}
	if req.SubjectAr != nil {
		if strings.TrimSpace(*req.SubjectAr) == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "بيانات ناقصة")
		}
		updates["subject_ar"] = strings.TrimSpace(*req.SubjectAr)
	}
	if req.BodyAr != nil {
		if strings.TrimSpace(*req.BodyAr) == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "بيانات ناقصة")
		}
		updates["body_ar"] = *req.BodyAr
	}
	if req.SubjectEn != nil {
		updates["subject_en"] = *req.SubjectEn
	}
	if req.BodyEn != nil {
		updates["body_en"] = *req.BodyEn
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgNoDataToUpdate)
	}

	var t model.EmailTemplateModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "القالب غير موجود")
		}
		return helper.FromFiberError(c, err)
	}
	if err := ctl.DB.WithContext(c.UserContext()).Model(&t).Updates(updates).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "تم تحديث القالب بنجاح", t)
}

// 🟢 POST /api/admin/email-templates/:id/test  (kirim ke email admin yang login)
func (ctl *EmailTemplateController) SendTest(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	to, _ := c.Locals("user_email").(string)
	if to == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, helper.MsgUnauthorized)
	}

	var t model.EmailTemplateModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "القالب غير موجود")
		}
		return helper.FromFiberError(c, err)
	}

	// variabel diisi contoh: {{studentName}} -> [studentName]
	vars := map[string]string{}
	var names []string
	if len(t.Variables) > 0 {
		_ = json.Unmarshal(t.Variables, &names)
	}
	for _, n := range names {
		vars[n] = "[" + n + "]"
	}
	subject, body := service.Render(t, vars)
	mailer.Dispatch(mailer.Message{To: to, Subject: "[تجربة] " + subject, HTML: body})

	return helper.JsonOK(c, "تم إرسال رسالة تجريبية إلى "+to, nil)
}
