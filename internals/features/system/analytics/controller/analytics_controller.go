package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/features/system/analytics/dto"
	"itqan_backend/internals/features/system/analytics/service"
	helper "itqan_backend/internals/helpers"
)

type AnalyticsController struct {
	DB *gorm.DB
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{DB: db}
}

// 🟡 POST /api/public/analytics/page-view
func (ac *AnalyticsController) PageView(c *fiber.Ctx) error {
	var req dto.PageViewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	meta := service.PageViewMeta{
		UserAgent: helper.UserAgent(c),
		IP:        helper.ClientIP(c),
		Country:   c.Get("CF-IPCountry"),
	}
	if id, err := helper.GetUserIDFromToken(c); err == nil {
		meta.UserID = &id
	}
	if _, err := service.RecordPageView(c.UserContext(), ac.DB, req, meta); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "", fiber.Map{"ok": true})
}

// 🟢 GET /api/admin/analytics?days=N
func (ac *AnalyticsController) Summary(c *fiber.Ctx) error {
	days := service.ClampDays(c.QueryInt("days", service.DefaultDays))
	sum, err := service.Summarize(c.UserContext(), ac.DB, days, time.Now().UTC())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", sum)
}
