package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/features/system/activity_logs/service"
	helper "itqan_backend/internals/helpers"
)

type ActivityLogController struct {
	DB *gorm.DB
}

func NewActivityLogController(db *gorm.DB) *ActivityLogController {
	return &ActivityLogController{DB: db}
}

// 🟢 GET /api/admin/activity-logs?action=&user_id=&date_from=&date_to=&search=&page=
func (ctl *ActivityLogController) List(c *fiber.Ctx) error {
	userID, err := helper.ParseOptionalUUID(c.Query("user_id"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	pg := helper.ResolvePaging(c, service.PerPage, service.PerPage)

	rows, total, err := service.List(c.UserContext(), ctl.DB, service.Filter{
		Action:   c.Query("action"),
		UserID:   userID,
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
		Search:   c.Query("search"),
		Offset:   pg.Offset,
		Limit:    pg.Limit,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	actions, err := service.DistinctActions(c.UserContext(), ctl.DB)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage)
	return helper.JsonListEx(c, "", rows, &p, fiber.Map{"actions": actions})
}
