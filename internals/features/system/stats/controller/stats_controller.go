package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/features/system/stats/service"
	helper "itqan_backend/internals/helpers"
)

type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

// 🟢 GET /api/admin/stats
func (sc *StatsController) Get(c *fiber.Ctx) error {
	stats, err := service.Compute(c.UserContext(), sc.DB, time.Now().UTC())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", stats)
}

// 🟢 GET /api/admin/reports?date_from=&date_to=
func (sc *StatsController) Reports(c *fiber.Ctx) error {
	out, err := service.Reports(c.UserContext(), sc.DB, service.ReportFilter{
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}, time.Now().UTC())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", out)
}

// 🟢 GET /api/public/stats
func (sc *StatsController) Public(c *fiber.Ctx) error {
	return helper.JsonOK(c, "", service.Public(c.UserContext(), sc.DB))
}
