package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/constants"
	"itqan_backend/internals/features/bookings/bookings/dto"
	"itqan_backend/internals/features/bookings/bookings/service"
	helper "itqan_backend/internals/helpers"
	"itqan_backend/internals/helpers/dbtime"
)

type AdminBookingController struct {
	DB *gorm.DB
}

func NewAdminBookingController(db *gorm.DB) *AdminBookingController {
	return &AdminBookingController{DB: db}
}

// 🟢 GET /api/admin/bookings?status=&reader_id=&student_id=&from=&to=&page=&limit=
func (ac *AdminBookingController) List(c *fiber.Ctx) error {
	status := strings.TrimSpace(c.Query("status"))
	if status != "" && !constants.InSlice(status, constants.BookingStatuses) {
		return helper.JsonError(c, fiber.StatusBadRequest, "الحالة غير صالحة")
	}
	readerID, err := helper.ParseOptionalUUID(c.Query("reader_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidID)
	}
	studentID, err := helper.ParseOptionalUUID(c.Query("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidID)
	}

	pg := helper.ResolvePaging(c, 20, 100)
	f := dto.AdminBookingFilter{
		Status:    status,
		ReaderID:  readerID,
		StudentID: studentID,
		Offset:    pg.Offset,
		Limit:     pg.Limit,
	}
	if s := strings.TrimSpace(c.Query("from")); s != "" {
		d, err := dbtime.ParseDate(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "التاريخ غير صالح")
		}
		from, _ := dbtime.DayBounds(d)
		f.From = &from
	}
	if s := strings.TrimSpace(c.Query("to")); s != "" {
		d, err := dbtime.ParseDate(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "التاريخ غير صالح")
		}
		_, to := dbtime.DayBounds(d)
		f.To = &to
	}

	items, total, err := service.AdminList(c.UserContext(), ac.DB, f)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, helper.MsgServerError)
	}
	p := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage)
	return helper.JsonList(c, "", items, &p)
}
