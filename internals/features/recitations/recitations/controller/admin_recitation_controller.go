package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/constants"
	"itqan_backend/internals/features/recitations/recitations/dto"
	"itqan_backend/internals/features/recitations/recitations/service"
	helper "itqan_backend/internals/helpers"
)

type AdminRecitationController struct {
	DB *gorm.DB
}

func NewAdminRecitationController(db *gorm.DB) *AdminRecitationController {
	return &AdminRecitationController{DB: db}
}

// 🟢 GET /api/admin/recitations?status=&reader_id=&search=
func (ac *AdminRecitationController) List(c *fiber.Ctx) error {
	readerID, err := helper.ParseOptionalUUID(c.Query("reader_id"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	pg := helper.ResolvePaging(c, 20, 100)
	items, total, err := service.AdminList(c.UserContext(), ac.DB, dto.AdminRecitationFilter{
		Status:   strings.TrimSpace(c.Query("status")),
		ReaderID: readerID,
		Search:   c.Query("search"),
		Offset:   pg.Offset,
		Limit:    pg.Limit,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage)
	return helper.JsonList(c, "", items, &p)
}

// 🟢 GET /api/admin/recitations/:id
func (ac *AdminRecitationController) Get(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	detail, err := service.Get(c.UserContext(), ac.DB, service.Viewer{ID: adminID, Role: constants.RoleAdmin}, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", detail)
}

// 🟢 PATCH /api/admin/recitations/:id {reader_id?, status?}
func (ac *AdminRecitationController) Update(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.AdminRecitationUpdate
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	rec, err := service.AdminUpdate(c.UserContext(), ac.DB, adminID, id, req, helper.ClientIP(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "تم تحديث التلاوة", rec)
}
