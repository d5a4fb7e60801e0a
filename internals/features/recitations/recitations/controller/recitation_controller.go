package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/features/recitations/recitations/dto"
	"itqan_backend/internals/features/recitations/recitations/service"
	helper "itqan_backend/internals/helpers"
)

type RecitationController struct {
	DB *gorm.DB
}

func NewRecitationController(db *gorm.DB) *RecitationController {
	return &RecitationController{DB: db}
}

func viewerFromCtx(c *fiber.Ctx) (service.Viewer, error) {
	id, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return service.Viewer{}, err
	}
	return service.Viewer{ID: id, Role: helper.GetUserRole(c)}, nil
}

// 🟢 GET /api/recitations?status=&page=&limit=
func (rc *RecitationController) List(c *fiber.Ctx) error {
	v, err := viewerFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	pg := helper.ResolvePaging(c, 20, 100)
	items, total, err := service.List(c.UserContext(), rc.DB, v, strings.TrimSpace(c.Query("status")), pg.Offset, pg.Limit)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage)
	return helper.JsonList(c, "", items, &p)
}

// 🟢 GET /api/recitations/my-latest (student)
func (rc *RecitationController) MyLatest(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	resp, err := service.MyLatest(c.UserContext(), rc.DB, studentID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", resp)
}

// 🟢 GET /api/recitations/:id
func (rc *RecitationController) Get(c *fiber.Ctx) error {
	v, err := viewerFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	detail, err := service.Get(c.UserContext(), rc.DB, v, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", detail)
}

// 🟢 POST /api/recitations (student)
func (rc *RecitationController) Create(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreateRecitationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	req.Normalize()

	rec, err := service.Create(c.UserContext(), rc.DB, studentID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "تم إرسال التلاوة بنجاح", fiber.Map{"recitation": rec})
}

// 🟢 DELETE /api/recitations/:id
func (rc *RecitationController) Delete(c *fiber.Ctx) error {
	v, err := viewerFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := service.Delete(c.UserContext(), rc.DB, v, id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "تم حذف التلاوة بنجاح", fiber.Map{"id": id})
}

// 🟢 POST /api/recitations/:id/review (reader)
func (rc *RecitationController) Review(c *fiber.Ctx) error {
	readerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	req.Verdict = strings.TrimSpace(req.Verdict)

	review, err := service.SubmitReview(c.UserContext(), rc.DB, readerID, id, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "تم حفظ التقييم", fiber.Map{"review": review})
}
