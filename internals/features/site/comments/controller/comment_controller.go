package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/features/site/comments/dto"
	"itqan_backend/internals/features/site/comments/service"
	helper "itqan_backend/internals/helpers"
)

type CommentController struct {
	DB *gorm.DB
}

func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{DB: db}
}

// 🟢 GET /api/public/comments?content_id=&content_type=
func (cc *CommentController) List(c *fiber.Ctx) error {
	items, err := service.ListApproved(c.UserContext(), cc.DB, c.Query("content_id"), c.Query("content_type"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", items)
}

// 🟡 POST /api/public/comments
func (cc *CommentController) Create(c *fiber.Ctx) error {
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	out, err := service.Submit(c.UserContext(), cc.DB, req, helper.ClientIP(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, service.MsgCommentSubmitted, out)
}

// 🟢 GET /api/admin/comments?status=pending|approved
func (cc *CommentController) AdminList(c *fiber.Ctx) error {
	pg := helper.ResolvePaging(c, 20, 100)
	rows, total, err := service.AdminList(c.UserContext(), cc.DB, strings.TrimSpace(c.Query("status")), pg.Offset, pg.Limit)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage)
	return helper.JsonList(c, "", rows, &p)
}

// 🟠 PATCH /api/admin/comments {id, action}
func (cc *CommentController) Moderate(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.ModerateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	m, err := service.Moderate(c.UserContext(), cc.DB, adminID, req, helper.ClientIP(c), time.Now().UTC())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if m == nil {
		return helper.JsonDeleted(c, "تم حذف التعليق", fiber.Map{"id": req.ID})
	}
	return helper.JsonUpdated(c, "تمت الموافقة على التعليق", m)
}
