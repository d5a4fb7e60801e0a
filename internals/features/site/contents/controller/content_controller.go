package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/features/site/contents/dto"
	"itqan_backend/internals/features/site/contents/service"
	helper "itqan_backend/internals/helpers"
)

type ContentController struct {
	DB *gorm.DB
}

func NewContentController(db *gorm.DB) *ContentController {
	return &ContentController{DB: db}
}

// =============================
// 🌐 Public
// =============================

// 🟢 GET /api/public/contents?type=&tag=&page=&per_page=
func (cc *ContentController) ListPublic(c *fiber.Ctx) error {
	pg := helper.ResolvePaging(c, 12, 50)
	rows, total, err := service.ListPublished(c.UserContext(), cc.DB,
		strings.TrimSpace(c.Query("type")), strings.TrimSpace(c.Query("tag")), pg.Offset, pg.Limit)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage)
	return helper.JsonList(c, "", dto.ToContentDTOs(rows, false), &p)
}

// 🟢 GET /api/public/contents/:slug
func (cc *ContentController) GetPublic(c *fiber.Ctx) error {
	m, err := service.GetPublishedBySlug(c.UserContext(), cc.DB, c.Params("slug"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", dto.ToContentDTO(*m, true))
}

// 🟢 GET /api/public/search?q=&types=article,book
func (cc *ContentController) Search(c *fiber.Ctx) error {
	var types []string
	if raw := strings.TrimSpace(c.Query("types")); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
	}
	res := service.Search(c.UserContext(), cc.DB, c.Query("q"), types)
	return helper.JsonOK(c, "", fiber.Map{"results": res})
}

// =============================
// 🔐 Admin
// =============================

// 🟢 GET /api/admin/contents?type=&search=
func (cc *ContentController) AdminList(c *fiber.Ctx) error {
	pg := helper.ResolvePaging(c, 20, 100)
	rows, total, err := service.AdminList(c.UserContext(), cc.DB,
		strings.TrimSpace(c.Query("type")), c.Query("search"), pg.Offset, pg.Limit)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage)
	return helper.JsonList(c, "", dto.ToContentDTOs(rows, false), &p)
}

// 🟢 GET /api/admin/contents/:id
func (cc *ContentController) AdminGet(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := service.Get(c.UserContext(), cc.DB, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", dto.ToContentDTO(*m, true))
}

// 🟡 POST /api/admin/contents
func (cc *ContentController) Create(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	if err := helper.Validator().Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	m, err := service.Create(c.UserContext(), cc.DB, adminID, req, helper.ClientIP(c), time.Now().UTC())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "تم إنشاء المحتوى بنجاح", dto.ToContentDTO(*m, true))
}

// 🟠 PATCH /api/admin/contents/:id
func (cc *ContentController) Update(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	if err := helper.Validator().Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	m, err := service.Update(c.UserContext(), cc.DB, adminID, id, req, helper.ClientIP(c), time.Now().UTC())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "تم تحديث المحتوى بنجاح", dto.ToContentDTO(*m, true))
}

// 🔴 DELETE /api/admin/contents/:id
func (cc *ContentController) Delete(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := service.Delete(c.UserContext(), cc.DB, adminID, id, helper.ClientIP(c)); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "تم حذف المحتوى بنجاح", fiber.Map{"id": id})
}
