package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/constants"
	"itqan_backend/internals/features/users/users/dto"
	"itqan_backend/internals/features/users/users/service"
	helper "itqan_backend/internals/helpers"
)

type AdminUserController struct {
	DB *gorm.DB
}

func NewAdminUserController(db *gorm.DB) *AdminUserController { return &AdminUserController{DB: db} }

// 🟢 GET /api/readers (public)
func (ac *AdminUserController) ListReaders(c *fiber.Ctx) error {
	readers, err := service.ListApprovedReaders(c.UserContext(), ac.DB)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", readers)
}

// 🟢 GET /api/admin/search?q=
func (ac *AdminUserController) QuickSearch(c *fiber.Ctx) error {
	out, err := service.QuickSearch(c.UserContext(), ac.DB, c.Query("q"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, helper.MsgServerError)
	}
	return helper.JsonOK(c, "", out)
}

// 🟢 GET /api/reader/search?q= (reader)
func (ac *AdminUserController) SearchStudents(c *fiber.Ctx) error {
	out, err := service.SearchStudents(c.UserContext(), ac.DB, c.Query("q"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, helper.MsgServerError)
	}
	return helper.JsonOK(c, "", out)
}

// 🟢 GET /api/admin/users?role=&search=&page=&limit=
func (ac *AdminUserController) ListUsers(c *fiber.Ctx) error {
	role := strings.TrimSpace(c.Query("role"))
	if role != "" && !constants.IsValidRole(role) {
		return helper.JsonError(c, fiber.StatusBadRequest, "الدور غير صحيح")
	}
	pg := helper.ResolvePaging(c, 20, 100)

	users, total, err := service.ListUsers(c.UserContext(), ac.DB, service.UserFilter{
		Role:   role,
		Search: c.Query("search"),
		Offset: pg.Offset,
		Limit:  pg.Limit,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage)
	return helper.JsonList(c, "", users, &p)
}

// 🟢 POST /api/admin/users
func (ac *AdminUserController) CreateUser(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	req.Normalize()
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgAllFieldsRequired)
	}
	if err := helper.Validator().Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	u, err := service.CreateUser(c.UserContext(), ac.DB, adminID, req, helper.ClientIP(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "تم إنشاء المستخدم بنجاح", dto.ToAdminUserItem(u, false))
}

// 🟢 GET /api/admin/users/:id
func (ac *AdminUserController) GetUser(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	detail, err := service.GetUserDetail(c.UserContext(), ac.DB, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", detail)
}

// 🟢 PATCH /api/admin/users/:id
func (ac *AdminUserController) UpdateUser(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}

	u, err := service.UpdateUser(c.UserContext(), ac.DB, adminID, id, req, helper.ClientIP(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "تم تحديث المستخدم بنجاح", dto.ToAdminUserItem(u, false))
}

// 🟢 DELETE /api/admin/users/:id (nonaktifkan)
func (ac *AdminUserController) DeleteUser(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := service.DeactivateUser(c.UserContext(), ac.DB, adminID, id, helper.ClientIP(c)); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "تم تعطيل المستخدم", fiber.Map{"id": id})
}
