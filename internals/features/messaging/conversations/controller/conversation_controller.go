package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/features/messaging/conversations/dto"
	"itqan_backend/internals/features/messaging/conversations/service"
	helper "itqan_backend/internals/helpers"
)

type ConversationController struct {
	DB *gorm.DB
}

func NewConversationController(db *gorm.DB) *ConversationController {
	return &ConversationController{DB: db}
}

func viewerFromCtx(c *fiber.Ctx) (service.Viewer, error) {
	id, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return service.Viewer{}, err
	}
	return service.Viewer{ID: id, Role: helper.GetUserRole(c)}, nil
}

// 🟢 GET /api/conversations
func (cc *ConversationController) List(c *fiber.Ctx) error {
	v, err := viewerFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	items, err := service.List(c.UserContext(), cc.DB, v)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, helper.MsgServerError)
	}
	return helper.JsonOK(c, "", items)
}

// 🟡 POST /api/conversations
func (cc *ConversationController) Start(c *fiber.Ctx) error {
	v, err := viewerFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.StartConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	conv, created, err := service.Start(c.UserContext(), cc.DB, v, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if created {
		return helper.JsonCreated(c, "", conv)
	}
	return helper.JsonOK(c, "", conv)
}

// 🔴 DELETE /api/conversations/:id
func (cc *ConversationController) Delete(c *fiber.Ctx) error {
	v, err := viewerFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := service.Delete(c.UserContext(), cc.DB, v, id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "تم حذف المحادثة", fiber.Map{"id": id})
}

// 🟢 GET /api/conversations/:id/messages
func (cc *ConversationController) Messages(c *fiber.Ctx) error {
	v, err := viewerFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	items, err := service.Messages(c.UserContext(), cc.DB, v, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", items)
}

// 🟡 POST /api/conversations/:id/messages
func (cc *ConversationController) Send(c *fiber.Ctx) error {
	v, err := viewerFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	msg, err := service.Send(c.UserContext(), cc.DB, v, id, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "", msg)
}

// 🟠 PATCH /api/conversations/:id/messages/:msgId
func (cc *ConversationController) EditMessage(c *fiber.Ctx) error {
	v, err := viewerFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	msgID, err := helper.ParseUUIDParam(c, "msgId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.EditMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	msg, err := service.EditMessage(c.UserContext(), cc.DB, v, id, msgID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "", msg)
}

// 🔴 DELETE /api/conversations/:id/messages/:msgId
func (cc *ConversationController) DeleteMessage(c *fiber.Ctx) error {
	v, err := viewerFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	msgID, err := helper.ParseUUIDParam(c, "msgId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := service.DeleteMessage(c.UserContext(), cc.DB, v, id, msgID); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "", fiber.Map{"id": msgID})
}

// 🟢 GET /api/unread-counts
func (cc *ConversationController) UnreadCounts(c *fiber.Ctx) error {
	v, err := viewerFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	counts, err := service.UnreadCounts(c.UserContext(), cc.DB, v)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, helper.MsgServerError)
	}
	return helper.JsonOK(c, "", counts)
}

// 🟢 GET /api/admin/conversations
func (cc *ConversationController) AdminList(c *fiber.Ctx) error {
	pg := helper.ResolvePaging(c, 50, 200)
	items, total, err := service.AdminListAll(c.UserContext(), cc.DB, pg.Offset, pg.Limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, helper.MsgServerError)
	}
	p := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage)
	return helper.JsonList(c, "", items, &p)
}
