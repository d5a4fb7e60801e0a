package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/features/bookings/availability/dto"
	"itqan_backend/internals/features/bookings/availability/service"
	helper "itqan_backend/internals/helpers"
)

type AvailabilityController struct {
	DB *gorm.DB
}

func NewAvailabilityController(db *gorm.DB) *AvailabilityController {
	return &AvailabilityController{DB: db}
}

// 🟢 GET /api/reader/schedule
func (ac *AvailabilityController) List(c *fiber.Ctx) error {
	readerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	slots, err := service.ListSlots(c.UserContext(), ac.DB, readerID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, helper.MsgServerError)
	}
	return helper.JsonOK(c, "", slots)
}

// 🟡 POST /api/reader/schedule
func (ac *AvailabilityController) Create(c *fiber.Ctx) error {
	readerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.SlotRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	slot, err := service.CreateSlot(c.UserContext(), ac.DB, readerID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "تم إضافة الموعد بنجاح", slot)
}

// 🟡 POST /api/reader/schedule/bulk
func (ac *AvailabilityController) Bulk(c *fiber.Ctx) error {
	readerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.BulkSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	created, skipped, err := service.BulkCreate(c.UserContext(), ac.DB, readerID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "تم إضافة المواعيد بنجاح", dto.BulkSlotResponse{Created: created, Skipped: skipped})
}

// 🔴 DELETE /api/reader/schedule/:id
func (ac *AvailabilityController) Delete(c *fiber.Ctx) error {
	readerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := service.DeleteSlot(c.UserContext(), ac.DB, readerID, id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "تم حذف الموعد", fiber.Map{"id": id})
}

// 🟢 GET /api/reader/stats
func (ac *AvailabilityController) Stats(c *fiber.Ctx) error {
	readerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	stats, err := service.ReaderStats(c.UserContext(), ac.DB, readerID, time.Now().UTC())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, helper.MsgServerError)
	}
	return helper.JsonOK(c, "", stats)
}

// 🟢 GET /api/readers/:id/availability
func (ac *AvailabilityController) ReaderAvailability(c *fiber.Ctx) error {
	readerID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	out, err := service.ReaderAvailability(c.UserContext(), ac.DB, readerID, time.Now())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", out)
}
