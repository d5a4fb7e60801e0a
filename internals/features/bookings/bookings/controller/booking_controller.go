package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	availabilityService "itqan_backend/internals/features/bookings/availability/service"
	"itqan_backend/internals/features/bookings/bookings/dto"
	"itqan_backend/internals/features/bookings/bookings/service"
	helper "itqan_backend/internals/helpers"
)

type BookingController struct {
	DB *gorm.DB
}

func NewBookingController(db *gorm.DB) *BookingController {
	return &BookingController{DB: db}
}

func viewerFromCtx(c *fiber.Ctx) (service.Viewer, error) {
	id, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return service.Viewer{}, err
	}
	return service.Viewer{ID: id, Role: helper.GetUserRole(c)}, nil
}

// 🟢 GET /api/bookings
func (bc *BookingController) List(c *fiber.Ctx) error {
	v, err := viewerFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	items, err := service.List(c.UserContext(), bc.DB, v)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, helper.MsgServerError)
	}
	return helper.JsonOK(c, "", items)
}

// 🟡 POST /api/bookings (student)
func (bc *BookingController) Create(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	booking, err := service.Create(c.UserContext(), bc.DB, studentID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "تم حجز الجلسة بنجاح", booking)
}

// 🟢 GET /api/bookings/available-slots?date=YYYY-MM-DD (student)
func (bc *BookingController) AvailableSlots(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "التاريخ مطلوب")
	}
	gender, err := service.UserGender(c.UserContext(), bc.DB, studentID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	slots, err := availabilityService.AvailableSlots(c.UserContext(), bc.DB, gender, date)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", slots)
}

// 🟢 GET /api/bookings/:id
func (bc *BookingController) Get(c *fiber.Ctx) error {
	v, err := viewerFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	item, err := service.Get(c.UserContext(), bc.DB, v, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", item)
}

// 🟠 PATCH /api/bookings/:id
func (bc *BookingController) UpdateStatus(c *fiber.Ctx) error {
	v, err := viewerFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	b, err := service.UpdateStatus(c.UserContext(), bc.DB, v, id, req, helper.ClientIP(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "تم تحديث الحجز", b)
}

// 🟠 PUT /api/bookings/:id/meeting-link (reader)
func (bc *BookingController) SetMeetingLink(c *fiber.Ctx) error {
	readerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.MeetingLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	b, err := service.SetMeetingLink(c.UserContext(), bc.DB, readerID, id, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "تم حفظ رابط الجلسة", b)
}

// 🟢 GET /api/bookings/:id/comments
func (bc *BookingController) ListComments(c *fiber.Ctx) error {
	v, err := viewerFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	items, err := service.ListComments(c.UserContext(), bc.DB, v, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", items)
}

// 🟡 POST /api/bookings/:id/comments
func (bc *BookingController) AddComment(c *fiber.Ctx) error {
	v, err := viewerFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	item, err := service.AddComment(c.UserContext(), bc.DB, v, id, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "", item)
}

// 🟡 POST /api/bookings/:id/reschedule
func (bc *BookingController) RequestReschedule(c *fiber.Ctx) error {
	v, err := viewerFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.RescheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	rr, err := service.RequestReschedule(c.UserContext(), bc.DB, v, id, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "تم إرسال طلب تعديل الموعد", rr)
}

// 🟢 GET /api/bookings/:id/reschedule
func (bc *BookingController) ListReschedules(c *fiber.Ctx) error {
	v, err := viewerFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	items, err := service.ListReschedules(c.UserContext(), bc.DB, v, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", items)
}

// 🟠 PATCH /api/bookings/:id/reschedule/:reqId
func (bc *BookingController) DecideReschedule(c *fiber.Ctx) error {
	v, err := viewerFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	reqID, err := helper.ParseUUIDParam(c, "reqId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var dec dto.RescheduleDecision
	if err := c.BodyParser(&dec); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	rr, err := service.DecideReschedule(c.UserContext(), bc.DB, v, id, reqID, dec)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "تم تحديث الطلب", rr)
}
