package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"itqan_backend/internals/constants"
	"itqan_backend/internals/features/bookings/bookings/dto"
	"itqan_backend/internals/features/bookings/bookings/model"
	notifDto "itqan_backend/internals/features/home/notifications/dto"
	notifService "itqan_backend/internals/features/home/notifications/service"
	"itqan_backend/internals/helpers/dbtime"
)

const (
	ActionAccept = "accept"
	ActionReject = "reject"

	rescheduleHistoryLimit = 5
	supersededReason       = "طلب أحدث"
)

var errRequestNotFound = fiber.NewError(fiber.StatusNotFound, "الطلب غير موجود أو تم البت فيه")

// RequestReschedule: peserta booking mengusulkan jadwal baru; usulan pending sebelumnya otomatis ditolak
func RequestReschedule(ctx context.Context, db *gorm.DB, v Viewer, bookingID uuid.UUID, req dto.RescheduleRequest) (*model.RescheduleRequestModel, error) {
	if strings.TrimSpace(req.ProposedStart) == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "الوقت المقترح مطلوب")
	}
	start, err := dbtime.ParseDateTime(req.ProposedStart)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "الوقت المقترح غير صالح")
	}

	b, err := findBooking(ctx, db, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status == constants.BookingCancelled || b.Status == constants.BookingCompleted {
		return nil, fiber.NewError(fiber.StatusBadRequest, "لا يمكن تعديل هذا الحجز")
	}
	if !b.IsParticipant(v.ID) {
		return nil, errNotParticipant
	}

	end := start.Add(time.Duration(b.DurationMinutes) * time.Minute)
	if strings.TrimSpace(req.ProposedEnd) != "" {
		if end, err = dbtime.ParseDateTime(req.ProposedEnd); err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "الوقت المقترح غير صالح")
		}
	}
	if !end.After(start) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "الوقت المقترح غير صالح")
	}

	role := constants.RoleStudent
	if v.ID == b.ReaderID {
		role = constants.RoleReader
	}
	rr := model.RescheduleRequestModel{
		BookingID:         b.ID,
		RequestedBy:       v.ID,
		RequestedByRole:   role,
		ProposedSlotStart: start,
		ProposedSlotEnd:   end,
		Status:            constants.RescheduleRequested,
	}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.RescheduleRequestModel{}).
			Where("booking_id = ? AND status = ?", b.ID, constants.RescheduleRequested).
			Updates(map[string]any{
				"status":           constants.RescheduleRejected,
				"rejection_reason": supersededReason,
				"updated_at":       time.Now().UTC(),
			}).Error; err != nil {
			return err
		}
		return tx.Create(&rr).Error
	})
	if err != nil {
		return nil, err
	}

	var requester struct{ Name string }
	_ = db.WithContext(ctx).Table("users").Select("name").Where("id = ?", v.ID).Take(&requester).Error
	who := "الطالب"
	if role == constants.RoleReader {
		who = "المقرئ"
	}
	other := b.OtherParty(v.ID)
	notifService.Create(ctx, db, notifDto.NewNotification{
		UserID:           other,
		Type:             "reschedule_request",
		Title:            "طلب تعديل موعد الجلسة 📅",
		Message:          "اقترح " + who + " " + requester.Name + " تغيير موعد الجلسة إلى " + dbtime.FormatArabicDate(start) + " الساعة " + dbtime.LocalClock(start),
		Category:         constants.NotifCategorySession,
		Link:             linkFor(other, b),
		RelatedBookingID: &b.ID,
	})
	return &rr, nil
}

func ListReschedules(ctx context.Context, db *gorm.DB, v Viewer, bookingID uuid.UUID) ([]dto.RescheduleItem, error) {
	if _, err := loadAccessible(ctx, db, v, bookingID); err != nil {
		return nil, err
	}
	var out []dto.RescheduleItem
	err := db.WithContext(ctx).
		Table("booking_reschedule_requests rr").
		Select("rr.*, u.name AS requester_name").
		Joins("JOIN users u ON u.id = rr.requested_by").
		Where("rr.booking_id = ?", bookingID).
		Order("rr.created_at DESC").
		Limit(rescheduleHistoryLimit).
		Scan(&out).Error
	return out, err
}

// DecideReschedule: hanya peserta selain pengusul. Accept memindah slot & set confirmed.
func DecideReschedule(ctx context.Context, db *gorm.DB, v Viewer, bookingID, reqID uuid.UUID, dec dto.RescheduleDecision) (*model.RescheduleRequestModel, error) {
	action := strings.ToLower(strings.TrimSpace(dec.Action))
	if action != ActionAccept && action != ActionReject {
		return nil, fiber.NewError(fiber.StatusBadRequest, "الإجراء غير صحيح")
	}

	var rr model.RescheduleRequestModel
	if err := db.WithContext(ctx).
		Where("id = ? AND booking_id = ? AND status = ?", reqID, bookingID, constants.RescheduleRequested).
		First(&rr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errRequestNotFound
		}
		return nil, err
	}
	b, err := findBooking(ctx, db, bookingID)
	if err != nil {
		return nil, err
	}
	if rr.RequestedBy == v.ID {
		return nil, fiber.NewError(fiber.StatusForbidden, "لا تستطيع قبول طلبك الخاص")
	}
	if !b.IsParticipant(v.ID) {
		return nil, errNotParticipant
	}

	now := time.Now().UTC()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if action == ActionAccept {
			if err := tx.Model(b).Updates(map[string]any{
				"slot_start":       rr.ProposedSlotStart,
				"slot_end":         rr.ProposedSlotEnd,
				"duration_minutes": int(rr.ProposedSlotEnd.Sub(rr.ProposedSlotStart) / time.Minute),
				"status":           constants.BookingConfirmed,
				"updated_at":       now,
			}).Error; err != nil {
				return err
			}
			return tx.Model(&rr).Updates(map[string]any{"status": constants.RescheduleAccepted, "updated_at": now}).Error
		}
		reason := strings.TrimSpace(dec.RejectionReason)
		if reason == "" {
			reason = "تم الرفض"
		}
		return tx.Model(&rr).Updates(map[string]any{
			"status":           constants.RescheduleRejected,
			"rejection_reason": reason,
			"updated_at":       now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	n := notifDto.NewNotification{
		UserID:           rr.RequestedBy,
		Category:         constants.NotifCategorySession,
		Link:             linkFor(rr.RequestedBy, b),
		RelatedBookingID: &b.ID,
	}
	if action == ActionAccept {
		n.Type = "reschedule_accepted"
		n.Title = "تم قبول تعديل الموعد ✅"
		n.Message = "تم قبول طلب تعديل الموعد. موعدك الجديد: " + dbtime.FormatArabicDate(rr.ProposedSlotStart) + " الساعة " + dbtime.LocalClock(rr.ProposedSlotStart)
	} else {
		n.Type = "reschedule_rejected"
		n.Title = "تم رفض تعديل الموعد ❌"
		n.Message = "تم رفض طلب تعديل الموعد من الطرف الآخر."
	}
	notifService.Create(ctx, db, n)

	if err := db.WithContext(ctx).First(&rr, "id = ?", rr.ID).Error; err != nil {
		return nil, err
	}
	return &rr, nil
}
