package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"itqan_backend/internals/constants"
	"itqan_backend/internals/features/bookings/availability/dto"
	"itqan_backend/internals/features/bookings/availability/model"
	"itqan_backend/internals/helpers/dbtime"
)

const (
	MsgSlotConflict     = "يوجد تعارض مع موعد آخر في نفس الوقت"
	MsgAllSlotsConflict = "جميع المواعيد المحددة تتعارض مع مواعيد موجودة مسبقاً"
	MsgSlotNotFound     = "الموعد غير موجود"

	// batas rentang bulk supaya tidak membuat ribuan slot sekali jalan
	maxBulkDays = 92
)

func ListSlots(ctx context.Context, db *gorm.DB, readerID uuid.UUID) ([]model.AvailabilitySlotModel, error) {
	var out []model.AvailabilitySlotModel
	err := db.WithContext(ctx).
		Where("reader_id = ?", readerID).
		Order("day_of_week ASC, start_time ASC").
		Find(&out).Error
	return out, err
}

// buildSlot validasi + normalisasi satu slot (belum disimpan)
func buildSlot(readerID uuid.UUID, req dto.SlotRequest) (*model.AvailabilitySlotModel, error) {
	start, err := dbtime.NormalizeClock(req.StartTime)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "وقت البداية غير صالح")
	}
	end, err := dbtime.NormalizeClock(req.EndTime)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "وقت النهاية غير صالح")
	}
	if start >= end {
		return nil, fiber.NewError(fiber.StatusBadRequest, "يجب أن يكون وقت البداية قبل وقت النهاية")
	}

	slot := &model.AvailabilitySlotModel{
		ReaderID:            readerID,
		StartTime:           start,
		EndTime:             end,
		IsRecurring:         true,
		IsAvailable:         true,
		SlotDurationMinutes: req.SlotDurationMinutes,
	}
	if slot.SlotDurationMinutes <= 0 {
		slot.SlotDurationMinutes = model.DefaultSlotDuration
	}

	if d := strings.TrimSpace(req.SpecificDate); d != "" {
		day, err := dbtime.ParseDate(d)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "التاريخ غير صالح")
		}
		ds := day.Format(dbtime.DateLayout)
		slot.SpecificDate = &ds
		slot.IsRecurring = false
		slot.DayOfWeek = int(day.Weekday())
		return slot, nil
	}

	if req.DayOfWeek == nil || *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "اليوم يجب أن يكون بين 0 و 6")
	}
	slot.DayOfWeek = *req.DayOfWeek
	return slot, nil
}

func conflictsAny(s *model.AvailabilitySlotModel, existing []model.AvailabilitySlotModel) bool {
	for i := range existing {
		if s.Conflicts(&existing[i]) {
			return true
		}
	}
	return false
}

func CreateSlot(ctx context.Context, db *gorm.DB, readerID uuid.UUID, req dto.SlotRequest) (*model.AvailabilitySlotModel, error) {
	slot, err := buildSlot(readerID, req)
	if err != nil {
		return nil, err
	}

	var existing []model.AvailabilitySlotModel
	if err := db.WithContext(ctx).
		Where("reader_id = ? AND day_of_week = ?", readerID, slot.DayOfWeek).
		Find(&existing).Error; err != nil {
		return nil, err
	}
	if conflictsAny(slot, existing) {
		return nil, fiber.NewError(fiber.StatusConflict, MsgSlotConflict)
	}

	if err := db.WithContext(ctx).Create(slot).Error; err != nil {
		return nil, err
	}
	return slot, nil
}

// expandBulk: "slots" apa adanya, atau start_date..end_date x times (tanggal spesifik)
func expandBulk(req dto.BulkSlotRequest) ([]dto.SlotRequest, error) {
	if len(req.Slots) > 0 {
		return req.Slots, nil
	}
	if strings.TrimSpace(req.StartDate) == "" || strings.TrimSpace(req.EndDate) == "" || len(req.Times) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "يرجى تحديد المواعيد")
	}
	from, err := dbtime.ParseDate(req.StartDate)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "تاريخ البداية غير صالح")
	}
	to, err := dbtime.ParseDate(req.EndDate)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "تاريخ النهاية غير صالح")
	}
	if to.Before(from) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "تاريخ النهاية يجب أن يكون بعد تاريخ البداية")
	}
	if to.Sub(from) > maxBulkDays*24*time.Hour {
		return nil, fiber.NewError(fiber.StatusBadRequest, "الفترة المحددة طويلة جداً")
	}

	days := map[int]bool{}
	for _, d := range req.Days {
		days[d] = true
	}

	var out []dto.SlotRequest
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if len(days) > 0 && !days[int(d.Weekday())] {
			continue
		}
		for _, tr := range req.Times {
			out = append(out, dto.SlotRequest{
				StartTime:    tr.StartTime,
				EndTime:      tr.EndTime,
				SpecificDate: d.Format(dbtime.DateLayout),
			})
		}
	}
	if len(out) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "يرجى تحديد المواعيد")
	}
	return out, nil
}

// BulkCreate: simpan slot yang tidak bentrok (dengan data lama maupun sesama batch).
// Semua bentrok -> 409.
func BulkCreate(ctx context.Context, db *gorm.DB, readerID uuid.UUID, req dto.BulkSlotRequest) ([]model.AvailabilitySlotModel, int, error) {
	reqs, err := expandBulk(req)
	if err != nil {
		return nil, 0, err
	}

	slots := make([]*model.AvailabilitySlotModel, 0, len(reqs))
	for _, r := range reqs {
		s, err := buildSlot(readerID, r)
		if err != nil {
			return nil, 0, err
		}
		slots = append(slots, s)
	}

	var created []model.AvailabilitySlotModel
	skipped := 0
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []model.AvailabilitySlotModel
		if err := tx.Where("reader_id = ?", readerID).Find(&existing).Error; err != nil {
			return err
		}
		for _, s := range slots {
			if conflictsAny(s, existing) {
				skipped++
				continue
			}
			if err := tx.Create(s).Error; err != nil {
				return err
			}
			existing = append(existing, *s)
			created = append(created, *s)
		}
		if len(created) == 0 {
			return fiber.NewError(fiber.StatusConflict, MsgAllSlotsConflict)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return created, skipped, nil
}

func DeleteSlot(ctx context.Context, db *gorm.DB, readerID, id uuid.UUID) error {
	res := db.WithContext(ctx).
		Where("id = ? AND reader_id = ?", id, readerID).
		Delete(&model.AvailabilitySlotModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, MsgSlotNotFound)
	}
	return nil
}

type slotRow struct {
	model.AvailabilitySlotModel
	ReaderName string `gorm:"column:reader_name"`
}

// AvailableSlots: slot reader yang eligible pada tanggal date, dikurangi jam mulai yang sudah dibooking.
// studentGender kosong -> semua reader.
func AvailableSlots(ctx context.Context, db *gorm.DB, studentGender, date string) ([]dto.AvailableSlot, error) {
	day, err := dbtime.ParseDate(date)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "التاريخ غير صالح")
	}
	ds := day.Format(dbtime.DateLayout)
	weekday := int(day.Weekday())

	q := db.WithContext(ctx).
		Table("availability_slots a").
		Select("a.*, u.name AS reader_name").
		Joins("JOIN users u ON u.id = a.reader_id").
		Where("u.role = ? AND u.is_active = ? AND u.approval_status IN ?",
			constants.RoleReader, true, constants.ApprovedStatuses).
		Where("a.is_available = ?", true).
		Where("((a.is_recurring = ? AND a.day_of_week = ?) OR (a.is_recurring = ? AND a.specific_date = ?))",
			true, weekday, false, ds)
	if studentGender != "" {
		q = q.Where("(u.gender = ? OR u.gender IS NULL OR u.gender = '')", studentGender)
	}

	var rows []slotRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	// jam mulai yang sudah terisi per reader
	dayStart, dayEnd := dbtime.DayBounds(day)
	var booked []struct {
		ReaderID  uuid.UUID
		SlotStart time.Time
	}
	if err := db.WithContext(ctx).
		Table("bookings").
		Select("reader_id, slot_start").
		Where("slot_start >= ? AND slot_start < ? AND status IN ?", dayStart, dayEnd, constants.BookingActiveStatuses).
		Scan(&booked).Error; err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(booked))
	for _, b := range booked {
		taken[b.ReaderID.String()+"|"+dbtime.LocalClock(b.SlotStart)] = true
	}

	out := make([]dto.AvailableSlot, 0, len(rows))
	for _, r := range rows {
		if taken[r.ReaderID.String()+"|"+r.StartTime] {
			continue
		}
		start, err := dbtime.ParseDateTime(dbtime.CombineDateClock(ds, r.StartTime))
		if err != nil {
			continue
		}
		end, err := dbtime.ParseDateTime(dbtime.CombineDateClock(ds, r.EndTime))
		if err != nil {
			continue
		}
		out = append(out, dto.AvailableSlot{
			ID:                  r.ID,
			ReaderID:            r.ReaderID,
			ReaderName:          r.ReaderName,
			DayOfWeek:           r.DayOfWeek,
			StartTime:           r.StartTime,
			EndTime:             r.EndTime,
			SlotDurationMinutes: r.SlotDurationMinutes,
			Date:                ds,
			SlotStart:           start,
			SlotEnd:             end,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].ReaderName < out[j].ReaderName
	})
	return out, nil
}

const bookedWindow = 7 * 24 * time.Hour

// ReaderAvailability: slot aktif reader + booking aktif (pending/confirmed) dalam 7 hari dari now.
func ReaderAvailability(ctx context.Context, db *gorm.DB, readerID uuid.UUID, now time.Time) (*dto.ReaderAvailability, error) {
	var n int64
	if err := db.WithContext(ctx).
		Table("users").
		Where("id = ? AND role = ?", readerID, constants.RoleReader).
		Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "المقرئ غير موجود")
	}

	now = now.UTC()
	out := &dto.ReaderAvailability{
		AvailabilitySlots: []model.AvailabilitySlotModel{},
		BookedSlots:       []dto.BookedSlot{},
	}
	if err := db.WithContext(ctx).
		Where("reader_id = ? AND is_available = ?", readerID, true).
		Order("day_of_week ASC, start_time ASC").
		Find(&out.AvailabilitySlots).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).
		Table("bookings").
		Select("slot_start, slot_end").
		Where("reader_id = ? AND status IN ?", readerID, constants.BookingActiveStatuses).
		Where("slot_start >= ? AND slot_start < ?", now, now.Add(bookedWindow)).
		Order("slot_start ASC").
		Scan(&out.BookedSlots).Error; err != nil {
		return nil, err
	}
	return out, nil
}
