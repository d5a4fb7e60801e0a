package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
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
	logService "itqan_backend/internals/features/system/activity_logs/service"
	settingsModel "itqan_backend/internals/features/system/settings/model"
	settingsService "itqan_backend/internals/features/system/settings/service"
	"itqan_backend/internals/helpers/dbtime"
)

const (
	MsgBookingNotFound   = "لم يتم العثور على الحجز"
	MsgNoReaderAvailable = "لا يوجد مقرئ متاح في هذا الوقت. يرجى اختيار وقت آخر."
	MsgIncompleteBooking = "بيانات الحجز غير مكتملة"
	MsgInvalidSlot       = "تاريخ/وقت الحجز غير صالح"

	studentSessionsLink = "/student/sessions"
	readerSessionsLink  = "/reader/sessions"
)

var (
	errBookingNotFound = fiber.NewError(fiber.StatusNotFound, MsgBookingNotFound)
	errNotParticipant  = fiber.NewError(fiber.StatusForbidden, "غير مصرح")
)

type Viewer struct {
	ID   uuid.UUID
	Role string
}

func (v Viewer) isAdmin() bool { return v.Role == constants.RoleAdmin }

const itemColumns = "b.*, s.name AS student_name, s.email AS student_email, r.name AS reader_name"

func baseQuery(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Table("bookings b").
		Joins("JOIN users s ON s.id = b.student_id").
		Joins("JOIN users r ON r.id = b.reader_id")
}

func scopeForViewer(q *gorm.DB, v Viewer) *gorm.DB {
	switch v.Role {
	case constants.RoleStudent:
		return q.Where("b.student_id = ?", v.ID)
	case constants.RoleReader:
		return q.Where("b.reader_id = ?", v.ID)
	}
	return q
}

func linkFor(userID uuid.UUID, b *model.BookingModel) string {
	if userID == b.ReaderID {
		return readerSessionsLink
	}
	return studentSessionsLink
}

func List(ctx context.Context, db *gorm.DB, v Viewer) ([]dto.BookingItem, error) {
	var out []dto.BookingItem
	err := scopeForViewer(baseQuery(ctx, db), v).
		Select(itemColumns).
		Order("b.slot_start DESC").
		Scan(&out).Error
	return out, err
}

func findBooking(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.BookingModel, error) {
	var b model.BookingModel
	if err := db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// loadAccessible: booking ada (404) dan viewer peserta/admin (403)
func loadAccessible(ctx context.Context, db *gorm.DB, v Viewer, id uuid.UUID) (*model.BookingModel, error) {
	b, err := findBooking(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if !v.isAdmin() && !b.IsParticipant(v.ID) {
		return nil, errNotParticipant
	}
	return b, nil
}

func Get(ctx context.Context, db *gorm.DB, v Viewer, id uuid.UUID) (*dto.BookingItem, error) {
	if _, err := loadAccessible(ctx, db, v, id); err != nil {
		return nil, err
	}
	var item dto.BookingItem
	if err := baseQuery(ctx, db).Select(itemColumns).Where("b.id = ?", id).Take(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errBookingNotFound
		}
		return nil, err
	}
	return &item, nil
}

// UserGender: "" kalau belum diisi
func UserGender(ctx context.Context, db *gorm.DB, userID uuid.UUID) (string, error) {
	var u struct{ Gender *string }
	if err := db.WithContext(ctx).Table("users").Select("gender").Where("id = ?", userID).Take(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fiber.NewError(fiber.StatusNotFound, "المستخدم غير موجود")
		}
		return "", err
	}
	if u.Gender == nil {
		return "", nil
	}
	return strings.TrimSpace(*u.Gender), nil
}

// ResolveSlot: slot_start/slot_end atau date+start_time(+end_time). End kosong -> start + 30 menit.
func ResolveSlot(req dto.CreateBookingRequest) (time.Time, time.Time, error) {
	rawStart, rawEnd := req.SlotStart, req.SlotEnd
	if rawStart == "" && req.Date != "" && req.StartTime != "" {
		rawStart = dbtime.CombineDateClock(req.Date, req.StartTime)
		if req.EndTime != "" {
			rawEnd = dbtime.CombineDateClock(req.Date, req.EndTime)
		}
	}
	if rawStart == "" {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, MsgIncompleteBooking)
	}
	start, err := dbtime.ParseDateTime(rawStart)
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, MsgInvalidSlot)
	}
	end := start.Add(model.DefaultDurationMinutes * time.Minute)
	if rawEnd != "" {
		if end, err = dbtime.ParseDateTime(rawEnd); err != nil {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, MsgInvalidSlot)
		}
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, MsgInvalidSlot)
	}
	return start, end, nil
}

// Create booking oleh student + auto-assign reader
func Create(ctx context.Context, db *gorm.DB, studentID uuid.UUID, req dto.CreateBookingRequest) (*model.BookingModel, error) {
	req.Normalize()
	start, end, err := ResolveSlot(req)
	if err != nil {
		return nil, err
	}

	studentGender, err := UserGender(ctx, db, studentID)
	if err != nil {
		return nil, err
	}
	strategy := settingsService.GetString(ctx, db, settingsModel.KeyReaderAssignmentStrategy, StrategyLeastBookedToday)

	var booking model.BookingModel
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cands, err := loadCandidates(ctx, tx, studentGender, start, end)
		if err != nil {
			return err
		}
		readerID, ok := PickReader(cands, strategy, rand.Shuffle)
		if !ok {
			return fiber.NewError(fiber.StatusConflict, MsgNoReaderAvailable)
		}

		var recitationIDs []uuid.UUID
		if err := tx.Table("recitations").
			Where("student_id = ? AND status = ?", studentID, constants.RecitationNeedsSession).
			Order("created_at DESC").Limit(1).
			Pluck("id", &recitationIDs).Error; err != nil {
			return err
		}

		booking = model.BookingModel{
			StudentID:       studentID,
			ReaderID:        readerID,
			SlotStart:       start,
			SlotEnd:         end,
			DurationMinutes: int(end.Sub(start) / time.Minute),
			Status:          constants.BookingConfirmed,
			Platform:        model.DefaultPlatform,
		}
		if req.Notes != "" {
			booking.Notes = &req.Notes
		}
		if len(recitationIDs) > 0 {
			booking.RecitationID = &recitationIDs[0]
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		if booking.RecitationID != nil {
			return tx.Table("recitations").
				Where("id = ?", *booking.RecitationID).
				Updates(map[string]any{"status": constants.RecitationSessionBooked, "updated_at": time.Now().UTC()}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	when := fmt.Sprintf("%s الساعة %s", dbtime.FormatArabicDate(start), dbtime.LocalClock(start))
	notifService.Create(ctx, db, notifDto.NewNotification{
		UserID:           studentID,
		Type:             "session_booked",
		Title:            "تم تأكيد حجز جلستك ✅",
		Message:          "تم حجز جلستك بنجاح يوم " + when + ". ستجد رابط الجلسة هنا قبل الموعد.",
		Category:         constants.NotifCategorySession,
		Link:             studentSessionsLink,
		RelatedBookingID: &booking.ID,
	})
	notifService.Create(ctx, db, notifDto.NewNotification{
		UserID:           booking.ReaderID,
		Type:             "session_booked",
		Title:            "حجز جلسة جديدة 📅",
		Message:          "تم حجز جلسة تصحيح معك يوم " + when + ".",
		Category:         constants.NotifCategorySession,
		Link:             readerSessionsLink,
		RelatedBookingID: &booking.ID,
	})
	return &booking, nil
}

var statusTitles = map[string]string{
	constants.BookingConfirmed:   "تم تأكيد الجلسة",
	constants.BookingCompleted:   "تم إكمال الجلسة",
	constants.BookingCancelled:   "تم إلغاء الجلسة",
	constants.BookingNoShow:      "لم يتم حضور الجلسة",
	constants.BookingRescheduled: "تم تعديل موعد الجلسة",
	constants.BookingPending:     "الجلسة بانتظار التأكيد",
}

// UpdateStatus: student hanya boleh cancel; completed hanya reader/admin
func UpdateStatus(ctx context.Context, db *gorm.DB, v Viewer, id uuid.UUID, req dto.UpdateBookingRequest, ip string) (*model.BookingModel, error) {
	status := strings.TrimSpace(req.Status)
	if status == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "الحالة مطلوبة")
	}
	if !constants.InSlice(status, constants.BookingStatuses) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "الحالة غير صالحة")
	}

	b, err := loadAccessible(ctx, db, v, id)
	if err != nil {
		return nil, err
	}
	if v.Role == constants.RoleStudent && status != constants.BookingCancelled {
		return nil, fiber.NewError(fiber.StatusForbidden, "يمكن للطالب إلغاء الحجز فقط")
	}
	if status == constants.BookingCompleted && v.Role != constants.RoleReader && !v.isAdmin() {
		return nil, fiber.NewError(fiber.StatusForbidden, "غير مصرح")
	}

	updates := map[string]any{"status": status, "updated_at": time.Now().UTC()}
	if status == constants.BookingCancelled {
		updates["cancelled_by"] = v.ID
		if reason := strings.TrimSpace(req.CancelReason); reason != "" {
			updates["cancel_reason"] = reason
		}
	}
	if err := db.WithContext(ctx).Model(b).Updates(updates).Error; err != nil {
		return nil, err
	}
	b, err = findBooking(ctx, db, id)
	if err != nil {
		return nil, err
	}

	logService.Log(ctx, db, logService.Entry{
		UserID:      &v.ID,
		Action:      "booking_status_changed",
		EntityType:  "booking",
		EntityID:    b.ID.String(),
		Description: "تغيير حالة الحجز إلى " + status,
		Details:     map[string]any{"status": status},
		IPAddress:   ip,
	})

	recipients := []uuid.UUID{b.OtherParty(v.ID)}
	if !b.IsParticipant(v.ID) {
		recipients = []uuid.UUID{b.StudentID, b.ReaderID}
	}
	when := fmt.Sprintf("%s الساعة %s", dbtime.FormatArabicDate(b.SlotStart), dbtime.LocalClock(b.SlotStart))
	for _, uid := range recipients {
		notifService.Create(ctx, db, notifDto.NewNotification{
			UserID:           uid,
			Type:             "session_" + status,
			Title:            statusTitles[status],
			Message:          "الجلسة المحددة يوم " + when,
			Category:         constants.NotifCategorySession,
			Link:             linkFor(uid, b),
			RelatedBookingID: &b.ID,
		})
	}
	return b, nil
}

// SetMeetingLink: hanya reader pemilik booking
func SetMeetingLink(ctx context.Context, db *gorm.DB, readerID, id uuid.UUID, req dto.MeetingLinkRequest) (*model.BookingModel, error) {
	link := strings.TrimSpace(req.MeetingLink)
	if link == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "رابط الجلسة مطلوب")
	}
	b, err := findBooking(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if b.ReaderID != readerID {
		return nil, errNotParticipant
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{"meeting_link": link, "updated_at": time.Now().UTC()}
		if p := strings.TrimSpace(req.Platform); p != "" {
			updates["platform"] = p
		}
		if err := tx.Model(b).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Create(&model.BookingCommentModel{
			BookingID:   b.ID,
			UserID:      readerID,
			CommentText: "تم إضافة رابط الجلسة: " + link,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	notifService.Create(ctx, db, notifDto.NewNotification{
		UserID:           b.StudentID,
		Type:             "session_booked",
		Title:            "تم تحديد رابط الجلسة 🔗",
		Message:          "أضاف المقرئ رابط الدخول لجلسة التسميع القادمة. تفقد تفاصيل الجلسة.",
		Category:         constants.NotifCategorySession,
		Link:             studentSessionsLink,
		RelatedBookingID: &b.ID,
	})
	return findBooking(ctx, db, id)
}

func AdminList(ctx context.Context, db *gorm.DB, f dto.AdminBookingFilter) ([]dto.BookingItem, int64, error) {
	q := baseQuery(ctx, db)
	if f.Status != "" {
		q = q.Where("b.status = ?", f.Status)
	}
	if f.ReaderID != nil {
		q = q.Where("b.reader_id = ?", *f.ReaderID)
	}
	if f.StudentID != nil {
		q = q.Where("b.student_id = ?", *f.StudentID)
	}
	if f.From != nil {
		q = q.Where("b.slot_start >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("b.slot_start < ?", *f.To)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []dto.BookingItem
	if err := q.Select(itemColumns).
		Order("b.slot_start DESC").
		Offset(f.Offset).Limit(f.Limit).
		Scan(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
