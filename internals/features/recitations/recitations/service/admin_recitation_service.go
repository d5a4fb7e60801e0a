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
	notifDto "itqan_backend/internals/features/home/notifications/dto"
	notifService "itqan_backend/internals/features/home/notifications/service"
	"itqan_backend/internals/features/recitations/recitations/dto"
	"itqan_backend/internals/features/recitations/recitations/model"
	logService "itqan_backend/internals/features/system/activity_logs/service"
)

func AdminList(ctx context.Context, db *gorm.DB, f dto.AdminRecitationFilter) ([]dto.AdminRecitationItem, int64, error) {
	q := baseQuery(ctx, db)
	if f.Status != "" {
		q = q.Where("r.status = ?", f.Status)
	}
	if f.ReaderID != nil {
		q = q.Where("r.assigned_reader_id = ?", *f.ReaderID)
	}
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		like := "%" + s + "%"
		q = q.Where("(LOWER(s.name) LIKE ? OR LOWER(s.email) LIKE ?)", like, like)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []dto.RecitationItem
	if err := q.Select(itemColumns).Order("r.created_at DESC").Offset(f.Offset).Limit(f.Limit).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]dto.AdminRecitationItem, 0, len(rows))
	if len(rows) == 0 {
		return out, total, nil
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	// booking terbaru per recitation
	var bookings []struct {
		RecitationID uuid.UUID
		Status       string
		SlotStart    time.Time
	}
	if err := db.WithContext(ctx).Table("bookings").
		Select("recitation_id, status, slot_start").
		Where("recitation_id IN ?", ids).
		Order("slot_start DESC").
		Scan(&bookings).Error; err != nil {
		return nil, 0, err
	}
	latest := make(map[uuid.UUID]int, len(bookings))
	for i, b := range bookings {
		if _, ok := latest[b.RecitationID]; !ok {
			latest[b.RecitationID] = i
		}
	}

	for _, r := range rows {
		item := dto.AdminRecitationItem{RecitationItem: r}
		if i, ok := latest[r.ID]; ok {
			st, start := bookings[i].Status, bookings[i].SlotStart
			item.BookingStatus = &st
			item.BookingSlotStart = &start
		}
		out = append(out, item)
	}
	return out, total, nil
}

// AdminUpdate: pindah reader (reader_id, "" = lepas) dan/atau ubah status
func AdminUpdate(ctx context.Context, db *gorm.DB, adminID, id uuid.UUID, req dto.AdminRecitationUpdate, ip string) (*model.RecitationModel, error) {
	var rec model.RecitationModel
	if err := db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errRecitationNotFound
		}
		return nil, err
	}

	fields := map[string]any{}
	var newReader *uuid.UUID
	if req.ReaderID != nil {
		raw := strings.TrimSpace(*req.ReaderID)
		if raw == "" {
			fields["assigned_reader_id"] = nil
			fields["assigned_at"] = nil
		} else {
			rid, err := uuid.Parse(raw)
			if err != nil {
				return nil, fiber.NewError(fiber.StatusBadRequest, "معرف المقرئ غير صالح")
			}
			var n int64
			if err := db.WithContext(ctx).Table("users").
				Where("id = ? AND role = ? AND is_active = ?", rid, constants.RoleReader, true).
				Count(&n).Error; err != nil {
				return nil, err
			}
			if n == 0 {
				return nil, fiber.NewError(fiber.StatusNotFound, "المقرئ غير موجود")
			}
			fields["assigned_reader_id"] = rid
			fields["assigned_at"] = nowUTC()
			newReader = &rid
		}
	}
	if req.Status != nil {
		if !validStatus(*req.Status) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "حالة التلاوة غير صحيحة")
		}
		fields["status"] = strings.TrimSpace(*req.Status)
	}
	if len(fields) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "لا توجد بيانات للتحديث")
	}

	if err := db.WithContext(ctx).Model(&model.RecitationModel{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}

	if req.ReaderID != nil {
		target := "unassigned"
		if newReader != nil {
			target = newReader.String()
		}
		logService.Log(ctx, db, logService.Entry{
			UserID:      &adminID,
			Action:      "recitation_reassigned",
			EntityType:  "recitation",
			EntityID:    id.String(),
			Description: "Admin reassigned recitation to reader " + target,
			IPAddress:   ip,
		})
	}
	if req.Status != nil {
		logService.Log(ctx, db, logService.Entry{
			UserID:      &adminID,
			Action:      "recitation_status_changed",
			EntityType:  "recitation",
			EntityID:    id.String(),
			Details:     map[string]any{"from": rec.Status, "to": fields["status"]},
			IPAddress:   ip,
		})
	}
	if newReader != nil {
		notifService.Create(ctx, db, notifDto.NewNotification{
			UserID:              *newReader,
			Type:                "recitation_assigned",
			Title:               "تلاوة جديدة مسندة إليك",
			Message:             "قامت الإدارة بإسناد تلاوة جديدة إليك للمراجعة.",
			Category:            constants.NotifCategoryRecitation,
			Link:                "/reader/recitations/" + id.String(),
			RelatedRecitationID: &id,
		})
	}

	if err := db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}
