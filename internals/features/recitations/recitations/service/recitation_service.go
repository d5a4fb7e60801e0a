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
)

const (
	MsgRecitationNotFound = "التلاوة غير موجودة"
	MsgPendingExists      = "لديك تسجيل بانتظار المراجعة بالفعل. لا يمكنك إرسال تسجيل جديد حتى تظهر نتيجة التسجيل السابق."
)

var (
	errRecitationNotFound = fiber.NewError(fiber.StatusNotFound, MsgRecitationNotFound)
	errForbidden          = fiber.NewError(fiber.StatusForbidden, "غير مصرح بالوصول إلى هذه التلاوة")
)

// Viewer identitas pemanggil (dari token)
type Viewer struct {
	ID   uuid.UUID
	Role string
}

func nowUTC() time.Time { return time.Now().UTC() }

const itemColumns = "r.*, s.name AS student_name, s.email AS student_email, rd.name AS reader_name"

// baseQuery tanpa Select supaya Count aman; pasang Select(itemColumns) sebelum Scan
func baseQuery(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Table("recitations r").
		Joins("LEFT JOIN users s ON s.id = r.student_id").
		Joins("LEFT JOIN users rd ON rd.id = r.assigned_reader_id")
}

// scopeForViewer: student -> miliknya, reader -> ditugaskan ke dia / pending tanpa reader, admin -> semua
func scopeForViewer(q *gorm.DB, v Viewer) *gorm.DB {
	switch v.Role {
	case constants.RoleStudent:
		return q.Where("r.student_id = ?", v.ID)
	case constants.RoleReader:
		return q.Where("(r.assigned_reader_id = ? OR (r.assigned_reader_id IS NULL AND r.status = ?))",
			v.ID, constants.RecitationPending)
	default:
		return q
	}
}

func canView(v Viewer, r *model.RecitationModel) bool {
	switch v.Role {
	case constants.RoleAdmin:
		return true
	case constants.RoleStudent:
		return r.StudentID == v.ID
	case constants.RoleReader:
		return r.AssignedReaderID == nil || *r.AssignedReaderID == v.ID
	}
	return false
}

func List(ctx context.Context, db *gorm.DB, v Viewer, status string, offset, limit int) ([]dto.RecitationItem, int64, error) {
	q := scopeForViewer(baseQuery(ctx, db), v)
	if status != "" {
		q = q.Where("r.status = ?", status)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	out := []dto.RecitationItem{}
	if err := q.Select(itemColumns).Order("r.created_at DESC").Offset(offset).Limit(limit).Scan(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func findItem(ctx context.Context, db *gorm.DB, id uuid.UUID) (*dto.RecitationItem, error) {
	var rows []dto.RecitationItem
	if err := baseQuery(ctx, db).Select(itemColumns).Where("r.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errRecitationNotFound
	}
	return &rows[0], nil
}

func findReview(ctx context.Context, db *gorm.DB, recitationID uuid.UUID) (*dto.ReviewItem, error) {
	var rows []dto.ReviewItem
	err := db.WithContext(ctx).
		Table("reviews rv").
		Select("rv.*, u.name AS reviewer_name").
		Joins("LEFT JOIN users u ON u.id = rv.reader_id").
		Where("rv.recitation_id = ?", recitationID).
		Limit(1).
		Scan(&rows).Error
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}

// Get detail + review; 404 kalau tidak ada, 403 kalau bukan haknya
func Get(ctx context.Context, db *gorm.DB, v Viewer, id uuid.UUID) (*dto.RecitationDetail, error) {
	item, err := findItem(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if !canView(v, &item.RecitationModel) {
		return nil, errForbidden
	}
	review, err := findReview(ctx, db, id)
	if err != nil {
		return nil, err
	}
	return &dto.RecitationDetail{Recitation: *item, Review: review}, nil
}

func MyLatest(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (*dto.MyLatestResponse, error) {
	resp := &dto.MyLatestResponse{}

	var rows []dto.RecitationItem
	if err := baseQuery(ctx, db).Select(itemColumns).Where("r.student_id = ?", studentID).
		Order("r.created_at DESC").Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		resp.Recitation = &rows[0]
		review, err := findReview(ctx, db, rows[0].ID)
		if err != nil {
			return nil, err
		}
		resp.Review = review
	}

	var n int64
	if err := db.WithContext(ctx).Table("certificate_data").Where("student_id = ?", studentID).Count(&n).Error; err != nil {
		return nil, err
	}
	resp.HasCertData = n > 0
	return resp, nil
}

// Create: Al-Fatiha 1:1-7, status pending. 409 kalau masih ada yang pending/in_review.
func Create(ctx context.Context, db *gorm.DB, studentID uuid.UUID, req dto.CreateRecitationRequest) (*model.RecitationModel, error) {
	if req.AudioURL == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "رابط التسجيل الصوتي مطلوب")
	}

	var open int64
	if err := db.WithContext(ctx).Model(&model.RecitationModel{}).
		Where("student_id = ? AND status IN ?", studentID,
			[]string{constants.RecitationPending, constants.RecitationInReview}).
		Count(&open).Error; err != nil {
		return nil, err
	}
	if open > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, MsgPendingExists)
	}

	qiraah := req.Qiraah
	if qiraah == "" {
		qiraah = model.DefaultQiraah
	}
	var notes *string
	if req.Notes != "" {
		notes = &req.Notes
	}
	rec := &model.RecitationModel{
		StudentID:            studentID,
		AudioURL:             req.AudioURL,
		AudioDurationSeconds: req.AudioDuration,
		SurahName:            model.DefaultSurahName,
		SurahNumber:          1,
		AyahFrom:             1,
		AyahTo:               7,
		Qiraah:               qiraah,
		Status:               constants.RecitationPending,
		Notes:                notes,
		ReviewTags:           nil,
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}

	notifService.Create(ctx, db, notifDto.NewNotification{
		UserID:              studentID,
		Type:                "recitation_received",
		Title:               "تم استلام تلاوتك ✅",
		Message:             "تم إرسال تلاوتك بنجاح وسيتم مراجعتها من قبل مقرئ معتمد قريبًا.",
		Category:            constants.NotifCategoryRecitation,
		Link:                "/student/recitations",
		RelatedRecitationID: &rec.ID,
	})
	notifService.NotifyRole(ctx, db, constants.RoleAdmin, notifDto.NewNotification{
		Type:                "new_recitation_admin",
		Title:               "تلاوة جديدة تنتظر المراجعة",
		Message:             "ارسل طالب تلاوته لسورة الفاتحة وتحتاج إلى تعيين مقرئ.",
		Category:            constants.NotifCategoryRecitation,
		Link:                "/admin/recitations",
		RelatedRecitationID: &rec.ID,
	})
	return rec, nil
}

// Delete: student hanya miliknya yang masih pending, admin bebas
func Delete(ctx context.Context, db *gorm.DB, v Viewer, id uuid.UUID) error {
	var rec model.RecitationModel
	if err := db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errRecitationNotFound
		}
		return err
	}

	allowed := v.Role == constants.RoleAdmin ||
		(v.Role == constants.RoleStudent && rec.StudentID == v.ID && rec.Status == constants.RecitationPending)
	if !allowed {
		return fiber.NewError(fiber.StatusForbidden, "غير مصرح بحذف هذه التلاوة")
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recitation_id = ?", id).Delete(&model.ReviewModel{}).Error; err != nil {
			return err
		}
		if err := tx.Table("bookings").Where("recitation_id = ?", id).Update("recitation_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.RecitationModel{}, "id = ?", id).Error
	})
}

func validStatus(s string) bool {
	return constants.InSlice(strings.TrimSpace(s), constants.RecitationStatuses)
}
