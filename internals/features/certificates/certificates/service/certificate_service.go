package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"itqan_backend/internals/configs"
	"itqan_backend/internals/constants"
	"itqan_backend/internals/features/certificates/certificates/dto"
	"itqan_backend/internals/features/certificates/certificates/model"
	notifDto "itqan_backend/internals/features/home/notifications/dto"
	notifService "itqan_backend/internals/features/home/notifications/service"
	logService "itqan_backend/internals/features/system/activity_logs/service"
	emailModel "itqan_backend/internals/features/system/email_templates/model"
	emailService "itqan_backend/internals/features/system/email_templates/service"
	settingsModel "itqan_backend/internals/features/system/settings/model"
	settingsService "itqan_backend/internals/features/system/settings/service"
	"itqan_backend/internals/helpers/dbtime"
)

const (
	ActionIssue             = "issue"
	ActionSetCeremonyDate   = "set_ceremony_date"
	ActionSetGlobalCeremony = "set_global_ceremony"

	StatusPending = "pending"
	StatusIssued  = "issued"
)

var errCertificateNotFound = fiber.NewError(fiber.StatusNotFound, "الشهادة غير موجودة")

// CertificateURL: APP_BASE_URL/c/{studentId}
func CertificateURL(studentID uuid.UUID) string {
	return configs.AppBaseURL + "/c/" + studentID.String()
}

// IsMastered: recitation terakhir student berstatus mastered
func IsMastered(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (bool, error) {
	var statuses []string
	if err := db.WithContext(ctx).
		Table("recitations").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Limit(1).
		Pluck("status", &statuses).Error; err != nil {
		return false, err
	}
	return len(statuses) > 0 && statuses[0] == constants.RecitationMastered, nil
}

func itemQuery(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Table("certificate_data cd").
		Joins("JOIN users u ON u.id = cd.student_id")
}

func Mine(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (*dto.MyCertificateResponse, error) {
	mastered, err := IsMastered(ctx, db, studentID)
	if err != nil {
		return nil, err
	}
	resp := &dto.MyCertificateResponse{IsMastered: mastered}

	var items []dto.CertificateItem
	if err := itemQuery(ctx, db).
		Select("cd.*, u.name AS student_name, u.email AS student_email").
		Where("cd.student_id = ?", studentID).
		Limit(1).
		Scan(&items).Error; err != nil {
		return nil, err
	}
	if len(items) > 0 {
		it := items[0]
		if it.CertificateIssued {
			url := CertificateURL(studentID)
			it.CertificateURL = &url
		}
		resp.Certificate = &it
	}
	return resp, nil
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Save upsert data sertifikat; input kosong mempertahankan nilai lama
func Save(ctx context.Context, db *gorm.DB, studentID uuid.UUID, in dto.CertificateInput) (*model.CertificateDataModel, error) {
	mastered, err := IsMastered(ctx, db, studentID)
	if err != nil {
		return nil, err
	}
	if !mastered {
		return nil, fiber.NewError(fiber.StatusForbidden, "يجب أن تكون قراءتك متقنة لإصدار الشهادة")
	}
	in.Normalize()
	if in.Gender != "" && !constants.IsValidGender(in.Gender) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "الجنس غير صالح")
	}

	row := model.CertificateDataModel{
		StudentID:  studentID,
		University: strPtr(in.University),
		College:    strPtr(in.College),
		City:       strPtr(in.City),
		Gender:     strPtr(in.Gender),
		PDFFileURL: strPtr(in.PDFFileURL),
	}
	assign := map[string]any{"updated_at": time.Now().UTC()}
	for col, v := range map[string]*string{
		"university":   row.University,
		"college":      row.College,
		"city":         row.City,
		"gender":       row.Gender,
		"pdf_file_url": row.PDFFileURL,
	} {
		if v != nil {
			assign[col] = *v
		}
	}

	if err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}},
		DoUpdates: clause.Assignments(assign),
	}).Create(&row).Error; err != nil {
		return nil, err
	}

	var out model.CertificateDataModel
	if err := db.WithContext(ctx).First(&out, "student_id = ?", studentID).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func globalCeremony(ctx context.Context, db *gorm.DB) *dto.Ceremony {
	var c dto.Ceremony
	if !settingsService.Get(ctx, db, settingsModel.KeyCertificateCeremony, &c) || c.CeremonyDate == "" {
		return nil
	}
	return &c
}

// Public tampilan publik sertifikat; belum terbit -> 404
func Public(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (*dto.PublicCertificate, error) {
	var items []dto.CertificateItem
	if err := itemQuery(ctx, db).
		Select("cd.*, u.name AS student_name").
		Where("cd.student_id = ? AND cd.certificate_issued = ?", studentID, true).
		Limit(1).
		Scan(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errCertificateNotFound
	}
	it := items[0]
	out := &dto.PublicCertificate{
		StudentName:  it.StudentName,
		IssuedAt:     it.IssuedAt,
		CeremonyDate: it.CeremonyDate,
	}
	if it.CeremonyDate == nil {
		out.Ceremony = globalCeremony(ctx, db)
	}
	return out, nil
}

func AdminList(ctx context.Context, db *gorm.DB, status string) (*dto.AdminCertificateList, error) {
	q := itemQuery(ctx, db).
		Select(`cd.*, u.name AS student_name, u.email AS student_email,
			(SELECT r.status FROM recitations r WHERE r.student_id = cd.student_id ORDER BY r.created_at DESC LIMIT 1) AS recitation_status`)
	switch status {
	case StatusPending:
		q = q.Where("cd.certificate_issued = ?", false)
	case StatusIssued:
		q = q.Where("cd.certificate_issued = ?", true)
	}

	var items []dto.AdminCertificateItem
	if err := q.Order("cd.created_at DESC").Scan(&items).Error; err != nil {
		return nil, err
	}
	global := globalCeremony(ctx, db)
	for i := range items {
		it := &items[i]
		if it.CeremonyDate != nil {
			it.IsCustomCeremony = true
			it.EffectiveCeremonyDate = it.CeremonyDate
		} else if global != nil {
			d := global.CeremonyDate
			it.EffectiveCeremonyDate = &d
		}
		if it.CertificateIssued {
			url := CertificateURL(it.StudentID)
			it.CertificateURL = &url
		}
	}
	return &dto.AdminCertificateList{Applications: items, GlobalCeremony: global}, nil
}

// AdminAction issue | set_ceremony_date | set_global_ceremony
func AdminAction(ctx context.Context, db *gorm.DB, adminID uuid.UUID, req dto.AdminCertificateAction, ip string) (any, error) {
	switch strings.TrimSpace(req.Action) {
	case ActionIssue:
		return issue(ctx, db, adminID, req, ip)
	case ActionSetCeremonyDate:
		return setCeremonyDate(ctx, db, req)
	case ActionSetGlobalCeremony:
		c := dto.Ceremony{CeremonyDate: strings.TrimSpace(req.CeremonyDate), Location: strings.TrimSpace(req.Location)}
		if c.CeremonyDate == "" {
			return nil, fiber.NewError(fiber.StatusBadRequest, "تاريخ الحفل مطلوب")
		}
		if err := settingsService.Set(ctx, db, settingsModel.KeyCertificateCeremony, c, settingsModel.TypeGeneral, &adminID); err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fiber.NewError(fiber.StatusBadRequest, "إجراء غير معروف")
}

func loadByStudent(ctx context.Context, db *gorm.DB, raw string) (*model.CertificateDataModel, error) {
	studentID, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "student_id مطلوب")
	}
	var row model.CertificateDataModel
	if err := db.WithContext(ctx).First(&row, "student_id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "الطلب غير موجود")
		}
		return nil, err
	}
	return &row, nil
}

func setCeremonyDate(ctx context.Context, db *gorm.DB, req dto.AdminCertificateAction) (*model.CertificateDataModel, error) {
	row, err := loadByStudent(ctx, db, req.StudentID)
	if err != nil {
		return nil, err
	}
	var date any
	if d := strings.TrimSpace(req.CeremonyDate); d != "" {
		date = d
	}
	if err := db.WithContext(ctx).Model(row).Updates(map[string]any{
		"ceremony_date": date,
		"updated_at":    time.Now().UTC(),
	}).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).First(row, "id = ?", row.ID).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func issue(ctx context.Context, db *gorm.DB, adminID uuid.UUID, req dto.AdminCertificateAction, ip string) (fiber.Map, error) {
	row, err := loadByStudent(ctx, db, req.StudentID)
	if err != nil {
		return nil, err
	}
	if row.CertificateIssued {
		return nil, fiber.NewError(fiber.StatusBadRequest, "تم إصدار الشهادة مسبقاً")
	}
	now := time.Now().UTC()
	if err := db.WithContext(ctx).Model(row).Updates(map[string]any{
		"certificate_issued": true,
		"issued_at":          now,
		"updated_at":         now,
	}).Error; err != nil {
		return nil, err
	}

	url := CertificateURL(row.StudentID)
	var student struct {
		Name  string
		Email string
	}
	if err := db.WithContext(ctx).Table("users").Select("name, email").Where("id = ?", row.StudentID).Take(&student).Error; err == nil {
		vars := map[string]string{"studentName": student.Name, "certificateLink": url}
		if row.CeremonyDate != nil {
			vars["ceremonyDate"] = *row.CeremonyDate
		} else if g := globalCeremony(ctx, db); g != nil {
			vars["ceremonyDate"] = g.CeremonyDate
			vars["ceremonyLocation"] = g.Location
		}
		emailService.SendTemplate(ctx, db, emailModel.KeyCertificateIssued, student.Email, vars)
	}

	notifService.Create(ctx, db, notifDto.NewNotification{
		UserID:   row.StudentID,
		Type:     "certificate_issued",
		Title:    "تم إصدار شهادتك 🎓",
		Message:  "مبارك! تم إصدار شهادة إتقان سورة الفاتحة بتاريخ " + dbtime.LocalDate(now) + ".",
		Category: constants.NotifCategoryAccount,
		Link:     "/student/certificate",
	})
	logService.Log(ctx, db, logService.Entry{
		UserID:      &adminID,
		Action:      "certificate_issued",
		EntityType:  "certificate",
		EntityID:    row.ID.String(),
		Description: "إصدار شهادة للطالب " + student.Name,
		Details:     map[string]any{"student_id": row.StudentID},
		IPAddress:   ip,
	})
	return fiber.Map{"certificate_url": url, "issued_at": now}, nil
}
