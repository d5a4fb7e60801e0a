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
	"itqan_backend/internals/features/home/announcements/dto"
	"itqan_backend/internals/features/home/announcements/model"
	notifDto "itqan_backend/internals/features/home/notifications/dto"
	notifService "itqan_backend/internals/features/home/notifications/service"
	logService "itqan_backend/internals/features/system/activity_logs/service"
	helper "itqan_backend/internals/helpers"
	"itqan_backend/internals/helpers/dbtime"
)

var errAnnouncementNotFound = fiber.NewError(fiber.StatusNotFound, "الإعلان غير موجود")

// AudienceForRole audience yang boleh dilihat role tertentu
func AudienceForRole(role string) []string {
	switch role {
	case constants.RoleStudent:
		return []string{model.AudienceAll, model.AudienceStudents}
	case constants.RoleReader:
		return []string{model.AudienceAll, model.AudienceReaders}
	}
	return model.Audiences
}

func parseExpiry(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := dbtime.ParseDateTime(s)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "تاريخ الانتهاء غير صالح")
	}
	return &t, nil
}

// notifyAudience kirim notifikasi ke user aktif sesuai target_audience
func notifyAudience(ctx context.Context, db *gorm.DB, a *model.AnnouncementModel) {
	q := db.WithContext(ctx).Table("users").Where("is_active = ?", true)
	switch a.TargetAudience {
	case model.AudienceStudents:
		q = q.Where("role = ?", constants.RoleStudent)
	case model.AudienceReaders:
		q = q.Where("role = ?", constants.RoleReader)
	}
	var ids []uuid.UUID
	if err := q.Pluck("id", &ids).Error; err != nil || len(ids) == 0 {
		return
	}
	notifService.CreateForMany(ctx, db, ids, notifDto.NewNotification{
		Type:     "new_announcement",
		Title:    "إعلان جديد",
		Message:  a.Title,
		Category: constants.NotifCategoryGeneral,
		Link:     "/dashboard",
	})
}

const itemColumns = "a.*, u.name AS created_by_name"

func listQuery(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Table("announcements a").
		Joins("LEFT JOIN users u ON u.id = a.created_by")
}

func AdminList(ctx context.Context, db *gorm.DB, audience, published string) ([]dto.AnnouncementItem, error) {
	q := listQuery(ctx, db).Select(itemColumns)
	if audience != "" {
		q = q.Where("a.target_audience = ?", audience)
	}
	switch published {
	case "true":
		q = q.Where("a.is_published = ?", true)
	case "false":
		q = q.Where("a.is_published = ?", false)
	}
	var out []dto.AnnouncementItem
	err := q.Order("a.created_at DESC").Scan(&out).Error
	return out, err
}

// ListForRole pengumuman terbit & belum kedaluwarsa untuk audience caller
func ListForRole(ctx context.Context, db *gorm.DB, role string, now time.Time) ([]dto.AnnouncementItem, error) {
	var out []dto.AnnouncementItem
	err := listQuery(ctx, db).
		Select(itemColumns).
		Where("a.is_published = ? AND a.target_audience IN ?", true, AudienceForRole(role)).
		Where("(a.expires_at IS NULL OR a.expires_at > ?)", now).
		Order("CASE WHEN a.priority = 'high' THEN 0 ELSE 1 END, a.published_at DESC").
		Scan(&out).Error
	return out, err
}

func Create(ctx context.Context, db *gorm.DB, adminID uuid.UUID, req dto.CreateAnnouncementRequest, ip string) (*model.AnnouncementModel, error) {
	expires, err := parseExpiry(req.ExpiresAt)
	if err != nil {
		return nil, err
	}
	a := model.AnnouncementModel{
		Title:          helper.SanitizeText(req.Title),
		Content:        helper.SanitizeHTML(req.Content),
		TargetAudience: req.TargetAudience,
		Priority:       req.Priority,
		IsPublished:    req.IsPublished,
		ExpiresAt:      expires,
		CreatedBy:      &adminID,
	}
	if a.Priority == "" {
		a.Priority = model.PriorityNormal
	}
	if a.IsPublished {
		now := time.Now().UTC()
		a.PublishedAt = &now
	}
	if err := db.WithContext(ctx).Create(&a).Error; err != nil {
		return nil, err
	}

	if a.IsPublished {
		notifyAudience(ctx, db, &a)
	}
	logService.Log(ctx, db, logService.Entry{
		UserID:      &adminID,
		Action:      "announcement_created",
		EntityType:  "announcement",
		EntityID:    a.ID.String(),
		Description: a.Title,
		IPAddress:   ip,
	})
	return &a, nil
}

func find(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.AnnouncementModel, error) {
	var a model.AnnouncementModel
	if err := db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errAnnouncementNotFound
		}
		return nil, err
	}
	return &a, nil
}

func Get(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.AnnouncementModel, error) {
	return find(ctx, db, id)
}

// Update parsial. Notifikasi audience hanya dikirim saat pertama kali terbit (published_at masih NULL).
func Update(ctx context.Context, db *gorm.DB, adminID, id uuid.UUID, req dto.UpdateAnnouncementRequest, ip string) (*model.AnnouncementModel, error) {
	a, err := find(ctx, db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = helper.SanitizeText(*req.Title)
	}
	if req.Content != nil {
		c := helper.SanitizeHTML(*req.Content)
		if c == "" {
			return nil, fiber.NewError(fiber.StatusBadRequest, "المحتوى مطلوب")
		}
		updates["content"] = c
	}
	if req.TargetAudience != nil {
		updates["target_audience"] = *req.TargetAudience
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if req.ExpiresAt != nil {
		exp, err := parseExpiry(*req.ExpiresAt)
		if err != nil {
			return nil, err
		}
		updates["expires_at"] = exp
	}
	firstPublish := false
	if req.IsPublished != nil {
		updates["is_published"] = *req.IsPublished
		if *req.IsPublished && a.PublishedAt == nil {
			updates["published_at"] = time.Now().UTC()
			firstPublish = true
		}
	}
	if len(updates) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, helper.MsgNoDataToUpdate)
	}
	updates["updated_at"] = time.Now().UTC()

	if err := db.WithContext(ctx).Model(a).Updates(updates).Error; err != nil {
		return nil, err
	}
	if a, err = find(ctx, db, id); err != nil {
		return nil, err
	}
	if firstPublish {
		notifyAudience(ctx, db, a)
	}
	logService.Log(ctx, db, logService.Entry{
		UserID:     &adminID,
		Action:     "announcement_updated",
		EntityType: "announcement",
		EntityID:   a.ID.String(),
		Details:    updates,
		IPAddress:  ip,
	})
	return a, nil
}

func Delete(ctx context.Context, db *gorm.DB, adminID, id uuid.UUID, ip string) error {
	res := db.WithContext(ctx).Delete(&model.AnnouncementModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errAnnouncementNotFound
	}
	logService.Log(ctx, db, logService.Entry{
		UserID:     &adminID,
		Action:     "announcement_deleted",
		EntityType: "announcement",
		EntityID:   id.String(),
		IPAddress:  ip,
	})
	return nil
}
