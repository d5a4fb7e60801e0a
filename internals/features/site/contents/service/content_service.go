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
	"itqan_backend/internals/features/site/contents/dto"
	"itqan_backend/internals/features/site/contents/model"
	logService "itqan_backend/internals/features/system/activity_logs/service"
	helper "itqan_backend/internals/helpers"
	"itqan_backend/internals/helpers/dbtype"
)

const MsgContentNotFound = "المحتوى غير موجود"

var slugOpts = helper.SlugOptions{
	Table:       "site_contents",
	SlugColumn:  "slug",
	MaxLen:      160,
	DefaultBase: "content",
}

// ListPublished: publik, hanya yang published + aktif, terbaru dulu
func ListPublished(ctx context.Context, db *gorm.DB, contentType, tag string, offset, limit int) ([]model.ContentModel, int64, error) {
	q := db.WithContext(ctx).Model(&model.ContentModel{}).
		Where("is_published = ? AND is_active = ?", true, true)
	if contentType != "" {
		if !constants.InSlice(contentType, model.ContentTypes) {
			return nil, 0, fiber.NewError(fiber.StatusBadRequest, "نوع المحتوى غير صحيح")
		}
		q = q.Where("content_type = ?", contentType)
	}
	if tag != "" {
		q = q.Where(dbtype.Contains(db, "tags", tag))
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.ContentModel
	err := q.Order("published_at DESC, created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error
	return rows, total, err
}

// GetPublishedBySlug menaikkan views_count; tidak ada / belum terbit -> 404
func GetPublishedBySlug(ctx context.Context, db *gorm.DB, slug string) (*model.ContentModel, error) {
	var m model.ContentModel
	err := db.WithContext(ctx).
		Where("slug = ? AND is_published = ? AND is_active = ?", strings.TrimSpace(slug), true, true).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, MsgContentNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(&model.ContentModel{}).
		Where("id = ?", m.ID).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error; err != nil {
		return nil, err
	}
	m.ViewsCount++
	return &m, nil
}

// AdminList: semua konten termasuk draft
func AdminList(ctx context.Context, db *gorm.DB, contentType, search string, offset, limit int) ([]model.ContentModel, int64, error) {
	q := db.WithContext(ctx).Model(&model.ContentModel{})
	if contentType != "" {
		q = q.Where("content_type = ?", contentType)
	}
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(slug) LIKE ?", like, like)
	}
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.ContentModel
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error
	return rows, total, err
}

func Get(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.ContentModel, error) {
	var m model.ContentModel
	err := db.WithContext(ctx).Where("id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, MsgContentNotFound)
	}
	return &m, err
}

func Create(ctx context.Context, db *gorm.DB, adminID uuid.UUID, req dto.CreateContentRequest, ip string, now time.Time) (*model.ContentModel, error) {
	title := helper.SanitizeText(req.Title)
	body := helper.SanitizeHTML(req.Body)
	if title == "" || body == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, helper.MsgAllFieldsRequired)
	}
	slug, err := helper.GenerateUniqueSlug(db.WithContext(ctx), slugOpts, title)
	if err != nil {
		return nil, err
	}
	m := model.ContentModel{
		ContentType: req.ContentType,
		Title:       title,
		Slug:        slug,
		Excerpt:     helper.StrPtr(helper.SanitizeText(req.Excerpt)),
		Body:        body,
		CoverURL:    helper.StrPtr(req.CoverURL),
		MediaURL:    helper.StrPtr(req.MediaURL),
		Author:      helper.StrPtr(helper.SanitizeText(req.Author)),
		Tags:        dbtype.StringArray(dto.CleanTags(req.Tags)),
		IsPublished: req.IsPublished,
		IsActive:    true,
		CreatedBy:   &adminID,
	}
	if m.IsPublished {
		t := now
		m.PublishedAt = &t
	}
	if err := db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	logService.Log(ctx, db, logService.Entry{
		UserID: &adminID, Action: "content_created", EntityType: "site_content",
		EntityID: m.ID.String(), Description: m.Title, IPAddress: ip,
	})
	return &m, nil
}

func Update(ctx context.Context, db *gorm.DB, adminID, id uuid.UUID, req dto.UpdateContentRequest, ip string, now time.Time) (*model.ContentModel, error) {
	m, err := Get(ctx, db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.ContentType != nil {
		updates["content_type"] = *req.ContentType
	}
	if req.Title != nil {
		title := helper.SanitizeText(*req.Title)
		if title == "" {
			return nil, fiber.NewError(fiber.StatusBadRequest, helper.MsgInvalidData)
		}
		if title != m.Title {
			opts := slugOpts
			opts.ExcludeID = m.ID
			slug, err := helper.GenerateUniqueSlug(db.WithContext(ctx), opts, title)
			if err != nil {
				return nil, err
			}
			updates["title"] = title
			updates["slug"] = slug
		}
	}
	if req.Excerpt != nil {
		updates["excerpt"] = helper.StrPtr(helper.SanitizeText(*req.Excerpt))
	}
	if req.Body != nil {
		body := helper.SanitizeHTML(*req.Body)
		if body == "" {
			return nil, fiber.NewError(fiber.StatusBadRequest, helper.MsgInvalidData)
		}
		updates["body"] = body
	}
	if req.CoverURL != nil {
		updates["cover_url"] = helper.StrPtr(*req.CoverURL)
	}
	if req.MediaURL != nil {
		updates["media_url"] = helper.StrPtr(*req.MediaURL)
	}
	if req.Author != nil {
		updates["author"] = helper.StrPtr(helper.SanitizeText(*req.Author))
	}
	if req.Tags != nil {
		updates["tags"] = dbtype.StringArray(dto.CleanTags(*req.Tags))
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.IsPublished != nil {
		updates["is_published"] = *req.IsPublished
		if *req.IsPublished && m.PublishedAt == nil {
			updates["published_at"] = now
		}
	}
	if len(updates) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, helper.MsgNoDataToUpdate)
	}

	if err := db.WithContext(ctx).Model(m).Updates(updates).Error; err != nil {
		return nil, err
	}
	logService.Log(ctx, db, logService.Entry{
		UserID: &adminID, Action: "content_updated", EntityType: "site_content",
		EntityID: m.ID.String(), IPAddress: ip,
	})
	return Get(ctx, db, id)
}

func Delete(ctx context.Context, db *gorm.DB, adminID, id uuid.UUID, ip string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&model.ContentModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, MsgContentNotFound)
	}
	logService.Log(ctx, db, logService.Entry{
		UserID: &adminID, Action: "content_deleted", EntityType: "site_content",
		EntityID: id.String(), IPAddress: ip,
	})
	return nil
}
