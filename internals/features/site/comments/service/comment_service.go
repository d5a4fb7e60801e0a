package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"itqan_backend/internals/constants"
	"itqan_backend/internals/features/site/comments/dto"
	"itqan_backend/internals/features/site/comments/model"
	contentModel "itqan_backend/internals/features/site/contents/model"
	logService "itqan_backend/internals/features/system/activity_logs/service"
	helper "itqan_backend/internals/helpers"
)

const (
	MsgContentParamsRequired = "content_id و content_type مطلوبان"
	MsgInvalidEmail          = "البريد الإلكتروني غير صحيح"
	MsgCommentLength         = "يجب أن يكون التعليق بين 10 و 5000 حرف"
	MsgCommentNotFound       = "التعليق غير موجود"
	MsgInvalidAction         = "إجراء غير صحيح"
	MsgCommentSubmitted      = "تم إرسال تعليقك بنجاح وسيتم مراجعته قبل النشر"

	minCommentLen = 10
	maxCommentLen = 5000

	ActionApprove = "approve"
	ActionReject  = "reject"

	StatusPending  = "pending"
	StatusApproved = "approved"
)

// ListApproved: hanya komentar yang disetujui, terbaru dulu
func ListApproved(ctx context.Context, db *gorm.DB, contentID, contentType string) ([]dto.PublicComment, error) {
	contentID, contentType = strings.TrimSpace(contentID), strings.TrimSpace(contentType)
	if contentID == "" || contentType == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, MsgContentParamsRequired)
	}
	cid, err := uuid.Parse(contentID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, helper.MsgInvalidID)
	}

	var rows []model.CommentModel
	if err := db.WithContext(ctx).
		Where("content_id = ? AND content_type = ? AND is_approved = ?", cid, contentType, true).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]dto.PublicComment, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToPublic(r))
	}
	return out, nil
}

// Submit menyimpan komentar publik (belum disetujui)
func Submit(ctx context.Context, db *gorm.DB, req dto.CreateCommentRequest, ip string) (*dto.PublicComment, error) {
	name := helper.SanitizeText(req.AuthorName)
	email := helper.NormalizeEmail(req.AuthorEmail)
	text := helper.SanitizeText(req.CommentText)
	ctype := strings.TrimSpace(req.ContentType)

	if strings.TrimSpace(req.ContentID) == "" || ctype == "" || name == "" || email == "" || text == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, helper.MsgAllFieldsRequired)
	}
	if err := helper.Validator().Var(email, "email"); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, MsgInvalidEmail)
	}
	if n := utf8.RuneCountInString(text); n < minCommentLen || n > maxCommentLen {
		return nil, fiber.NewError(fiber.StatusBadRequest, MsgCommentLength)
	}
	if !constants.InSlice(ctype, contentModel.ContentTypes) {
		return nil, fiber.NewError(fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	cid, err := uuid.Parse(strings.TrimSpace(req.ContentID))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, helper.MsgInvalidID)
	}

	m := model.CommentModel{
		ContentID:   cid,
		ContentType: ctype,
		AuthorName:  name,
		AuthorEmail: email,
		CommentText: text,
	}
	if ip != "" {
		h := helper.HashIP(ip, helper.IPHashSalt)
		m.IPHash = &h
	}
	if err := db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	out := dto.ToPublic(m)
	return &out, nil
}

// AdminList status: pending | approved | "" (semua)
func AdminList(ctx context.Context, db *gorm.DB, status string, offset, limit int) ([]dto.AdminComment, int64, error) {
	q := db.WithContext(ctx).Table("site_comments AS c")
	switch status {
	case StatusPending:
		q = q.Where("c.is_approved = ?", false)
	case StatusApproved:
		q = q.Where("c.is_approved = ?", true)
	case "":
	default:
		return nil, 0, fiber.NewError(fiber.StatusBadRequest, helper.MsgInvalidData)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []dto.AdminComment
	err := q.Select("c.*, sc.title AS content_title").
		Joins("LEFT JOIN site_contents sc ON sc.id = c.content_id").
		Order("c.created_at DESC").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	return rows, total, err
}

// Moderate: approve -> is_approved + approved_at, reject -> hapus
func Moderate(ctx context.Context, db *gorm.DB, adminID uuid.UUID, req dto.ModerateRequest, ip string, now time.Time) (*model.CommentModel, error) {
	if strings.TrimSpace(req.ID) == "" || strings.TrimSpace(req.Action) == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "id و action مطلوبان")
	}
	id, err := uuid.Parse(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, helper.MsgInvalidID)
	}
	if req.Action != ActionApprove && req.Action != ActionReject {
		return nil, fiber.NewError(fiber.StatusBadRequest, MsgInvalidAction)
	}

	var m model.CommentModel
	err = db.WithContext(ctx).Where("id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, MsgCommentNotFound)
	}
	if err != nil {
		return nil, err
	}

	if req.Action == ActionApprove {
		if err := db.WithContext(ctx).Model(&m).Updates(map[string]any{
			"is_approved": true,
			"approved_at": now,
		}).Error; err != nil {
			return nil, err
		}
		m.IsApproved, m.ApprovedAt = true, &now
	} else {
		if err := db.WithContext(ctx).Delete(&m).Error; err != nil {
			return nil, err
		}
	}

	logService.Log(ctx, db, logService.Entry{
		UserID: &adminID, Action: "comment_" + req.Action, EntityType: "site_comment",
		EntityID: id.String(), IPAddress: ip,
	})
	if req.Action == ActionReject {
		return nil, nil
	}
	return &m, nil
}
