package service

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"itqan_backend/internals/features/bookings/bookings/dto"
	"itqan_backend/internals/features/bookings/bookings/model"
)

const commentColumns = "bc.*, u.name AS author_name, u.role AS author_role"

func commentQuery(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Table("booking_comments bc").
		Select(commentColumns).
		Joins("JOIN users u ON u.id = bc.user_id")
}

func ListComments(ctx context.Context, db *gorm.DB, v Viewer, bookingID uuid.UUID) ([]dto.CommentItem, error) {
	if _, err := loadAccessible(ctx, db, v, bookingID); err != nil {
		return nil, err
	}
	var out []dto.CommentItem
	err := commentQuery(ctx, db).
		Where("bc.booking_id = ?", bookingID).
		Order("bc.created_at ASC").
		Scan(&out).Error
	return out, err
}

func AddComment(ctx context.Context, db *gorm.DB, v Viewer, bookingID uuid.UUID, req dto.CommentRequest) (*dto.CommentItem, error) {
	text := strings.TrimSpace(req.CommentText)
	if text == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "نص التعليق مطلوب")
	}
	if _, err := loadAccessible(ctx, db, v, bookingID); err != nil {
		return nil, err
	}

	c := model.BookingCommentModel{BookingID: bookingID, UserID: v.ID, CommentText: text}
	if err := db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, err
	}
	var item dto.CommentItem
	if err := commentQuery(ctx, db).Where("bc.id = ?", c.ID).Take(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}
