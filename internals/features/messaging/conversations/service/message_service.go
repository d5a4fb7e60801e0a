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
	"itqan_backend/internals/features/messaging/conversations/dto"
	"itqan_backend/internals/features/messaging/conversations/model"
)

const previewRunes = 100

var errMessageNotFound = fiber.NewError(fiber.StatusNotFound, "الرسالة غير موجودة")

func preview(s string) string {
	if utf8.RuneCountInString(s) <= previewRunes {
		return s
	}
	return string([]rune(s)[:previewRunes]) + "…"
}

const messageColumns = "m.*, u.name AS sender_name, u.role AS sender_role"

// Messages daftar pesan + tandai pesan untuk viewer sebagai dibaca
func Messages(ctx context.Context, db *gorm.DB, v Viewer, convID uuid.UUID) ([]dto.MessageItem, error) {
	c, err := loadMember(ctx, db, v, convID)
	if err != nil {
		return nil, err
	}
	var out []dto.MessageItem
	if err := db.WithContext(ctx).
		Table("messages m").
		Select(messageColumns).
		Joins("JOIN users u ON u.id = m.sender_id").
		Where("m.conversation_id = ?", convID).
		Order("m.created_at ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.MessageModel{}).
			Where("conversation_id = ? AND recipient_id = ? AND is_read = ?", convID, v.ID, false).
			Updates(map[string]any{"is_read": true, "read_at": now}).Error; err != nil {
			return err
		}
		return tx.Model(c).UpdateColumn(c.UnreadColumn(v.ID), 0).Error
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Send kirim pesan ke anggota lain; naikkan counter unread penerima
func Send(ctx context.Context, db *gorm.DB, v Viewer, convID uuid.UUID, req dto.SendMessageRequest) (*model.MessageModel, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "نص الرسالة مطلوب")
	}
	c, err := loadMember(ctx, db, v, convID)
	if err != nil {
		return nil, err
	}
	recipient, ok := c.Other(v.ID)
	if !ok {
		return nil, errNotMember
	}

	msgType := strings.TrimSpace(req.MessageType)
	if msgType == "" {
		msgType = model.MessageTypeText
	}
	msg := model.MessageModel{
		ConversationID: convID,
		SenderID:       v.ID,
		RecipientID:    recipient,
		Content:        content,
		MessageType:    msgType,
	}
	if u := strings.TrimSpace(req.AttachmentURL); u != "" {
		msg.AttachmentURL = &u
	}

	counter := c.UnreadColumn(recipient)
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}
		return tx.Model(c).Updates(map[string]any{
			"last_message_at": msg.CreatedAt,
			"last_message":    preview(content),
			counter:           gorm.Expr(counter + " + 1"),
			"updated_at":      time.Now().UTC(),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func findMessage(ctx context.Context, db *gorm.DB, convID, msgID uuid.UUID) (*model.MessageModel, error) {
	var m model.MessageModel
	if err := db.WithContext(ctx).Where("id = ? AND conversation_id = ?", msgID, convID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errMessageNotFound
		}
		return nil, err
	}
	return &m, nil
}

// EditMessage hanya oleh pengirim
func EditMessage(ctx context.Context, db *gorm.DB, v Viewer, convID, msgID uuid.UUID, req dto.EditMessageRequest) (*model.MessageModel, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "محتوى الرسالة مطلوب")
	}
	m, err := findMessage(ctx, db, convID, msgID)
	if err != nil {
		return nil, err
	}
	if m.SenderID != v.ID {
		return nil, fiber.NewError(fiber.StatusForbidden, "غير مصرح لك بتعديل هذه الرسالة")
	}
	if err := db.WithContext(ctx).Model(m).Updates(map[string]any{"content": content, "updated_at": time.Now().UTC()}).Error; err != nil {
		return nil, err
	}
	return findMessage(ctx, db, convID, msgID)
}

// DeleteMessage oleh pengirim atau admin
func DeleteMessage(ctx context.Context, db *gorm.DB, v Viewer, convID, msgID uuid.UUID) error {
	m, err := findMessage(ctx, db, convID, msgID)
	if err != nil {
		return err
	}
	if m.SenderID != v.ID && v.Role != constants.RoleAdmin {
		return fiber.NewError(fiber.StatusForbidden, "غير مصرح لك بحذف هذه الرسالة")
	}
	return db.WithContext(ctx).Delete(m).Error
}
