package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"itqan_backend/internals/constants"
	notifService "itqan_backend/internals/features/home/notifications/service"
	"itqan_backend/internals/features/messaging/conversations/dto"
	"itqan_backend/internals/features/messaging/conversations/model"
)

var (
	errConversationNotFound = fiber.NewError(fiber.StatusNotFound, "المحادثة غير موجودة")
	errNotMember            = fiber.NewError(fiber.StatusForbidden, "غير مصرح لك بالوصول إلى هذه المحادثة")
)

type Viewer struct {
	ID   uuid.UUID
	Role string
}

const convColumns = "c.*, s.name AS student_name, r.name AS reader_name, a.name AS admin_name"

func convQuery(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Table("conversations c").
		Joins("LEFT JOIN users s ON s.id = c.student_id").
		Joins("LEFT JOIN users r ON r.id = c.reader_id").
		Joins("LEFT JOIN users a ON a.id = c.admin_id")
}

// last_message_at DESC NULLS LAST (portable)
const convOrder = "CASE WHEN c.last_message_at IS NULL THEN 1 ELSE 0 END, c.last_message_at DESC, c.created_at DESC"

func roleColumn(role string) string {
	switch role {
	case constants.RoleStudent:
		return "student_id"
	case constants.RoleReader:
		return "reader_id"
	case constants.RoleAdmin:
		return "admin_id"
	}
	return ""
}

// decorate isi nama & unread dari sudut pandang viewer
func decorate(items []dto.ConversationItem, viewerID uuid.UUID) {
	for i := range items {
		it := &items[i]
		if col := it.UnreadColumn(viewerID); col != "" {
			switch col {
			case "student_unread":
				it.UnreadCount = it.StudentUnread
			case "reader_unread":
				it.UnreadCount = it.ReaderUnread
			default:
				it.UnreadCount = it.AdminUnread
			}
		}
		other, ok := it.Other(viewerID)
		if !ok {
			continue
		}
		it.OtherID = &other
		switch {
		case it.StudentID != nil && *it.StudentID == other:
			it.OtherName = it.StudentName
		case it.ReaderID != nil && *it.ReaderID == other:
			it.OtherName = it.ReaderName
		default:
			it.OtherName = it.AdminName
		}
	}
}

func List(ctx context.Context, db *gorm.DB, v Viewer) ([]dto.ConversationItem, error) {
	col := roleColumn(v.Role)
	if col == "" {
		return []dto.ConversationItem{}, nil
	}
	var out []dto.ConversationItem
	if err := convQuery(ctx, db).
		Select(convColumns).
		Where("c."+col+" = ?", v.ID).
		Order(convOrder).
		Scan(&out).Error; err != nil {
		return nil, err
	}
	decorate(out, v.ID)
	return out, nil
}

// AdminListAll semua percakapan (monitoring admin)
func AdminListAll(ctx context.Context, db *gorm.DB, offset, limit int) ([]dto.ConversationItem, int64, error) {
	q := convQuery(ctx, db).Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []dto.ConversationItem
	if err := q.Select(convColumns).Order(convOrder).Offset(offset).Limit(limit).Scan(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func findConversation(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.ConversationModel, error) {
	var c model.ConversationModel
	if err := db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errConversationNotFound
		}
		return nil, err
	}
	return &c, nil
}

func loadMember(ctx context.Context, db *gorm.DB, v Viewer, id uuid.UUID) (*model.ConversationModel, error) {
	c, err := findConversation(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if !c.IsMember(v.ID) {
		return nil, errNotMember
	}
	return c, nil
}

func requireUser(ctx context.Context, db *gorm.DB, raw, role string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "معرف المستخدم غير صالح")
	}
	var n int64
	if err := db.WithContext(ctx).Table("users").Where("id = ? AND role = ?", id, role).Count(&n).Error; err != nil {
		return uuid.Nil, err
	}
	if n == 0 {
		return uuid.Nil, fiber.NewError(fiber.StatusNotFound, "المستخدم غير موجود")
	}
	return id, nil
}

// Start cari atau buat percakapan. created=true kalau baru dibuat.
func Start(ctx context.Context, db *gorm.DB, v Viewer, req dto.StartConversationRequest) (*model.ConversationModel, bool, error) {
	conv := model.ConversationModel{}
	q := db.WithContext(ctx).Model(&model.ConversationModel{})

	switch v.Role {
	case constants.RoleAdmin:
		if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.UserRole) == "" {
			return nil, false, fiber.NewError(fiber.StatusBadRequest, "user_id و user_role مطلوبان")
		}
		role := strings.TrimSpace(req.UserRole)
		if role != constants.RoleStudent && role != constants.RoleReader {
			return nil, false, fiber.NewError(fiber.StatusBadRequest, "نوع المستخدم غير صالح")
		}
		target, err := requireUser(ctx, db, req.UserID, role)
		if err != nil {
			return nil, false, err
		}
		admin := v.ID
		conv.AdminID = &admin
		if role == constants.RoleStudent {
			conv.StudentID = &target
			q = q.Where("admin_id = ? AND student_id = ? AND reader_id IS NULL", admin, target)
		} else {
			conv.ReaderID = &target
			q = q.Where("admin_id = ? AND reader_id = ? AND student_id IS NULL", admin, target)
		}

	case constants.RoleStudent:
		if strings.TrimSpace(req.ReaderID) == "" {
			return nil, false, fiber.NewError(fiber.StatusBadRequest, "معرف المقرئ مطلوب")
		}
		reader, err := requireUser(ctx, db, req.ReaderID, constants.RoleReader)
		if err != nil {
			return nil, false, err
		}
		student := v.ID
		conv.StudentID, conv.ReaderID = &student, &reader
		q = q.Where("student_id = ? AND reader_id = ? AND admin_id IS NULL", student, reader)

	case constants.RoleReader:
		if strings.TrimSpace(req.StudentID) == "" {
			return nil, false, fiber.NewError(fiber.StatusBadRequest, "معرف الطالب مطلوب")
		}
		student, err := requireUser(ctx, db, req.StudentID, constants.RoleStudent)
		if err != nil {
			return nil, false, err
		}
		reader := v.ID
		conv.StudentID, conv.ReaderID = &student, &reader
		q = q.Where("student_id = ? AND reader_id = ? AND admin_id IS NULL", student, reader)

	default:
		return nil, false, fiber.NewError(fiber.StatusForbidden, "غير مصرح")
	}

	var existing model.ConversationModel
	err := q.Take(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	if err := db.WithContext(ctx).Create(&conv).Error; err != nil {
		return nil, false, err
	}
	return &conv, true, nil
}

// Delete percakapan beserta pesannya (anggota atau admin)
func Delete(ctx context.Context, db *gorm.DB, v Viewer, id uuid.UUID) error {
	c, err := findConversation(ctx, db, id)
	if err != nil {
		return err
	}
	if v.Role != constants.RoleAdmin && !c.IsMember(v.ID) {
		return errNotMember
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&model.MessageModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(c).Error
	})
}

// UnreadCounts notifikasi belum dibaca + jumlah counter percakapan milik viewer
func UnreadCounts(ctx context.Context, db *gorm.DB, v Viewer) (*dto.UnreadCounts, error) {
	notifs, err := notifService.CountUnread(ctx, db, v.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.UnreadCounts{Notifications: notifs}

	col := roleColumn(v.Role)
	if col == "" {
		return out, nil
	}
	counter := strings.TrimSuffix(col, "_id") + "_unread"
	var sum struct{ N int64 }
	if err := db.WithContext(ctx).
		Table("conversations").
		Select("COALESCE(SUM("+counter+"), 0) AS n").
		Where(col+" = ?", v.ID).
		Scan(&sum).Error; err != nil {
		return nil, err
	}
	out.Messages = sum.N
	return out, nil
}
