package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"itqan_backend/internals/features/home/notifications/dto"
	"itqan_backend/internals/features/home/notifications/model"
)

const ListLimit = 50

// Create menyimpan satu notifikasi. Tidak pernah mengembalikan error ke caller:
// kegagalan cukup di-log sebagai warning.
func Create(ctx context.Context, db *gorm.DB, n dto.NewNotification) {
	if db == nil || n.UserID == uuid.Nil {
		return
	}
	if err := db.WithContext(ctx).Create(n.ToModel(n.UserID)).Error; err != nil {
		zap.L().Warn("gagal membuat notifikasi",
			zap.String("user_id", n.UserID.String()),
			zap.String("type", n.Type),
			zap.Error(err),
		)
	}
}

// CreateForMany: notifikasi yang sama ke banyak user (batch insert)
func CreateForMany(ctx context.Context, db *gorm.DB, userIDs []uuid.UUID, n dto.NewNotification) {
	if db == nil || len(userIDs) == 0 {
		return
	}
	rows := make([]*model.NotificationModel, 0, len(userIDs))
	for _, uid := range userIDs {
		rows = append(rows, n.ToModel(uid))
	}
	if err := db.WithContext(ctx).CreateInBatches(rows, 500).Error; err != nil {
		zap.L().Warn("gagal membuat notifikasi massal",
			zap.Int("recipients", len(userIDs)),
			zap.String("type", n.Type),
			zap.Error(err),
		)
	}
}

// NotifyRole: kirim ke semua user aktif dengan role tertentu ("" = semua user aktif)
func NotifyRole(ctx context.Context, db *gorm.DB, role string, n dto.NewNotification) {
	if db == nil {
		return
	}
	q := db.WithContext(ctx).Table("users").Where("is_active = ?", true)
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var ids []uuid.UUID
	if err := q.Pluck("id", &ids).Error; err != nil {
		zap.L().Warn("gagal mengambil penerima notifikasi", zap.String("role", role), zap.Error(err))
		return
	}
	CreateForMany(ctx, db, ids, n)
}

func ListForUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*dto.NotificationListResponse, error) {
	out := &dto.NotificationListResponse{Notifications: []model.NotificationModel{}}
	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(ListLimit).
		Find(&out.Notifications).Error; err != nil {
		return nil, err
	}
	n, err := CountUnread(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	out.UnreadCount = n
	return out, nil
}

func CountUnread(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}

func MarkAllRead(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	res := db.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]any{"is_read": true, "read_at": time.Now().UTC()})
	return res.RowsAffected, res.Error
}

// MarkRead: false kalau notifikasi bukan milik user / tidak ada
func MarkRead(ctx context.Context, db *gorm.DB, userID, id uuid.UUID) (bool, error) {
	res := db.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{"is_read": true, "read_at": time.Now().UTC()})
	return res.RowsAffected > 0, res.Error
}
