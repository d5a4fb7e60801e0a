// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authModel "itqan_backend/internals/features/users/auth/model"
	userModel "itqan_backend/internals/features/users/users/model"
)

/* ====================== USER ====================== */

func FindUserByEmail(ctx context.Context, db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByGoogleID(ctx context.Context, db *gorm.DB, googleID string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.WithContext(ctx).Where("google_id = ?", googleID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func EmailExists(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&userModel.UserModel{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}

func CreateUser(ctx context.Context, db *gorm.DB, user *userModel.UserModel) error {
	return db.WithContext(ctx).Create(user).Error
}

func UpdateUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, fields map[string]any) error {
	return db.WithContext(ctx).Model(&userModel.UserModel{}).Where("id = ?", userID).Updates(fields).Error
}

func UpdateUserPassword(ctx context.Context, db *gorm.DB, userID uuid.UUID, hash string) error {
	return UpdateUser(ctx, db, userID, map[string]any{"password_hash": hash})
}

/* ====================== SESSIONS ====================== */

func CreateSession(ctx context.Context, db *gorm.DB, s *authModel.UserSessionModel) error {
	return db.WithContext(ctx).Create(s).Error
}

func DeleteSessionByToken(ctx context.Context, db *gorm.DB, token string) error {
	return db.WithContext(ctx).Where("token = ?", token).Delete(&authModel.UserSessionModel{}).Error
}

// TouchSession update last_active_at + ip. false kalau baris belum ada.
func TouchSession(ctx context.Context, db *gorm.DB, token string, ip *string, now time.Time) (bool, error) {
	res := db.WithContext(ctx).Model(&authModel.UserSessionModel{}).
		Where("token = ?", token).
		Updates(map[string]any{"last_active_at": now, "ip_address": ip})
	return res.RowsAffected > 0, res.Error
}

func CleanupExpiredSessions(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&authModel.UserSessionModel{})
	return res.RowsAffected, res.Error
}
