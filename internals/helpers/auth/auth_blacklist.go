package helper

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "itqan_backend/internals/features/users/auth/model"
)

func hmacHex(msg, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(msg))
	return hex.EncodeToString(m.Sum(nil))
}

// Blacklist simpan HMAC(token) sampai expiresAt (token mentah tidak pernah disimpan).
func Blacklist(ctx context.Context, db *gorm.DB, rawToken, secret string, expiresAt time.Time) error {
	if db == nil || strings.TrimSpace(rawToken) == "" || strings.TrimSpace(secret) == "" {
		return nil
	}
	row := authModel.TokenBlacklist{
		Token:     hmacHex(rawToken, secret),
		ExpiredAt: expiresAt.UTC(),
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"expired_at"}),
	}).Create(&row).Error
}

// IsBlacklisted: ada baris yang belum lewat expired_at?
func IsBlacklisted(ctx context.Context, db *gorm.DB, rawToken, secret string) (bool, error) {
	if db == nil || strings.TrimSpace(rawToken) == "" || strings.TrimSpace(secret) == "" {
		return false, nil
	}
	var cnt int64
	err := db.WithContext(ctx).Model(&authModel.TokenBlacklist{}).
		Where("token = ? AND expired_at > ?", hmacHex(rawToken, secret), time.Now().UTC()).
		Count(&cnt).Error
	return cnt > 0, err
}

// PurgeExpiredBlacklist hapus baris yang sudah lewat.
func PurgeExpiredBlacklist(ctx context.Context, db *gorm.DB) (int64, error) {
	res := db.WithContext(ctx).
		Where("expired_at <= ?", time.Now().UTC()).
		Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
