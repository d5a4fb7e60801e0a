package admin

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"itqan_backend/internals/constants"
	authHelper "itqan_backend/internals/features/users/auth/helper"
	userModel "itqan_backend/internals/features/users/users/model"
	helper "itqan_backend/internals/helpers"
)

// EnsureAdmin membuat admin kalau email belum terdaftar.
// Email yang sudah ada dipromosikan jadi admin aktif, password tidak diubah.
func EnsureAdmin(ctx context.Context, db *gorm.DB, email, password, name string) (*userModel.UserModel, bool, error) {
	email = helper.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, false, errors.New("email dan password admin wajib diisi")
	}
	if len(password) < 6 {
		return nil, false, errors.New(helper.MsgPasswordTooShort)
	}
	if strings.TrimSpace(name) == "" {
		name = "مدير المنصة"
	}

	var existing userModel.UserModel
	err := db.WithContext(ctx).Where("email = ?", email).Take(&existing).Error
	if err == nil {
		if err := db.WithContext(ctx).Model(&existing).Updates(map[string]any{
			"role":            constants.RoleAdmin,
			"is_active":       true,
			"email_verified":  true,
			"approval_status": constants.ApprovalApproved,
		}).Error; err != nil {
			return nil, false, err
		}
		zap.L().Info("admin sudah ada, dipastikan aktif", zap.String("email", email))
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	hash, err := authHelper.HashPassword(password)
	if err != nil {
		return nil, false, err
	}
	u := userModel.UserModel{
		Name:           strings.TrimSpace(name),
		Email:          email,
		PasswordHash:   hash,
		Role:           constants.RoleAdmin,
		IsActive:       true,
		EmailVerified:  true,
		ApprovalStatus: constants.ApprovalApproved,
	}
	if err := db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, false, err
	}
	zap.L().Info("✅ admin dibuat", zap.String("email", email))
	return &u, true, nil
}
