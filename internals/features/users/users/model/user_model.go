package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel merepresentasikan tabel users (student / reader / admin)
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:150;not null" json:"name"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Role         string    `gorm:"type:varchar(20);not null;index" json:"role"`
	Gender       *string   `gorm:"type:varchar(10)" json:"gender,omitempty"`
	Phone        *string   `gorm:"size:30" json:"phone,omitempty"`
	City         *string   `gorm:"size:100" json:"city,omitempty"`
	AvatarURL    *string   `gorm:"column:avatar_url;type:text" json:"avatar_url,omitempty"`
	GoogleID     *string   `gorm:"column:google_id;size:255;uniqueIndex" json:"-"`

	IsActive       bool   `gorm:"not null" json:"is_active"`
	ApprovalStatus string `gorm:"type:varchar(20);not null;index" json:"approval_status"`
	EmailVerified  bool   `gorm:"not null" json:"email_verified"`

	VerificationCode          *string    `gorm:"size:10" json:"-"`
	VerificationCodeExpiresAt *time.Time `json:"-"`
	ResetCode                 *string    `gorm:"size:10" json:"-"`
	ResetCodeExpiresAt        *time.Time `json:"-"`

	IsLocked          bool       `gorm:"not null" json:"is_locked"`
	LockedAt          *time.Time `json:"locked_at,omitempty"`
	FailedLoginCount  int        `gorm:"not null" json:"failed_login_count"`
	LastFailedLoginAt *time.Time `json:"last_failed_login_at,omitempty"`
	LastLoginAt       *time.Time `json:"last_login_at,omitempty"`

	TOTPSecret  *string `gorm:"column:totp_secret;size:64" json:"-"`
	TOTPEnabled bool    `gorm:"column:totp_enabled;not null" json:"totp_enabled"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// GenderValue: "" kalau belum diisi
func (u *UserModel) GenderValue() string {
	if u.Gender == nil {
		return ""
	}
	return *u.Gender
}
