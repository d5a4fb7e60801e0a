package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserSessionModel satu baris per token sesi yang di-issue (login/verify/google).
type UserSessionModel struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Token        string    `gorm:"column:token;type:text;not null;uniqueIndex" json:"-"`
	IPAddress    *string   `gorm:"column:ip_address;type:varchar(64)" json:"ip_address,omitempty"`
	UserAgent    string    `gorm:"column:user_agent;type:text" json:"user_agent"`
	LastActiveAt time.Time `gorm:"column:last_active_at;not null;index" json:"last_active_at"`
	ExpiresAt    time.Time `gorm:"column:expires_at;not null;index" json:"expires_at"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (UserSessionModel) TableName() string {
	return "user_sessions"
}

func (m *UserSessionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.LastActiveAt.IsZero() {
		m.LastActiveAt = time.Now().UTC()
	}
	return nil
}
