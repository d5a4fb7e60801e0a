package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
	DeviceBot     = "bot"
	DeviceUnknown = "unknown"
)

type PageViewModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PagePath   string     `gorm:"size:500;not null;index" json:"page_path"`
	Referrer   *string    `gorm:"type:text" json:"referrer,omitempty"`
	VisitorID  *string    `gorm:"size:100" json:"visitor_id,omitempty"`
	UserID     *uuid.UUID `gorm:"type:uuid" json:"user_id,omitempty"`
	DeviceType string     `gorm:"size:20;not null;index" json:"device_type"`
	Browser    *string    `gorm:"size:50" json:"browser,omitempty"`
	OS         *string    `gorm:"column:os;size:50" json:"os,omitempty"`
	Country    *string    `gorm:"size:10" json:"country,omitempty"`
	UserAgent  *string    `gorm:"size:500" json:"user_agent,omitempty"`
	IPHash     *string    `gorm:"column:ip_hash;size:16;index" json:"ip_hash,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (PageViewModel) TableName() string {
	return "page_views"
}

func (m *PageViewModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
