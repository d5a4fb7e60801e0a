package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AudienceAll      = "all"
	AudienceStudents = "students"
	AudienceReaders  = "readers"

	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

var Audiences = []string{AudienceAll, AudienceStudents, AudienceReaders}

type AnnouncementModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string     `gorm:"size:255;not null" json:"title"`
	Content        string     `gorm:"type:text;not null" json:"content"`
	TargetAudience string     `gorm:"size:20;not null;index" json:"target_audience"`
	Priority       string     `gorm:"size:20;not null" json:"priority"`
	IsPublished    bool       `gorm:"not null;index" json:"is_published"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	CreatedBy      *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AnnouncementModel) TableName() string {
	return "announcements"
}

func (m *AnnouncementModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
