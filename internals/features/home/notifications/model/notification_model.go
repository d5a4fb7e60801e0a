package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationModel struct {
	ID                  uuid.UUID  `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	UserID              uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index:idx_notifications_user_read,priority:1" json:"user_id"`
	Type                string     `gorm:"column:type;type:varchar(50);not null" json:"type"`
	Title               string     `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Message             string     `gorm:"column:message;type:text" json:"message"`
	Category            string     `gorm:"column:category;type:varchar(20);not null" json:"category"`
	Link                *string    `gorm:"column:link;type:text" json:"link,omitempty"`
	RelatedRecitationID *uuid.UUID `gorm:"column:related_recitation_id;type:uuid" json:"related_recitation_id,omitempty"`
	RelatedBookingID    *uuid.UUID `gorm:"column:related_booking_id;type:uuid" json:"related_booking_id,omitempty"`
	IsRead              bool       `gorm:"column:is_read;not null;index:idx_notifications_user_read,priority:2" json:"is_read"`
	ReadAt              *time.Time `gorm:"column:read_at" json:"read_at,omitempty"`
	CreatedAt           time.Time  `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func (m *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
