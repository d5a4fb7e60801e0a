package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingCommentModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID   uuid.UUID `gorm:"type:uuid;not null;index" json:"booking_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	CommentText string    `gorm:"type:text;not null" json:"comment_text"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (BookingCommentModel) TableName() string {
	return "booking_comments"
}

func (m *BookingCommentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
