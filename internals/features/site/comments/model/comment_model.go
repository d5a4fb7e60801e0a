package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ContentID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_site_comments_content" json:"content_id"`
	ContentType string     `gorm:"size:20;not null;index:idx_site_comments_content" json:"content_type"`
	AuthorName  string     `gorm:"size:150;not null" json:"author_name"`
	AuthorEmail string     `gorm:"size:255;not null" json:"author_email,omitempty"`
	CommentText string     `gorm:"type:text;not null" json:"comment_text"`
	IsApproved  bool       `gorm:"not null;index" json:"is_approved"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	IPHash      *string    `gorm:"column:ip_hash;size:16" json:"-"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (CommentModel) TableName() string {
	return "site_comments"
}

func (m *CommentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
