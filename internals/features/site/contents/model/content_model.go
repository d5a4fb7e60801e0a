package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"itqan_backend/internals/constants"
	"itqan_backend/internals/helpers/dbtype"
)

var ContentTypes = constants.ContentTypes

type ContentModel struct {
	ID          uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	ContentType string             `gorm:"size:20;not null;index" json:"content_type"`
	Title       string             `gorm:"size:255;not null" json:"title"`
	Slug        string             `gorm:"size:160;not null;uniqueIndex" json:"slug"`
	Excerpt     *string            `gorm:"type:text" json:"excerpt,omitempty"`
	Body        string             `gorm:"type:text;not null" json:"body"`
	CoverURL    *string            `gorm:"type:text" json:"cover_url,omitempty"`
	MediaURL    *string            `gorm:"type:text" json:"media_url,omitempty"`
	Author      *string            `gorm:"size:150" json:"author,omitempty"`
	Tags        dbtype.StringArray `json:"tags"`
	IsPublished bool               `gorm:"not null;index" json:"is_published"`
	IsActive    bool               `gorm:"not null" json:"is_active"`
	ViewsCount  int64              `gorm:"not null" json:"views_count"`
	PublishedAt *time.Time         `json:"published_at,omitempty"`
	CreatedBy   *uuid.UUID         `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt   time.Time          `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ContentModel) TableName() string {
	return "site_contents"
}

func (m *ContentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
