package dto

import (
	"itqan_backend/internals/features/home/announcements/model"
)

type CreateAnnouncementRequest struct {
	Title          string `json:"title" validate:"required,min=3,max=255"`
	Content        string `json:"content" validate:"required"`
	TargetAudience string `json:"target_audience" validate:"required,oneof=all students readers"`
	Priority       string `json:"priority" validate:"omitempty,oneof=normal high"`
	ExpiresAt      string `json:"expires_at"`
	IsPublished    bool   `json:"is_published"`
}

type UpdateAnnouncementRequest struct {
	Title          *string `json:"title" validate:"omitempty,min=3,max=255"`
	Content        *string `json:"content"`
	TargetAudience *string `json:"target_audience" validate:"omitempty,oneof=all students readers"`
	Priority       *string `json:"priority" validate:"omitempty,oneof=normal high"`
	ExpiresAt      *string `json:"expires_at"`
	IsPublished    *bool   `json:"is_published"`
}

type AnnouncementItem struct {
	model.AnnouncementModel
	CreatedByName *string `json:"created_by_name,omitempty"`
}
