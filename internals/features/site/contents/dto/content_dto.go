package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"itqan_backend/internals/features/site/contents/model"
)

// ============================
// Request DTO
// ============================

type CreateContentRequest struct {
	ContentType string   `json:"content_type" validate:"required,oneof=article sermon lesson book"`
	Title       string   `json:"title" validate:"required,min=3,max=255"`
	Excerpt     string   `json:"excerpt"`
	Body        string   `json:"body" validate:"required"`
	CoverURL    string   `json:"cover_url"`
	MediaURL    string   `json:"media_url"`
	Author      string   `json:"author" validate:"omitempty,max=150"`
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"is_published"`
}

// UpdateContentRequest: partial, nil = tidak diubah
type UpdateContentRequest struct {
	ContentType *string   `json:"content_type" validate:"omitempty,oneof=article sermon lesson book"`
	Title       *string   `json:"title" validate:"omitempty,min=3,max=255"`
	Excerpt     *string   `json:"excerpt"`
	Body        *string   `json:"body"`
	CoverURL    *string   `json:"cover_url"`
	MediaURL    *string   `json:"media_url"`
	Author      *string   `json:"author" validate:"omitempty,max=150"`
	Tags        *[]string `json:"tags"`
	IsPublished *bool     `json:"is_published"`
	IsActive    *bool     `json:"is_active"`
}

// CleanTags: trim, buang kosong dan duplikat
func CleanTags(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// ============================
// Response DTO
// ============================

type ContentDTO struct {
	ID          uuid.UUID  `json:"id"`
	ContentType string     `json:"content_type"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     *string    `json:"excerpt,omitempty"`
	Body        string     `json:"body,omitempty"`
	CoverURL    *string    `json:"cover_url,omitempty"`
	MediaURL    *string    `json:"media_url,omitempty"`
	Author      *string    `json:"author,omitempty"`
	Tags        []string   `json:"tags"`
	IsPublished bool       `json:"is_published"`
	IsActive    bool       `json:"is_active"`
	ViewsCount  int64      `json:"views_count"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ============================
// Converter
// ============================

func ToContentDTO(m model.ContentModel, withBody bool) ContentDTO {
	out := ContentDTO{
		ID:          m.ID,
		ContentType: m.ContentType,
		Title:       m.Title,
		Slug:        m.Slug,
		Excerpt:     m.Excerpt,
		CoverURL:    m.CoverURL,
		MediaURL:    m.MediaURL,
		Author:      m.Author,
		Tags:        []string(m.Tags),
		IsPublished: m.IsPublished,
		IsActive:    m.IsActive,
		ViewsCount:  m.ViewsCount,
		PublishedAt: m.PublishedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if withBody {
		out.Body = m.Body
	}
	return out
}

func ToContentDTOs(rows []model.ContentModel, withBody bool) []ContentDTO {
	out := make([]ContentDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToContentDTO(r, withBody))
	}
	return out
}
