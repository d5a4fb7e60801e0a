package dto

import (
	"time"

	"github.com/google/uuid"

	"itqan_backend/internals/features/site/comments/model"
)

type CreateCommentRequest struct {
	ContentID   string `json:"content_id"`
	ContentType string `json:"content_type"`
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
	CommentText string `json:"comment_text"`
}

type ModerateRequest struct {
	ID     string `json:"id"`
	Action string `json:"action"`
}

// PublicComment tanpa email penulis
type PublicComment struct {
	ID          uuid.UUID `json:"id"`
	ContentID   uuid.UUID `json:"content_id"`
	ContentType string    `json:"content_type"`
	AuthorName  string    `json:"author_name"`
	CommentText string    `json:"comment_text"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToPublic(m model.CommentModel) PublicComment {
	return PublicComment{
		ID:          m.ID,
		ContentID:   m.ContentID,
		ContentType: m.ContentType,
		AuthorName:  m.AuthorName,
		CommentText: m.CommentText,
		CreatedAt:   m.CreatedAt,
	}
}

// AdminComment: untuk moderasi, termasuk judul konten
type AdminComment struct {
	model.CommentModel
	ContentTitle *string `json:"content_title,omitempty"`
}
