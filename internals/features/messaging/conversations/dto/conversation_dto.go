package dto

import (
	"github.com/google/uuid"

	"itqan_backend/internals/features/messaging/conversations/model"
)

// StartConversationRequest: admin isi user_id+user_role, student isi reader_id, reader isi student_id
type StartConversationRequest struct {
	UserID    string `json:"user_id"`
	UserRole  string `json:"user_role"`
	ReaderID  string `json:"reader_id"`
	StudentID string `json:"student_id"`
}

type ConversationItem struct {
	model.ConversationModel
	StudentName *string    `json:"student_name,omitempty"`
	ReaderName  *string    `json:"reader_name,omitempty"`
	AdminName   *string    `json:"admin_name,omitempty"`
	OtherID     *uuid.UUID `json:"other_id,omitempty" gorm:"-"`
	OtherName   *string    `json:"other_name,omitempty" gorm:"-"`
	UnreadCount int        `json:"unread_count" gorm:"-"`
}

type SendMessageRequest struct {
	Content       string `json:"content"`
	MessageType   string `json:"message_type"`
	AttachmentURL string `json:"attachment_url"`
}

type EditMessageRequest struct {
	Content string `json:"content"`
}

type MessageItem struct {
	model.MessageModel
	SenderName string `json:"sender_name"`
	SenderRole string `json:"sender_role"`
}

type UnreadCounts struct {
	Notifications int64 `json:"notifications"`
	Messages      int64 `json:"messages"`
}
