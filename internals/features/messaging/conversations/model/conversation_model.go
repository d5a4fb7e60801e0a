package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConversationModel percakapan dua pihak: student↔reader, atau admin↔(student|reader)
type ConversationModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID     *uuid.UUID `gorm:"type:uuid;index" json:"student_id,omitempty"`
	ReaderID      *uuid.UUID `gorm:"type:uuid;index" json:"reader_id,omitempty"`
	AdminID       *uuid.UUID `gorm:"type:uuid;index" json:"admin_id,omitempty"`
	LastMessageAt *time.Time `gorm:"index" json:"last_message_at,omitempty"`
	LastMessage   *string    `gorm:"type:text" json:"last_message,omitempty"`
	StudentUnread int        `gorm:"not null" json:"student_unread"`
	ReaderUnread  int        `gorm:"not null" json:"reader_unread"`
	AdminUnread   int        `gorm:"not null" json:"admin_unread"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ConversationModel) TableName() string {
	return "conversations"
}

func (m *ConversationModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func eq(p *uuid.UUID, id uuid.UUID) bool { return p != nil && *p == id }

// UnreadColumn kolom counter milik userID ("" kalau bukan anggota)
func (m *ConversationModel) UnreadColumn(userID uuid.UUID) string {
	switch {
	case eq(m.StudentID, userID):
		return "student_unread"
	case eq(m.ReaderID, userID):
		return "reader_unread"
	case eq(m.AdminID, userID):
		return "admin_unread"
	}
	return ""
}

func (m *ConversationModel) IsMember(userID uuid.UUID) bool {
	return m.UnreadColumn(userID) != ""
}

// Other: anggota lain selain userID
func (m *ConversationModel) Other(userID uuid.UUID) (uuid.UUID, bool) {
	for _, p := range []*uuid.UUID{m.StudentID, m.ReaderID, m.AdminID} {
		if p != nil && *p != userID {
			return *p, true
		}
	}
	return uuid.Nil, false
}
