package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultDurationMinutes = 30
	DefaultPlatform        = "google_meet"
)

// BookingModel sesi koreksi live antara student & reader
type BookingModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"student_id"`
	ReaderID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"reader_id"`
	RecitationID    *uuid.UUID `gorm:"type:uuid;index" json:"recitation_id,omitempty"`
	SlotStart       time.Time  `gorm:"not null;index" json:"slot_start"`
	SlotEnd         time.Time  `gorm:"not null" json:"slot_end"`
	DurationMinutes int        `gorm:"not null" json:"duration_minutes"`
	Status          string     `gorm:"type:varchar(20);not null;index" json:"status"`
	Notes           *string    `gorm:"type:text" json:"notes,omitempty"`
	MeetingLink     *string    `gorm:"type:text" json:"meeting_link,omitempty"`
	Platform        string     `gorm:"size:30;not null" json:"platform"`
	CancelledBy     *uuid.UUID `gorm:"type:uuid" json:"cancelled_by,omitempty"`
	CancelReason    *string    `gorm:"type:text" json:"cancel_reason,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BookingModel) TableName() string {
	return "bookings"
}

func (b *BookingModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// IsParticipant: student atau reader booking ini
func (b *BookingModel) IsParticipant(userID uuid.UUID) bool {
	return b.StudentID == userID || b.ReaderID == userID
}

// OtherParty: lawan bicara dari userID (uuid.Nil kalau bukan peserta)
func (b *BookingModel) OtherParty(userID uuid.UUID) uuid.UUID {
	switch userID {
	case b.StudentID:
		return b.ReaderID
	case b.ReaderID:
		return b.StudentID
	}
	return uuid.Nil
}
