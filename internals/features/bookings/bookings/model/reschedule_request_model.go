package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RescheduleRequestModel usulan jadwal baru dari salah satu peserta booking
type RescheduleRequestModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID         uuid.UUID `gorm:"type:uuid;not null;index" json:"booking_id"`
	RequestedBy       uuid.UUID `gorm:"type:uuid;not null" json:"requested_by"`
	RequestedByRole   string    `gorm:"type:varchar(20);not null" json:"requested_by_role"`
	ProposedSlotStart time.Time `gorm:"not null" json:"proposed_slot_start"`
	ProposedSlotEnd   time.Time `gorm:"not null" json:"proposed_slot_end"`
	Status            string    `gorm:"type:varchar(20);not null;index" json:"status"`
	RejectionReason   *string   `gorm:"type:text" json:"rejection_reason,omitempty"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RescheduleRequestModel) TableName() string {
	return "booking_reschedule_requests"
}

func (m *RescheduleRequestModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
