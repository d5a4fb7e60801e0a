package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultSlotDuration = 30

// AvailabilitySlotModel jadwal ketersediaan reader.
// Recurring: berlaku tiap day_of_week. Non-recurring: hanya pada specific_date (YYYY-MM-DD).
type AvailabilitySlotModel struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ReaderID            uuid.UUID `gorm:"type:uuid;not null;index" json:"reader_id"`
	DayOfWeek           int       `gorm:"not null" json:"day_of_week"`
	StartTime           string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime             string    `gorm:"type:varchar(5);not null" json:"end_time"`
	IsRecurring         bool      `gorm:"not null" json:"is_recurring"`
	SpecificDate        *string   `gorm:"type:varchar(10);index" json:"specific_date,omitempty"`
	SlotDurationMinutes int       `gorm:"not null" json:"slot_duration_minutes"`
	IsAvailable         bool      `gorm:"not null" json:"is_available"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AvailabilitySlotModel) TableName() string {
	return "availability_slots"
}

func (m *AvailabilitySlotModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Conflicts: hari sama (slot recurring berlaku di semua tanggal dengan day_of_week itu) dan jam beririsan.
// Jam dibandingkan sebagai string "HH:MM".
func (m *AvailabilitySlotModel) Conflicts(o *AvailabilitySlotModel) bool {
	if m.DayOfWeek != o.DayOfWeek {
		return false
	}
	if !m.IsRecurring && !o.IsRecurring {
		if m.SpecificDate == nil || o.SpecificDate == nil || *m.SpecificDate != *o.SpecificDate {
			return false
		}
	}
	return m.StartTime < o.EndTime && m.EndTime > o.StartTime
}
