package dto

import (
	"time"

	"github.com/google/uuid"

	"itqan_backend/internals/features/bookings/availability/model"
)

type SlotRequest struct {
	DayOfWeek           *int   `json:"day_of_week"`
	StartTime           string `json:"start_time"`
	EndTime             string `json:"end_time"`
	SpecificDate        string `json:"specific_date"`
	SlotDurationMinutes int    `json:"slot_duration_minutes"`
}

type TimeRange struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// BulkSlotRequest: "slots" langsung, atau rentang tanggal start_date..end_date x times (filter days opsional)
type BulkSlotRequest struct {
	Slots     []SlotRequest `json:"slots"`
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Times     []TimeRange   `json:"times"`
	Days      []int         `json:"days"`
}

type BulkSlotResponse struct {
	Created []model.AvailabilitySlotModel `json:"created"`
	Skipped int                           `json:"skipped"`
}

// AvailableSlot slot reader yang masih kosong pada tanggal tertentu
type AvailableSlot struct {
	ID                  uuid.UUID `json:"id"`
	ReaderID            uuid.UUID `json:"reader_id"`
	ReaderName          string    `json:"reader_name"`
	DayOfWeek           int       `json:"day_of_week"`
	StartTime           string    `json:"start_time"`
	EndTime             string    `json:"end_time"`
	SlotDurationMinutes int       `json:"slot_duration_minutes"`
	Date                string    `json:"date"`
	SlotStart           time.Time `json:"slot_start"`
	SlotEnd             time.Time `json:"slot_end"`
}

type ReaderStats struct {
	AssignedRecitations int64 `json:"assigned_recitations"`
	PendingReviews      int64 `json:"pending_reviews"`
	MasteredCount       int64 `json:"mastered_count"`
	NeedsSessionCount   int64 `json:"needs_session_count"`
	TodaySessions       int64 `json:"today_sessions"`
	UpcomingSessions    int64 `json:"upcoming_sessions"`
	CompletedSessions   int64 `json:"completed_sessions"`
}

type BookedSlot struct {
	SlotStart time.Time `json:"slot_start"`
	SlotEnd   time.Time `json:"slot_end"`
}

// ReaderAvailability jadwal reader + slot yang sudah terisi 7 hari ke depan
type ReaderAvailability struct {
	AvailabilitySlots []model.AvailabilitySlotModel `json:"availability_slots"`
	BookedSlots       []BookedSlot                  `json:"booked_slots"`
}
