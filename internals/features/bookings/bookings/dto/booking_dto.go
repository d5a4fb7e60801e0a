package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"itqan_backend/internals/features/bookings/bookings/model"
)

// CreateBookingRequest: slot_start/slot_end, atau date + start_time (+ end_time)
type CreateBookingRequest struct {
	SlotStart string `json:"slot_start"`
	SlotEnd   string `json:"slot_end"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Notes     string `json:"notes"`
}

func (r *CreateBookingRequest) Normalize() {
	r.SlotStart = strings.TrimSpace(r.SlotStart)
	r.SlotEnd = strings.TrimSpace(r.SlotEnd)
	r.Date = strings.TrimSpace(r.Date)
	r.StartTime = strings.TrimSpace(r.StartTime)
	r.EndTime = strings.TrimSpace(r.EndTime)
	r.Notes = strings.TrimSpace(r.Notes)
}

type UpdateBookingRequest struct {
	Status       string `json:"status"`
	CancelReason string `json:"cancel_reason"`
}

type BookingItem struct {
	model.BookingModel
	StudentName  string `json:"student_name"`
	StudentEmail string `json:"student_email"`
	ReaderName   string `json:"reader_name"`
}

type CommentRequest struct {
	CommentText string `json:"comment_text"`
}

type CommentItem struct {
	model.BookingCommentModel
	AuthorName string `json:"author_name"`
	AuthorRole string `json:"author_role"`
}

type RescheduleRequest struct {
	ProposedStart string `json:"proposed_start"`
	ProposedEnd   string `json:"proposed_end"`
}

type RescheduleDecision struct {
	Action          string `json:"action"`
	RejectionReason string `json:"rejection_reason"`
}

type RescheduleItem struct {
	model.RescheduleRequestModel
	RequesterName string `json:"requester_name"`
}

type MeetingLinkRequest struct {
	MeetingLink string `json:"meeting_link"`
	Platform    string `json:"platform"`
}

type AdminBookingFilter struct {
	Status    string
	ReaderID  *uuid.UUID
	StudentID *uuid.UUID
	From      *time.Time
	To        *time.Time
	Offset    int
	Limit     int
}
