package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"itqan_backend/internals/features/recitations/recitations/model"
)

type CreateRecitationRequest struct {
	AudioURL      string `json:"audio_url"`
	AudioDuration *int   `json:"audio_duration_seconds"`
	Notes         string `json:"notes"`
	Qiraah        string `json:"qiraah"`
}

func (r *CreateRecitationRequest) Normalize() {
	r.AudioURL = strings.TrimSpace(r.AudioURL)
	r.Notes = strings.TrimSpace(r.Notes)
	r.Qiraah = strings.TrimSpace(r.Qiraah)
}

// RecitationItem baris recitation + nama student/reader (hasil join)
type RecitationItem struct {
	model.RecitationModel
	StudentName  string  `json:"student_name"`
	StudentEmail string  `json:"student_email"`
	ReaderName   *string `json:"reader_name,omitempty"`
}

type ReviewItem struct {
	model.ReviewModel
	ReviewerName string `json:"reviewer_name"`
}

type RecitationDetail struct {
	Recitation RecitationItem `json:"recitation"`
	Review     *ReviewItem    `json:"review"`
}

type MyLatestResponse struct {
	Recitation  *RecitationItem `json:"recitation"`
	Review      *ReviewItem     `json:"review"`
	HasCertData bool            `json:"has_cert_data"`
}

type ReviewRequest struct {
	TajweedScore       *int            `json:"tajweed_score"`
	PronunciationScore *int            `json:"pronunciation_score"`
	FluencyScore       *int            `json:"fluency_score"`
	MemorizationScore  *int            `json:"memorization_score"`
	OverallScore       *int            `json:"overall_score"`
	Feedback           string          `json:"feedback"`
	Verdict            string          `json:"verdict"`
	ErrorMarkers       json.RawMessage `json:"error_markers"`
	Tags               []string        `json:"tags"`
}

// AdminRecitationUpdate: reader_id "" = lepas assignment
type AdminRecitationUpdate struct {
	ReaderID *string `json:"reader_id"`
	Status   *string `json:"status"`
}

type AdminRecitationItem struct {
	RecitationItem
	BookingStatus    *string    `json:"booking_status,omitempty"`
	BookingSlotStart *time.Time `json:"booking_slot_start,omitempty"`
}

type AdminRecitationFilter struct {
	Status   string
	ReaderID *uuid.UUID
	Search   string
	Offset   int
	Limit    int
}
