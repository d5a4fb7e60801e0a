package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReviewModel penilaian reader atas satu recitation (maksimal satu per recitation)
type ReviewModel struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RecitationID       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"recitation_id"`
	ReaderID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"reader_id"`
	TajweedScore       *int           `json:"tajweed_score,omitempty"`
	PronunciationScore *int           `json:"pronunciation_score,omitempty"`
	FluencyScore       *int           `json:"fluency_score,omitempty"`
	MemorizationScore  *int           `json:"memorization_score,omitempty"`
	OverallScore       *int           `json:"overall_score,omitempty"`
	DetailedFeedback   *string        `gorm:"type:text" json:"detailed_feedback,omitempty"`
	Verdict            string         `gorm:"type:varchar(20);not null" json:"verdict"`
	ErrorMarkers       datatypes.JSON `gorm:"column:error_markers" json:"error_markers"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}

func (r *ReviewModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
