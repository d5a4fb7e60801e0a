package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"itqan_backend/internals/helpers/dbtype"
)

const (
	DefaultSurahName = "الفاتحة"
	DefaultQiraah    = "حفص عن عاصم"
)

// RecitationModel rekaman tilawah Al-Fatiha yang dikirim student untuk dinilai reader
type RecitationModel struct {
	ID                   uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID            uuid.UUID          `gorm:"type:uuid;not null;index" json:"student_id"`
	AssignedReaderID     *uuid.UUID         `gorm:"type:uuid;index" json:"assigned_reader_id,omitempty"`
	AudioURL             string             `gorm:"type:text;not null" json:"audio_url"`
	AudioDurationSeconds *int               `json:"audio_duration_seconds,omitempty"`
	SurahName            string             `gorm:"size:50;not null" json:"surah_name"`
	SurahNumber          int                `gorm:"not null" json:"surah_number"`
	AyahFrom             int                `gorm:"not null" json:"ayah_from"`
	AyahTo               int                `gorm:"not null" json:"ayah_to"`
	Qiraah               string             `gorm:"size:100;not null" json:"qiraah"`
	Status               string             `gorm:"type:varchar(20);not null;index" json:"status"`
	Notes                *string            `gorm:"type:text" json:"notes,omitempty"`
	ReviewTags           dbtype.StringArray `gorm:"column:review_tags" json:"review_tags"`
	AssignedAt           *time.Time         `json:"assigned_at,omitempty"`
	ReviewedAt           *time.Time         `json:"reviewed_at,omitempty"`
	CreatedAt            time.Time          `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt            time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RecitationModel) TableName() string {
	return "recitations"
}

func (r *RecitationModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
