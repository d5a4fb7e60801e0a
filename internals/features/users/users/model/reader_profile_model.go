package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReaderProfileModel data tambahan reader (muqri'): kualifikasi, hafalan, rating
type ReaderProfileModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	FullNameTriple     string    `gorm:"size:255" json:"full_name_triple"`
	Qualification      *string   `gorm:"type:text" json:"qualification,omitempty"`
	MemorizedParts     int       `gorm:"not null" json:"memorized_parts"`
	YearsOfExperience  int       `gorm:"not null" json:"years_of_experience"`
	CertificateFileURL *string   `gorm:"type:text" json:"certificate_file_url,omitempty"`
	Bio                *string   `gorm:"type:text" json:"bio,omitempty"`
	Rating             float64   `gorm:"not null" json:"rating"`
	TotalReviews       int       `gorm:"not null" json:"total_reviews"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ReaderProfileModel) TableName() string {
	return "reader_profiles"
}

func (m *ReaderProfileModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
