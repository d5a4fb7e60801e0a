package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CertificateDataModel data pendukung sertifikat (satu baris per student)
type CertificateDataModel struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"student_id"`
	University        *string    `gorm:"size:255" json:"university,omitempty"`
	College           *string    `gorm:"size:255" json:"college,omitempty"`
	City              *string    `gorm:"size:255" json:"city,omitempty"`
	Gender            *string    `gorm:"size:10" json:"gender,omitempty"`
	PDFFileURL        *string    `gorm:"column:pdf_file_url;type:text" json:"pdf_file_url,omitempty"`
	CertificateIssued bool       `gorm:"not null;index" json:"certificate_issued"`
	IssuedAt          *time.Time `json:"issued_at,omitempty"`
	CeremonyDate      *string    `gorm:"size:32" json:"ceremony_date,omitempty"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CertificateDataModel) TableName() string {
	return "certificate_data"
}

func (m *CertificateDataModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
