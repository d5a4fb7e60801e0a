package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EmailTemplateModel struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	TemplateKey    string         `gorm:"column:template_key;type:varchar(60);not null;uniqueIndex" json:"template_key"`
	TemplateNameAr string         `gorm:"column:template_name_ar;type:varchar(150)" json:"template_name_ar"`
	TemplateNameEn string         `gorm:"column:template_name_en;type:varchar(150)" json:"template_name_en"`
	SubjectAr      string         `gorm:"column:subject_ar;type:varchar(255);not null" json:"subject_ar"`
	SubjectEn      string         `gorm:"column:subject_en;type:varchar(255)" json:"subject_en"`
	BodyAr         string         `gorm:"column:body_ar;type:text;not null" json:"body_ar"`
	BodyEn         string         `gorm:"column:body_en;type:text" json:"body_en"`
	Variables      datatypes.JSON `gorm:"column:variables" json:"variables"`
	IsActive       bool           `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (EmailTemplateModel) TableName() string {
	return "email_templates"
}

func (m *EmailTemplateModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

const (
	KeyRecitationMastered     = "recitation_mastered"
	KeyRecitationNeedsSession = "recitation_needs_session"
	KeyReaderApproved         = "reader_approved"
	KeyReaderRejected         = "reader_rejected"
	KeyCertificateIssued      = "certificate_issued"
)
