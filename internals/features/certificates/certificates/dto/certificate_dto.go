package dto

import (
	"strings"
	"time"

	"itqan_backend/internals/features/certificates/certificates/model"
)

type CertificateInput struct {
	University string `json:"university"`
	College    string `json:"college"`
	City       string `json:"city"`
	Gender     string `json:"gender"`
	PDFFileURL string `json:"pdf_file_url"`
}

func (r *CertificateInput) Normalize() {
	r.University = strings.TrimSpace(r.University)
	r.College = strings.TrimSpace(r.College)
	r.City = strings.TrimSpace(r.City)
	r.Gender = strings.TrimSpace(r.Gender)
	r.PDFFileURL = strings.TrimSpace(r.PDFFileURL)
}

type CertificateItem struct {
	model.CertificateDataModel
	StudentName    string  `json:"student_name"`
	StudentEmail   string  `json:"student_email,omitempty"`
	CertificateURL *string `json:"certificate_url,omitempty" gorm:"-"`
}

type MyCertificateResponse struct {
	Certificate *CertificateItem `json:"certificate"`
	IsMastered  bool             `json:"is_mastered"`
}

type PublicCertificate struct {
	StudentName  string     `json:"student_name"`
	IssuedAt     *time.Time `json:"issued_at"`
	CeremonyDate *string    `json:"ceremony_date,omitempty"`
	Ceremony     *Ceremony  `json:"ceremony,omitempty"`
}

// Ceremony nilai setting certificate_ceremony
type Ceremony struct {
	CeremonyDate string `json:"ceremony_date"`
	Location     string `json:"location"`
}

type AdminCertificateItem struct {
	CertificateItem
	RecitationStatus      *string `json:"recitation_status,omitempty"`
	EffectiveCeremonyDate *string `json:"effective_ceremony_date,omitempty" gorm:"-"`
	IsCustomCeremony      bool    `json:"is_custom_ceremony" gorm:"-"`
}

type AdminCertificateList struct {
	Applications   []AdminCertificateItem `json:"applications"`
	GlobalCeremony *Ceremony              `json:"global_ceremony"`
}

type AdminCertificateAction struct {
	Action       string `json:"action"`
	StudentID    string `json:"student_id"`
	CeremonyDate string `json:"ceremony_date"`
	Location     string `json:"location"`
}
