package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SystemSettingModel struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SettingKey   string         `gorm:"column:setting_key;type:varchar(100);not null;uniqueIndex" json:"setting_key"`
	SettingValue datatypes.JSON `gorm:"column:setting_value;not null" json:"setting_value"`
	SettingType  string         `gorm:"column:setting_type;type:varchar(30);not null;index" json:"setting_type"`
	Description  *string        `gorm:"column:description;type:text" json:"description,omitempty"`
	UpdatedBy    *uuid.UUID     `gorm:"column:updated_by;type:uuid" json:"updated_by,omitempty"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SystemSettingModel) TableName() string {
	return "system_settings"
}

func (m *SystemSettingModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Kunci setting yang dipakai kode
const (
	KeyReaderAssignmentStrategy = "reader_assignment_strategy"
	KeyMaintenanceMode          = "maintenance_mode"
	KeySiteName                 = "site_name"
	KeySMTPConfig               = "smtp_config"
	KeyCertificateCeremony      = "certificate_ceremony"

	TypeGeneral  = "general"
	TypeHomepage = "homepage"
)
