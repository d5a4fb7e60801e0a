package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ActivityLogModel struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID      *uuid.UUID     `gorm:"column:user_id;type:uuid;index" json:"user_id,omitempty"`
	Action      string         `gorm:"column:action;type:varchar(60);not null;index" json:"action"`
	EntityType  *string        `gorm:"column:entity_type;type:varchar(40)" json:"entity_type,omitempty"`
	EntityID    *string        `gorm:"column:entity_id;type:varchar(64)" json:"entity_id,omitempty"`
	Description *string        `gorm:"column:description;type:text" json:"description,omitempty"`
	Details     datatypes.JSON `gorm:"column:details" json:"details,omitempty"`
	IPAddress   *string        `gorm:"column:ip_address;type:varchar(64)" json:"ip_address,omitempty"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`

	// hasil join users (read-only)
	UserName  *string `gorm:"->;column:user_name" json:"user_name,omitempty"`
	UserEmail *string `gorm:"->;column:user_email" json:"user_email,omitempty"`
}

func (ActivityLogModel) TableName() string {
	return "activity_logs"
}

func (m *ActivityLogModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
