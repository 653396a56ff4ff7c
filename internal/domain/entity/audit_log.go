package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"gorm.io/gorm"
)

// AuditLog is an append-only record of a change made through the API.
type AuditLog struct {
	ID         uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID     *uuid.UUID       `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action     enum.AuditAction `gorm:"not null;index" json:"action"`
	EntityType string           `gorm:"size:50;not null;index:idx_audit_entity" json:"entity_type"`
	EntityID   string           `gorm:"size:64;not null;index:idx_audit_entity" json:"entity_id"`
	Changes    *string          `gorm:"type:text" json:"changes,omitempty"`
	IPAddress  *string          `gorm:"size:64" json:"ip_address,omitempty"`
	CreatedAt  time.Time        `gorm:"index" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
