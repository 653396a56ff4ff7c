package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Payment settles one or more READY jobs of a single employee.
type Payment struct {
	ID          uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	EmployeeID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"employee_id"`
	Amount      float64            `gorm:"type:decimal(15,2);not null" json:"amount"`
	Method      enum.PaymentMethod `gorm:"not null;default:0" json:"method"`
	Reference   *string            `gorm:"size:100" json:"reference,omitempty"`
	Notes       *string            `gorm:"type:text" json:"notes,omitempty"`
	PaidAt      time.Time          `gorm:"not null;index" json:"paid_at"`
	CreatedByID *uuid.UUID         `gorm:"type:uuid" json:"created_by_id,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	DeletedAt   gorm.DeletedAt     `gorm:"index" json:"-"`

	Employee *User `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Jobs     []Job `gorm:"foreignKey:PaymentID" json:"jobs,omitempty"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
