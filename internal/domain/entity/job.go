package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Job is a piece of work credited to an employee for payroll.
type Job struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	EmployeeID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"employee_id"`
	InvoiceID   *uuid.UUID     `gorm:"type:uuid;index" json:"invoice_id,omitempty"`
	PaymentID   *uuid.UUID     `gorm:"type:uuid;index" json:"payment_id,omitempty"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	PayAmount   float64        `gorm:"type:decimal(15,2);not null;default:0" json:"pay_amount"`
	Status      enum.JobStatus `gorm:"not null;default:0;index" json:"status"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Employee *User `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

func (Job) TableName() string {
	return "jobs"
}
