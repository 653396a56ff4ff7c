package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Appointment is a booked service slot.
type Appointment struct {
	ID              uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID      uuid.UUID              `gorm:"type:uuid;not null;index" json:"customer_id"`
	VehicleID       *uuid.UUID             `gorm:"type:uuid;index" json:"vehicle_id,omitempty"`
	AssignedToID    *uuid.UUID             `gorm:"type:uuid;index" json:"assigned_to_id,omitempty"`
	ScheduledAt     time.Time              `gorm:"not null;index" json:"scheduled_at"`
	DurationMinutes int                    `gorm:"not null;default:60" json:"duration_minutes"`
	ServiceType     string                 `gorm:"size:100;not null" json:"service_type"`
	Status          enum.AppointmentStatus `gorm:"not null;default:0;index" json:"status"`
	Notes           *string                `gorm:"type:text" json:"notes,omitempty"`
	ReminderSentAt  *time.Time             `json:"reminder_sent_at,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	DeletedAt       gorm.DeletedAt         `gorm:"index" json:"-"`

	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Vehicle    *Vehicle  `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	AssignedTo *User     `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (Appointment) TableName() string {
	return "appointments"
}

// EndsAt is the scheduled end of the slot.
func (a *Appointment) EndsAt() time.Time {
	return a.ScheduledAt.Add(time.Duration(a.DurationMinutes) * time.Minute)
}
