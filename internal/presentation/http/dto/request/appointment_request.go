package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
)

// CreateAppointmentRequest represents an appointment booking
type CreateAppointmentRequest struct {
	CustomerID      uuid.UUID               `json:"customer_id" binding:"required"`
	VehicleID       *uuid.UUID              `json:"vehicle_id"`
	AssignedToID    *uuid.UUID              `json:"assigned_to_id"`
	ScheduledAt     time.Time               `json:"scheduled_at" binding:"required"`
	DurationMinutes int                     `json:"duration_minutes" binding:"omitempty,min=5,max=1440"`
	ServiceType     string                  `json:"service_type" binding:"required,max=100"`
	Status          *enum.AppointmentStatus `json:"status"`
	Notes           *string                 `json:"notes"`
}

// UpdateAppointmentRequest represents an appointment update
type UpdateAppointmentRequest struct {
	VehicleID       *uuid.UUID              `json:"vehicle_id"`
	AssignedToID    *uuid.UUID              `json:"assigned_to_id"`
	ScheduledAt     *time.Time              `json:"scheduled_at"`
	DurationMinutes *int                    `json:"duration_minutes" binding:"omitempty,min=5,max=1440"`
	ServiceType     *string                 `json:"service_type" binding:"omitempty,min=1,max=100"`
	Status          *enum.AppointmentStatus `json:"status"`
	Notes           *string                 `json:"notes"`
}
