package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
)

// CreateJobRequest assigns paid work to an employee
type CreateJobRequest struct {
	EmployeeID  uuid.UUID  `json:"employee_id" binding:"required"`
	InvoiceID   *uuid.UUID `json:"invoice_id"`
	Title       string     `json:"title" binding:"required,max=255"`
	Description *string    `json:"description"`
	PayAmount   float64    `json:"pay_amount" binding:"min=0"`
}

// UpdateJobRequest represents a job update
type UpdateJobRequest struct {
	EmployeeID  *uuid.UUID `json:"employee_id"`
	InvoiceID   *uuid.UUID `json:"invoice_id"`
	Title       *string    `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string    `json:"description"`
	PayAmount   *float64   `json:"pay_amount" binding:"omitempty,min=0"`
}

// JobStatusRequest moves a job between PENDING and READY
type JobStatusRequest struct {
	Status *enum.JobStatus `json:"status" binding:"required"`
}

// CreatePaymentRequest pays an employee for READY jobs
type CreatePaymentRequest struct {
	EmployeeID uuid.UUID           `json:"employee_id" binding:"required"`
	JobIDs     []uuid.UUID         `json:"job_ids" binding:"required,min=1"`
	Method     *enum.PaymentMethod `json:"method" binding:"required"`
	Reference  *string             `json:"reference" binding:"omitempty,max=255"`
	Notes      *string             `json:"notes"`
	PaidAt     *time.Time          `json:"paid_at"`
}
