package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/pkg/pagination"
)

// AppointmentFilter narrows appointment listings.
type AppointmentFilter struct {
	Pagination   *pagination.PaginationParams
	Status       *enum.AppointmentStatus
	CustomerID   *uuid.UUID
	AssignedToID *uuid.UUID
	From         *time.Time
	To           *time.Time
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	Update(ctx context.Context, appointment *entity.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter AppointmentFilter) ([]entity.Appointment, int64, error)
}
