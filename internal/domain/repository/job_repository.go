package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/pkg/pagination"
)

// JobFilter narrows job listings. A nil EmployeeID lists every employee.
type JobFilter struct {
	Pagination *pagination.PaginationParams
	EmployeeID *uuid.UUID
	Status     *enum.JobStatus
}

type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Job, error)
	Update(ctx context.Context, job *entity.Job) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter JobFilter) ([]entity.Job, int64, error)
	// MarkPaid moves READY jobs to PAID and links them to the payment.
	// It returns the number of rows changed.
	MarkPaid(ctx context.Context, ids []uuid.UUID, paymentID uuid.UUID) (int64, error)
}
