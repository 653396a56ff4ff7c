package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/pkg/pagination"
)

// PaymentFilter narrows payment listings.
type PaymentFilter struct {
	Pagination *pagination.PaginationParams
	EmployeeID *uuid.UUID
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	List(ctx context.Context, filter PaymentFilter) ([]entity.Payment, int64, error)
}
