package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByEmail(ctx context.Context, email string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List searches name, business name, email and phone.
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Customer, int64, error)
	// CountDependents counts invoices and appointments that still reference the customer.
	CountDependents(ctx context.Context, id uuid.UUID) (int64, error)
}
