package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/pkg/pagination"
)

// TireFilter narrows tire listings.
type TireFilter struct {
	Pagination *pagination.PaginationParams
	Size       string
	Type       *enum.TireType
	Condition  *enum.TireCondition
	LowStock   bool
	InStock    bool
}

// TireRepository defines the interface for tire inventory operations
type TireRepository interface {
	Create(ctx context.Context, tire *entity.Tire) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Tire, error)
	// GetByIDs returns the tires found; missing ids are simply absent.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Tire, error)
	GetBySpec(ctx context.Context, brand, model, size string, condition enum.TireCondition) (*entity.Tire, error)
	Update(ctx context.Context, tire *entity.Tire) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter TireFilter) ([]entity.Tire, int64, error)
	ListLowStock(ctx context.Context) ([]entity.Tire, error)

	// DecrementStock lowers quantity only when enough is on hand. It reports
	// false without error when stock was insufficient.
	DecrementStock(ctx context.Context, id uuid.UUID, amount int) (bool, error)
	IncrementStock(ctx context.Context, id uuid.UUID, amount int) error
	SetStock(ctx context.Context, id uuid.UUID, quantity int) error
}
