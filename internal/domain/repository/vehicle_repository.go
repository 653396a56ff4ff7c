package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/pkg/pagination"
)

// VehicleFilter narrows vehicle listings.
type VehicleFilter struct {
	Pagination *pagination.PaginationParams
	CustomerID *uuid.UUID
}

// VehicleRepository defines the interface for vehicle data operations
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error)
	GetByVIN(ctx context.Context, vin string) (*entity.Vehicle, error)
	Update(ctx context.Context, vehicle *entity.Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter VehicleFilter) ([]entity.Vehicle, int64, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Vehicle, error)
}
