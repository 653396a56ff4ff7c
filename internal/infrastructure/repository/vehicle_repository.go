package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	domainRepo "github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/pkg/pagination"
	"gorm.io/gorm"
)

type vehicleRepository struct {
	base
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *gorm.DB) domainRepo.VehicleRepository {
	return &vehicleRepository{base{db: db}}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	return translate(r.conn(ctx).Omit("Customer").Create(vehicle).Error)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	var vehicle entity.Vehicle
	err := r.conn(ctx).Preload("Customer").First(&vehicle, "id = ?", id).Error
	if notFound(err) {
		return nil, nil
	}
	return &vehicle, err
}

func (r *vehicleRepository) GetByVIN(ctx context.Context, vin string) (*entity.Vehicle, error) {
	var vehicle entity.Vehicle
	err := r.conn(ctx).First(&vehicle, "vin = ?", vin).Error
	if notFound(err) {
		return nil, nil
	}
	return &vehicle, err
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	return translate(r.conn(ctx).Omit("Customer").Save(vehicle).Error)
}

func (r *vehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.conn(ctx).Delete(&entity.Vehicle{}, "id = ?", id).Error
}

var vehicleSortColumns = map[string]string{
	"make":       "make",
	"year":       "year",
	"created_at": "created_at",
}

func (r *vehicleRepository) List(ctx context.Context, filter domainRepo.VehicleFilter) ([]entity.Vehicle, int64, error) {
	var vehicles []entity.Vehicle
	var total int64

	params := filter.Pagination
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	query := r.conn(ctx).Model(&entity.Vehicle{})
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if params.Search != "" {
		like := likePattern(params.Search)
		query = query.Where("LOWER(make) LIKE ? OR LOWER(model) LIKE ? OR LOWER(vin) LIKE ? OR LOWER(license_plate) LIKE ?",
			like, like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Customer").
		Offset(params.Offset()).Limit(params.PerPage).
		Order(params.OrderBy(vehicleSortColumns, "created_at DESC")).
		Find(&vehicles).Error

	return vehicles, total, err
}

func (r *vehicleRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Vehicle, error) {
	var vehicles []entity.Vehicle
	err := r.conn(ctx).Where("customer_id = ?", customerID).Order("year DESC, make ASC").Find(&vehicles).Error
	return vehicles, err
}
