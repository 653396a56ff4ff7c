package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	domainRepo "github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/pkg/pagination"
	"gorm.io/gorm"
)

type customerRepository struct {
	base
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{base{db: db}}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return translate(r.conn(ctx).Create(customer).Error)
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.conn(ctx).First(&customer, "id = ?", id).Error
	if notFound(err) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.conn(ctx).First(&customer, "LOWER(email) = LOWER(?)", email).Error
	if notFound(err) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return translate(r.conn(ctx).Omit("Vehicles", "Invoices").Save(customer).Error)
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.conn(ctx).Delete(&entity.Customer{}, "id = ?", id).Error
}

var customerSortColumns = map[string]string{
	"name":       "name",
	"created_at": "created_at",
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	params.Validate()
	query := r.conn(ctx).Model(&entity.Customer{})

	if params.Search != "" {
		like := likePattern(params.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(business_name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?",
			like, like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order(params.OrderBy(customerSortColumns, "name ASC")).
		Find(&customers).Error

	return customers, total, err
}

func (r *customerRepository) CountDependents(ctx context.Context, id uuid.UUID) (int64, error) {
	var invoices, appointments int64
	if err := r.conn(ctx).Model(&entity.Invoice{}).Where("customer_id = ?", id).Count(&invoices).Error; err != nil {
		return 0, err
	}
	if err := r.conn(ctx).Model(&entity.Appointment{}).Where("customer_id = ?", id).Count(&appointments).Error; err != nil {
		return 0, err
	}
	return invoices + appointments, nil
}
