package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	domainRepo "github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type paymentRepository struct {
	base
}

func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{base{db: db}}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return r.conn(ctx).Omit(clause.Associations).Create(payment).Error
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := r.conn(ctx).Preload("Employee").Preload("Jobs").First(&payment, "id = ?", id).Error
	if notFound(err) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) List(ctx context.Context, filter domainRepo.PaymentFilter) ([]entity.Payment, int64, error) {
	var payments []entity.Payment
	var total int64

	params := filter.Pagination
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	query := r.conn(ctx).Model(&entity.Payment{})
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Employee").
		Offset(params.Offset()).Limit(params.PerPage).
		Order("paid_at DESC").
		Find(&payments).Error

	return payments, total, err
}
