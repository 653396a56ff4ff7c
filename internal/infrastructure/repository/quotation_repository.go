package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	domainRepo "github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type quotationRepository struct {
	base
}

// NewQuotationRepository creates a new quotation repository
func NewQuotationRepository(db *gorm.DB) domainRepo.QuotationRepository {
	return &quotationRepository{base{db: db}}
}

func (r *quotationRepository) Create(ctx context.Context, quotation *entity.Quotation) error {
	return translate(r.conn(ctx).Omit("Customer", "Vehicle").Create(quotation).Error)
}

func (r *quotationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quotation, error) {
	var quotation entity.Quotation
	err := r.conn(ctx).
		Preload("Items", orderedItems).
		Preload("Customer").
		Preload("Vehicle").
		First(&quotation, "id = ?", id).Error
	if notFound(err) {
		return nil, nil
	}
	return &quotation, err
}

func (r *quotationRepository) Update(ctx context.Context, quotation *entity.Quotation) error {
	return translate(r.conn(ctx).Omit(clause.Associations).Save(quotation).Error)
}

func (r *quotationRepository) ReplaceItems(ctx context.Context, quotationID uuid.UUID, items []entity.QuotationItem) error {
	db := r.conn(ctx)
	if err := db.Where("quotation_id = ?", quotationID).Delete(&entity.QuotationItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].QuotationID = quotationID
	}
	return db.Create(&items).Error
}

func (r *quotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.conn(ctx).Delete(&entity.Quotation{}, "id = ?", id).Error
}

var quotationSortColumns = map[string]string{
	"created_at":       "created_at",
	"total":            "total",
	"quotation_number": "quotation_number",
}

func (r *quotationRepository) List(ctx context.Context, filter domainRepo.QuotationFilter) ([]entity.Quotation, int64, error) {
	var quotations []entity.Quotation
	var total int64

	params := filter.Pagination
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	query := r.conn(ctx).Model(&entity.Quotation{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if params.Search != "" {
		query = query.Where("LOWER(quotation_number) LIKE ?", likePattern(params.Search))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Customer").
		Offset(params.Offset()).Limit(params.PerPage).
		Order(params.OrderBy(quotationSortColumns, "created_at DESC")).
		Find(&quotations).Error

	return quotations, total, err
}

func (r *quotationRepository) NumbersWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	var numbers []string
	err := r.conn(ctx).Unscoped().Model(&entity.Quotation{}).
		Where("quotation_number LIKE ?", prefix+"%").
		Pluck("quotation_number", &numbers).Error
	return numbers, err
}

func (r *quotationRepository) MarkConverted(ctx context.Context, id, invoiceID uuid.UUID, at time.Time) (bool, error) {
	result := r.conn(ctx).Model(&entity.Quotation{}).
		Where("id = ? AND status <> ?", id, enum.QuotationStatusConverted).
		Updates(map[string]interface{}{
			"status":               enum.QuotationStatusConverted,
			"converted_invoice_id": invoiceID,
			"converted_at":         at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
