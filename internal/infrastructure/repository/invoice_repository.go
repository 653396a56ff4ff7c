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

type invoiceRepository struct {
	base
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{base{db: db}}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return translate(r.conn(ctx).Omit("Customer", "Vehicle", "CreatedBy").Create(invoice).Error)
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.conn(ctx).
		Preload("Items", orderedItems).
		Preload("Customer").
		Preload("Vehicle").
		Preload("CreatedBy").
		First(&invoice, "id = ?", id).Error
	if notFound(err) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return translate(r.conn(ctx).Omit(clause.Associations).Save(invoice).Error)
}

var invoiceSortColumns = map[string]string{
	"created_at":     "created_at",
	"total":          "total",
	"invoice_number": "invoice_number",
}

func (r *invoiceRepository) List(ctx context.Context, filter domainRepo.InvoiceFilter) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	params := filter.Pagination
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	query := r.conn(ctx).Model(&entity.Invoice{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", filter.To.UTC())
	}
	if params.Search != "" {
		like := likePattern(params.Search)
		query = query.Where("LOWER(invoice_number) LIKE ? OR customer_id IN (?)", like,
			r.conn(ctx).Model(&entity.Customer{}).Select("id").
				Where("LOWER(name) LIKE ? OR LOWER(business_name) LIKE ?", like, like))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Customer").
		Offset(params.Offset()).Limit(params.PerPage).
		Order(params.OrderBy(invoiceSortColumns, "created_at DESC")).
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceRepository) NumbersWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	var numbers []string
	err := r.conn(ctx).Unscoped().Model(&entity.Invoice{}).
		Where("invoice_number LIKE ?", prefix+"%").
		Pluck("invoice_number", &numbers).Error
	return numbers, err
}

func (r *invoiceRepository) ListPaidBetween(ctx context.Context, start, end time.Time) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.conn(ctx).
		Preload("Customer").
		Where("status = ? AND created_at >= ? AND created_at <= ?", enum.InvoiceStatusPaid, start.UTC(), end.UTC()).
		Order("created_at ASC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) MarkPaid(ctx context.Context, id uuid.UUID, method enum.PaymentMethod, paidAt time.Time) (bool, error) {
	result := r.conn(ctx).Model(&entity.Invoice{}).
		Where("id = ? AND status = ?", id, enum.InvoiceStatusPending).
		Updates(map[string]interface{}{
			"status":         enum.InvoiceStatusPaid,
			"payment_method": method,
			"paid_at":        paidAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *invoiceRepository) MarkCancelled(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.conn(ctx).Model(&entity.Invoice{}).
		Where("id = ? AND status = ?", id, enum.InvoiceStatusPending).
		Update("status", enum.InvoiceStatusCancelled)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
