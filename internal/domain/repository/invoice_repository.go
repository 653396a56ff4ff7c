package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/pkg/pagination"
)

// InvoiceFilter narrows invoice listings.
type InvoiceFilter struct {
	Pagination *pagination.PaginationParams
	Status     *enum.InvoiceStatus
	CustomerID *uuid.UUID
	From       *time.Time
	To         *time.Time
}

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	// Create inserts the header and its items.
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	// Update writes header columns only; items are never rewritten.
	Update(ctx context.Context, invoice *entity.Invoice) error
	List(ctx context.Context, filter InvoiceFilter) ([]entity.Invoice, int64, error)

	// NumbersWithPrefix returns every number starting with prefix, soft deleted rows included.
	NumbersWithPrefix(ctx context.Context, prefix string) ([]string, error)

	// ListPaidBetween returns PAID invoices created within [start, end].
	ListPaidBetween(ctx context.Context, start, end time.Time) ([]entity.Invoice, error)

	// MarkPaid and MarkCancelled only move PENDING invoices. They report
	// whether a row changed.
	MarkPaid(ctx context.Context, id uuid.UUID, method enum.PaymentMethod, paidAt time.Time) (bool, error)
	MarkCancelled(ctx context.Context, id uuid.UUID) (bool, error)
}
