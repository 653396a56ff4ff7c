package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/pkg/pagination"
)

// QuotationFilter narrows quotation listings.
type QuotationFilter struct {
	Pagination *pagination.PaginationParams
	Status     *enum.QuotationStatus
	CustomerID *uuid.UUID
}

// QuotationRepository defines the interface for quotation data operations
type QuotationRepository interface {
	Create(ctx context.Context, quotation *entity.Quotation) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quotation, error)
	Update(ctx context.Context, quotation *entity.Quotation) error
	// ReplaceItems swaps the full item set of a quotation.
	ReplaceItems(ctx context.Context, quotationID uuid.UUID, items []entity.QuotationItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter QuotationFilter) ([]entity.Quotation, int64, error)
	NumbersWithPrefix(ctx context.Context, prefix string) ([]string, error)

	// MarkConverted flips the status to CONVERTED unless it already is.
	// It reports false when another conversion got there first.
	MarkConverted(ctx context.Context, id, invoiceID uuid.UUID, at time.Time) (bool, error)
}
