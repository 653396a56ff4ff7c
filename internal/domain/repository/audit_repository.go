package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/pkg/pagination"
)

// AuditLogFilter narrows audit log queries.
type AuditLogFilter struct {
	Pagination *pagination.PaginationParams
	UserID     *uuid.UUID
	Action     *enum.AuditAction
	EntityType string
	EntityID   string
	From       *time.Time
	To         *time.Time
}

// AuditLogRepository is append-only: there is no update or delete.
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]entity.AuditLog, int64, error)
}
