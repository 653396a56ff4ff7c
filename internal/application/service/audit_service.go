package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/pkg/pagination"
)

// AuditEntry describes one change to record.
type AuditEntry struct {
	UserID     *uuid.UUID
	Action     enum.AuditAction
	EntityType string
	EntityID   string
	Changes    any
	IPAddress  string
}

// AuditLogger records changes. Record never fails the caller: errors are
// logged and dropped.
type AuditLogger interface {
	Record(ctx context.Context, entry AuditEntry)
}

// Entity type names stored in audit_logs.entity_type.
const (
	AuditCustomer    = "Customer"
	AuditVehicle     = "Vehicle"
	AuditTire        = "Tire"
	AuditInvoice     = "Invoice"
	AuditQuotation   = "Quotation"
	AuditAppointment = "Appointment"
	AuditJob         = "Job"
	AuditPayment     = "Payment"
	AuditUser        = "User"
)

func (a Actor) audit(action enum.AuditAction, entityType string, id uuid.UUID, changes any) AuditEntry {
	return AuditEntry{
		UserID:     a.userID(),
		Action:     action,
		EntityType: entityType,
		EntityID:   id.String(),
		Changes:    changes,
		IPAddress:  a.IP,
	}
}

// AuditService stores audit entries in the append-only audit_logs table.
type AuditService struct {
	repo repository.AuditLogRepository
}

func NewAuditService(repo repository.AuditLogRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Record implements AuditLogger.
func (s *AuditService) Record(ctx context.Context, e AuditEntry) {
	row := &entity.AuditLog{
		UserID:     e.UserID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
	}
	if e.Changes != nil {
		b, err := json.Marshal(e.Changes)
		if err != nil {
			log.Printf("[Audit] marshal changes for %s %s: %v", e.EntityType, e.EntityID, err)
		} else {
			changes := string(b)
			row.Changes = &changes
		}
	}
	if e.IPAddress != "" {
		ip := e.IPAddress
		row.IPAddress = &ip
	}
	if err := s.repo.Create(ctx, row); err != nil {
		log.Printf("[Audit] failed to record %s %s %s: %v", e.Action, e.EntityType, e.EntityID, err)
	}
}

// List returns audit entries newest first.
func (s *AuditService) List(ctx context.Context, filter repository.AuditLogFilter) (*pagination.PaginatedResult[entity.AuditLog], error) {
	if filter.Pagination == nil {
		filter.Pagination = pagination.DefaultPagination()
	}
	filter.Pagination.Validate()

	logs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(logs, pagination.NewPagination(filter.Pagination.Page, filter.Pagination.PerPage, total)), nil
}

// discardAudit is used when no logger is wired.
type discardAudit struct{}

func (discardAudit) Record(context.Context, AuditEntry) {}

func auditOrDiscard(a AuditLogger) AuditLogger {
	if a == nil {
		return discardAudit{}
	}
	return a
}
