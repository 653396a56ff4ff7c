package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/internal/infrastructure/cache"
	"github.com/sangkips/autoshop-api/pkg/apperror"
	"github.com/sangkips/autoshop-api/pkg/metrics"
	"github.com/sangkips/autoshop-api/pkg/pagination"
	"github.com/sangkips/autoshop-api/pkg/tax"
	"github.com/sangkips/autoshop-api/pkg/timeutil"
	"github.com/sangkips/autoshop-api/pkg/utils"
)

// InvoiceService creates and moves invoices through their lifecycle.
type InvoiceService struct {
	invoiceRepo    repository.InvoiceRepository
	tireRepo       repository.TireRepository
	vehicleRepo    repository.VehicleRepository
	customers      *CustomerResolver
	txManager      repository.TxManager
	audit          AuditLogger
	notifier       *NotificationService
	cache          *cache.Cache
	loc            *time.Location
	defaultTaxRate float64
}

// InvoiceServiceDeps groups the collaborators of InvoiceService.
type InvoiceServiceDeps struct {
	InvoiceRepo    repository.InvoiceRepository
	TireRepo       repository.TireRepository
	VehicleRepo    repository.VehicleRepository
	CustomerRepo   repository.CustomerRepository
	TxManager      repository.TxManager
	Audit          AuditLogger
	Notifier       *NotificationService
	Cache          *cache.Cache
	Location       *time.Location
	// DefaultTaxRate applies when a document names no rate. Nil means the
	// standard rate; zero is a tax-exempt shop.
	DefaultTaxRate *float64
}

func NewInvoiceService(d InvoiceServiceDeps) *InvoiceService {
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}
	rate := tax.DefaultRate
	if r := d.DefaultTaxRate; r != nil {
		if *r < 0 || *r > 1 {
			log.Printf("[Invoice] ignoring default tax rate %v outside [0, 1]", *r)
		} else {
			rate = *r
		}
	}
	return &InvoiceService{
		invoiceRepo:    d.InvoiceRepo,
		tireRepo:       d.TireRepo,
		vehicleRepo:    d.VehicleRepo,
		customers:      NewCustomerResolver(d.CustomerRepo),
		txManager:      d.TxManager,
		audit:          auditOrDiscard(d.Audit),
		notifier:       d.Notifier,
		cache:          d.Cache,
		loc:            loc,
		defaultTaxRate: rate,
	}
}

// DefaultTaxRate is the single rate applied when a document names none.
func (s *InvoiceService) DefaultTaxRate() float64 {
	return s.defaultTaxRate
}

// CreateInvoiceInput is a new invoice as submitted.
type CreateInvoiceInput struct {
	Customer      CustomerRef
	VehicleID     *uuid.UUID
	Items         []LineItemInput
	Tax           tax.Input
	PaymentMethod *enum.PaymentMethod
	DueDate       *time.Time
	Notes         *string
}

// invoiceDraft is what the persistence step needs, whether the invoice comes
// from a form or from a quotation.
type invoiceDraft struct {
	customer      CustomerRef
	vehicleID     *uuid.UUID
	items         []LineItemInput
	rates         tax.Rates
	paymentMethod *enum.PaymentMethod
	dueDate       *time.Time
	notes         *string
	quotationID   *uuid.UUID
	createdBy     *uuid.UUID
}

// invoiceResult carries what happened inside the transaction to the
// after-commit side effects.
type invoiceResult struct {
	invoice         *entity.Invoice
	customerCreated bool
	lowStock        []entity.Tire
}

// CreateInvoice validates the input, then writes the customer (when inline),
// the invoice and its items and decrements tire stock in one transaction.
func (s *InvoiceService) CreateInvoice(ctx context.Context, actor Actor, input *CreateInvoiceInput) (*entity.Invoice, error) {
	if err := validateLines(input.Items); err != nil {
		return nil, err
	}
	rates, err := resolveRates(input.Tax, s.defaultTaxRate)
	if err != nil {
		return nil, err
	}
	if input.PaymentMethod != nil && !input.PaymentMethod.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid payment method")
	}

	draft := invoiceDraft{
		customer:      input.Customer,
		vehicleID:     input.VehicleID,
		items:         input.Items,
		rates:         rates,
		paymentMethod: input.PaymentMethod,
		dueDate:       input.DueDate,
		notes:         blankToNil(input.Notes),
		createdBy:     actor.userID(),
	}

	var res *invoiceResult
	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		res, err = s.persist(txCtx, draft)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.afterCreate(ctx, actor, res)
	return res.invoice, nil
}

// persist is the transactional core shared with quotation conversion. ctx
// must carry a transaction.
func (s *InvoiceService) persist(ctx context.Context, d invoiceDraft) (*invoiceResult, error) {
	customer, created, err := s.customers.Resolve(ctx, d.customer)
	if err != nil {
		return nil, err
	}

	if d.vehicleID != nil {
		if _, err := vehicleOwnedBy(ctx, s.vehicleRepo, *d.vehicleID, customer.ID); err != nil {
			return nil, err
		}
	}

	tires, err := loadTires(ctx, s.tireRepo, d.items)
	if err != nil {
		return nil, err
	}
	lines, subtotal := priceLines(d.items, tires)

	number, err := s.nextNumber(ctx)
	if err != nil {
		return nil, err
	}

	invoice := &entity.Invoice{
		InvoiceNumber: number,
		CustomerID:    customer.ID,
		VehicleID:     d.vehicleID,
		CreatedByID:   d.createdBy,
		QuotationID:   d.quotationID,
		Status:        enum.InvoiceStatusPending,
		PaymentMethod: d.paymentMethod,
		DueDate:       d.dueDate,
		Notes:         d.notes,
	}
	invoice.Totals.Apply(d.rates.Apply(subtotal))
	for i, l := range lines {
		invoice.Items = append(invoice.Items, entity.InvoiceItem{
			Position:    i,
			ItemType:    l.ItemType,
			TireID:      l.TireID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Total:       l.Total,
		})
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError(fmt.Sprintf("Invoice number %s was taken by a concurrent request, please retry", number))
		}
		return nil, err
	}

	lowStock, err := s.takeStock(ctx, lines, tires)
	if err != nil {
		return nil, err
	}

	stored, err := s.invoiceRepo.GetByID(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	return &invoiceResult{invoice: stored, customerCreated: created, lowStock: lowStock}, nil
}

// takeStock decrements each referenced tire by the total quantity billed and
// returns the tires that dropped to or below their minimum with this sale.
func (s *InvoiceService) takeStock(ctx context.Context, lines []pricedLine, tires map[uuid.UUID]entity.Tire) ([]entity.Tire, error) {
	order, demand := tireDemand(lines)
	var crossed []entity.Tire
	for _, id := range order {
		want := demand[id]
		ok, err := s.tireRepo.DecrementStock(ctx, id, want)
		if err != nil {
			return nil, err
		}
		t := tires[id]
		if !ok {
			current, err := s.tireRepo.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			available := 0
			if current != nil {
				available = current.Quantity
			}
			return nil, apperror.NewBadRequestErrorf("Insufficient stock for %s: requested %d, only %d available", t.Label(), want, available)
		}
		before := t.Quantity
		t.Quantity -= want
		if before > t.MinStock && t.IsLowStock() {
			t.LowStock = true
			crossed = append(crossed, t)
		}
	}
	return crossed, nil
}

func (s *InvoiceService) nextNumber(ctx context.Context) (string, error) {
	at := now().In(s.loc)
	existing, err := s.invoiceRepo.NumbersWithPrefix(ctx, utils.DocumentNumberPrefix(utils.InvoicePrefix, at))
	if err != nil {
		return "", err
	}
	return utils.NextDocumentNumber(utils.InvoicePrefix, at, existing), nil
}

func (s *InvoiceService) afterCreate(ctx context.Context, actor Actor, res *invoiceResult) {
	inv := res.invoice
	log.Printf("[Invoice] created %s total=%.2f customer=%s", inv.InvoiceNumber, inv.Total, inv.CustomerID)
	if res.customerCreated {
		s.audit.Record(ctx, actor.audit(enum.AuditActionCreate, AuditCustomer, inv.CustomerID, inv.Customer))
	}
	s.audit.Record(ctx, actor.audit(enum.AuditActionCreate, AuditInvoice, inv.ID, map[string]any{
		"invoice_number": inv.InvoiceNumber,
		"total":          inv.Total,
		"items":          len(inv.Items),
	}))
	metrics.InvoicesCreated.Inc()
	s.notifier.LowStock(ctx, res.lowStock)
	s.cache.Delete(ctx, cache.DashboardKey)
}

func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

func (s *InvoiceService) ListInvoices(ctx context.Context, filter repository.InvoiceFilter) (*pagination.PaginatedResult[entity.Invoice], error) {
	if filter.Pagination == nil {
		filter.Pagination = pagination.DefaultPagination()
	}
	invoices, total, err := s.invoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(invoices, pagination.NewPagination(filter.Pagination.Page, filter.Pagination.PerPage, total)), nil
}

// UpdateInvoiceInput changes header fields. Items cannot be edited.
type UpdateInvoiceInput struct {
	ID            uuid.UUID
	VehicleID     *uuid.UUID
	ClearVehicle  bool
	Notes         *string
	PaymentMethod *enum.PaymentMethod
	DueDate       *time.Time
}

func (s *InvoiceService) UpdateInvoice(ctx context.Context, actor Actor, input *UpdateInvoiceInput) (*entity.Invoice, error) {
	invoice, err := s.GetInvoice(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if invoice.IsClosed() {
		return nil, apperror.NewBadRequestErrorf("Cannot update an invoice that is %s", invoice.Status)
	}

	switch {
	case input.ClearVehicle:
		invoice.VehicleID = nil
	case input.VehicleID != nil:
		if _, err := vehicleOwnedBy(ctx, s.vehicleRepo, *input.VehicleID, invoice.CustomerID); err != nil {
			return nil, err
		}
		invoice.VehicleID = input.VehicleID
	}
	if input.Notes != nil {
		invoice.Notes = blankToNil(input.Notes)
	}
	if input.PaymentMethod != nil {
		if !input.PaymentMethod.IsValid() {
			return nil, apperror.NewBadRequestError("Invalid payment method")
		}
		invoice.PaymentMethod = input.PaymentMethod
	}
	if input.DueDate != nil {
		invoice.DueDate = input.DueDate
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actor.audit(enum.AuditActionUpdate, AuditInvoice, invoice.ID, input))
	return s.GetInvoice(ctx, invoice.ID)
}

// PayInvoice marks a PENDING invoice as PAID.
func (s *InvoiceService) PayInvoice(ctx context.Context, actor Actor, id uuid.UUID, method enum.PaymentMethod) (*entity.Invoice, error) {
	if !method.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid payment method")
	}
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.IsClosed() {
		return nil, apperror.NewBadRequestErrorf("Invoice %s is already %s", invoice.InvoiceNumber, invoice.Status)
	}

	changed, err := s.invoiceRepo.MarkPaid(ctx, id, method, now().UTC())
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, apperror.NewBadRequestErrorf("Invoice %s is no longer pending", invoice.InvoiceNumber)
	}

	s.audit.Record(ctx, actor.audit(enum.AuditActionStatusChange, AuditInvoice, id, map[string]string{
		"from":           invoice.Status.String(),
		"to":             enum.InvoiceStatusPaid.String(),
		"payment_method": method.String(),
	}))
	metrics.InvoiceRevenue.WithLabelValues(method.String()).Add(invoice.Total)
	s.invalidateReports(ctx, invoice)
	return s.GetInvoice(ctx, id)
}

// CancelInvoice voids a PENDING invoice and returns its tires to stock.
func (s *InvoiceService) CancelInvoice(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Invoice, error) {
	var invoice *entity.Invoice
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		invoice, err = s.invoiceRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if invoice == nil {
			return apperror.NewNotFoundError("Invoice")
		}
		if invoice.IsClosed() {
			return apperror.NewBadRequestErrorf("Invoice %s is already %s", invoice.InvoiceNumber, invoice.Status)
		}

		changed, err := s.invoiceRepo.MarkCancelled(txCtx, id)
		if err != nil {
			return err
		}
		if !changed {
			return apperror.NewBadRequestErrorf("Invoice %s is no longer pending", invoice.InvoiceNumber)
		}

		for _, item := range invoice.Items {
			if item.ItemType != enum.ItemTypeTire || item.TireID == nil {
				continue
			}
			if err := s.tireRepo.IncrementStock(txCtx, *item.TireID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor.audit(enum.AuditActionStatusChange, AuditInvoice, id, map[string]string{
		"from": invoice.Status.String(),
		"to":   enum.InvoiceStatusCancelled.String(),
	}))
	s.invalidateReports(ctx, invoice)
	return s.GetInvoice(ctx, id)
}

func (s *InvoiceService) invalidateReports(ctx context.Context, invoice *entity.Invoice) {
	day := invoice.CreatedAt.In(s.loc).Format(timeutil.DateLayout)
	s.cache.Delete(ctx, cache.DashboardKey, fmt.Sprintf(cache.DailyCashKeyFmt, day))
}
