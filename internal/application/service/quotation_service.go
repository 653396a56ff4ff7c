package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/pkg/apperror"
	"github.com/sangkips/autoshop-api/pkg/metrics"
	"github.com/sangkips/autoshop-api/pkg/pagination"
	"github.com/sangkips/autoshop-api/pkg/tax"
	"github.com/sangkips/autoshop-api/pkg/utils"
)

// QuotationService handles quotation-related operations
type QuotationService struct {
	quotationRepo repository.QuotationRepository
	customerRepo  repository.CustomerRepository
	vehicleRepo   repository.VehicleRepository
	tireRepo      repository.TireRepository
	invoices      *InvoiceService
	txManager     repository.TxManager
	audit         AuditLogger
}

// NewQuotationService creates a new quotation service. Conversion goes
// through invoices so a converted quotation is persisted exactly like a
// hand-entered invoice.
func NewQuotationService(
	quotationRepo repository.QuotationRepository,
	customerRepo repository.CustomerRepository,
	vehicleRepo repository.VehicleRepository,
	tireRepo repository.TireRepository,
	invoices *InvoiceService,
	txManager repository.TxManager,
	audit AuditLogger,
) *QuotationService {
	return &QuotationService{
		quotationRepo: quotationRepo,
		customerRepo:  customerRepo,
		vehicleRepo:   vehicleRepo,
		tireRepo:      tireRepo,
		invoices:      invoices,
		txManager:     txManager,
		audit:         auditOrDiscard(audit),
	}
}

// CreateQuotationInput represents the input for creating a quotation
type CreateQuotationInput struct {
	CustomerID *uuid.UUID
	VehicleID  *uuid.UUID
	Items      []LineItemInput
	Tax        tax.Input
	Status     *enum.QuotationStatus
	ValidUntil *time.Time
	Notes      *string
}

// CreateQuotation prices the items and stores a quotation. Stock is untouched.
func (s *QuotationService) CreateQuotation(ctx context.Context, actor Actor, input *CreateQuotationInput) (*entity.Quotation, error) {
	if err := validateLines(input.Items); err != nil {
		return nil, err
	}
	rates, err := resolveRates(input.Tax, s.invoices.DefaultTaxRate())
	if err != nil {
		return nil, err
	}
	status := enum.QuotationStatusDraft
	if input.Status != nil {
		if *input.Status == enum.QuotationStatusConverted || !input.Status.IsValid() {
			return nil, apperror.NewBadRequestError("Invalid quotation status")
		}
		status = *input.Status
	}
	if err := s.checkParties(ctx, input.CustomerID, input.VehicleID); err != nil {
		return nil, err
	}

	tires, err := loadTires(ctx, s.tireRepo, input.Items)
	if err != nil {
		return nil, err
	}
	lines, subtotal := priceLines(input.Items, tires)

	var quotation *entity.Quotation
	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		number, err := s.nextNumber(txCtx)
		if err != nil {
			return err
		}
		quotation = &entity.Quotation{
			QuotationNumber: number,
			CustomerID:      input.CustomerID,
			VehicleID:       input.VehicleID,
			CreatedByID:     actor.userID(),
			Status:          status,
			ValidUntil:      input.ValidUntil,
			Notes:           blankToNil(input.Notes),
			Items:           quotationItems(lines),
		}
		quotation.Totals.Apply(rates.Apply(subtotal))
		if err := s.quotationRepo.Create(txCtx, quotation); err != nil {
			return conflictOr(err, "Quotation number "+number+" was taken by a concurrent request, please retry")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor.audit(enum.AuditActionCreate, AuditQuotation, quotation.ID, map[string]any{
		"quotation_number": quotation.QuotationNumber,
		"total":            quotation.Total,
		"items":            len(quotation.Items),
	}))
	return s.GetQuotation(ctx, quotation.ID)
}

func (s *QuotationService) GetQuotation(ctx context.Context, id uuid.UUID) (*entity.Quotation, error) {
	quotation, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}
	return quotation, nil
}

func (s *QuotationService) ListQuotations(ctx context.Context, filter repository.QuotationFilter) (*pagination.PaginatedResult[entity.Quotation], error) {
	if filter.Pagination == nil {
		filter.Pagination = pagination.DefaultPagination()
	}
	quotations, total, err := s.quotationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(quotations, pagination.NewPagination(filter.Pagination.Page, filter.Pagination.PerPage, total)), nil
}

// UpdateQuotationInput is a partial update. A non-nil Items replaces every
// line and reprices the quotation.
type UpdateQuotationInput struct {
	ID         uuid.UUID
	CustomerID *uuid.UUID
	VehicleID  *uuid.UUID
	Items      []LineItemInput
	Tax        *tax.Input
	Status     *enum.QuotationStatus
	ValidUntil *time.Time
	Notes      *string
}

func (s *QuotationService) UpdateQuotation(ctx context.Context, actor Actor, input *UpdateQuotationInput) (*entity.Quotation, error) {
	quotation, err := s.GetQuotation(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if quotation.IsConverted() {
		return nil, apperror.NewBadRequestError("Converted quotations cannot be modified")
	}

	if input.CustomerID != nil {
		quotation.CustomerID = input.CustomerID
		quotation.Customer = nil
	}
	if input.VehicleID != nil {
		quotation.VehicleID = input.VehicleID
		quotation.Vehicle = nil
	}
	if err := s.checkParties(ctx, quotation.CustomerID, quotation.VehicleID); err != nil {
		return nil, err
	}
	if input.Status != nil {
		if *input.Status == enum.QuotationStatusConverted || !input.Status.IsValid() {
			return nil, apperror.NewBadRequestError("Invalid quotation status")
		}
		quotation.Status = *input.Status
	}
	if input.ValidUntil != nil {
		quotation.ValidUntil = input.ValidUntil
	}
	if input.Notes != nil {
		quotation.Notes = blankToNil(input.Notes)
	}

	rates := quotation.Rates()
	if input.Tax != nil {
		if rates, err = resolveRates(*input.Tax, s.invoices.DefaultTaxRate()); err != nil {
			return nil, err
		}
	}

	var items []entity.QuotationItem
	subtotal := quotation.Subtotal
	if input.Items != nil {
		if err := validateLines(input.Items); err != nil {
			return nil, err
		}
		tires, err := loadTires(ctx, s.tireRepo, input.Items)
		if err != nil {
			return nil, err
		}
		var lines []pricedLine
		lines, subtotal = priceLines(input.Items, tires)
		items = quotationItems(lines)
	}
	quotation.Totals.Apply(rates.Apply(subtotal))

	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.quotationRepo.Update(txCtx, quotation); err != nil {
			return err
		}
		if items != nil {
			return s.quotationRepo.ReplaceItems(txCtx, quotation.ID, items)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor.audit(enum.AuditActionUpdate, AuditQuotation, quotation.ID, input))
	return s.GetQuotation(ctx, quotation.ID)
}

func (s *QuotationService) DeleteQuotation(ctx context.Context, actor Actor, id uuid.UUID) error {
	quotation, err := s.GetQuotation(ctx, id)
	if err != nil {
		return err
	}
	if quotation.IsConverted() {
		return apperror.NewBadRequestError("Converted quotations cannot be deleted")
	}
	if err := s.quotationRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, actor.audit(enum.AuditActionDelete, AuditQuotation, id, nil))
	return nil
}

// ConvertQuotationInput names the quotation and, optionally, the customer and
// vehicle of the resulting invoice.
type ConvertQuotationInput struct {
	QuotationID   uuid.UUID
	CustomerID    *uuid.UUID
	VehicleID     *uuid.UUID
	PaymentMethod *enum.PaymentMethod
}

// ConvertQuotation turns a quotation into a PENDING invoice with the same
// lines and tax rates. The invoice, its stock movements and the status flip
// commit together; a quotation converts at most once.
func (s *QuotationService) ConvertQuotation(ctx context.Context, actor Actor, input *ConvertQuotationInput) (*entity.Invoice, error) {
	quotation, err := s.GetQuotation(ctx, input.QuotationID)
	if err != nil {
		return nil, err
	}
	if quotation.IsConverted() {
		return nil, apperror.NewBadRequestError("Quotation has already been converted")
	}

	customerID := input.CustomerID
	if customerID == nil {
		customerID = quotation.CustomerID
	}
	if customerID == nil {
		return nil, apperror.NewBadRequestError("A customer is required to convert this quotation")
	}
	vehicleID := input.VehicleID
	if vehicleID == nil {
		vehicleID = quotation.VehicleID
	}
	if input.PaymentMethod != nil && !input.PaymentMethod.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid payment method")
	}

	draft := invoiceDraft{
		customer:      CustomerRef{ID: customerID},
		vehicleID:     vehicleID,
		items:         lineInputs(quotation.Items),
		rates:         quotation.Rates(),
		paymentMethod: input.PaymentMethod,
		notes:         quotation.Notes,
		quotationID:   &quotation.ID,
		createdBy:     actor.userID(),
	}

	var res *invoiceResult
	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		if res, err = s.invoices.persist(txCtx, draft); err != nil {
			return err
		}
		changed, err := s.quotationRepo.MarkConverted(txCtx, quotation.ID, res.invoice.ID, now().UTC())
		if err != nil {
			return err
		}
		if !changed {
			return errAlreadyConverted
		}
		return nil
	})
	if errors.Is(err, errAlreadyConverted) {
		return nil, apperror.NewBadRequestError("Quotation has already been converted")
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[Quotation] %s converted to %s", quotation.QuotationNumber, res.invoice.InvoiceNumber)
	metrics.QuotationsConverted.Inc()
	s.audit.Record(ctx, actor.audit(enum.AuditActionConvert, AuditQuotation, quotation.ID, map[string]string{
		"invoice_id":     res.invoice.ID.String(),
		"invoice_number": res.invoice.InvoiceNumber,
	}))
	s.invoices.afterCreate(ctx, actor, res)
	return res.invoice, nil
}

var errAlreadyConverted = errors.New("quotation already converted")

func (s *QuotationService) checkParties(ctx context.Context, customerID, vehicleID *uuid.UUID) error {
	if customerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}
	}
	if vehicleID == nil {
		return nil
	}
	if customerID != nil {
		_, err := vehicleOwnedBy(ctx, s.vehicleRepo, *vehicleID, *customerID)
		return err
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, *vehicleID)
	if err != nil {
		return err
	}
	if vehicle == nil {
		return apperror.NewNotFoundError("Vehicle")
	}
	return nil
}

func (s *QuotationService) nextNumber(ctx context.Context) (string, error) {
	at := now().In(s.invoices.loc)
	existing, err := s.quotationRepo.NumbersWithPrefix(ctx, utils.DocumentNumberPrefix(utils.QuotationPrefix, at))
	if err != nil {
		return "", err
	}
	return utils.NextDocumentNumber(utils.QuotationPrefix, at, existing), nil
}

func quotationItems(lines []pricedLine) []entity.QuotationItem {
	items := make([]entity.QuotationItem, 0, len(lines))
	for i, l := range lines {
		items = append(items, entity.QuotationItem{
			Position:    i,
			ItemType:    l.ItemType,
			TireID:      l.TireID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Total:       l.Total,
		})
	}
	return items
}

func lineInputs(items []entity.QuotationItem) []LineItemInput {
	in := make([]LineItemInput, 0, len(items))
	for _, it := range items {
		in = append(in, LineItemInput{
			ItemType:    it.ItemType,
			TireID:      it.TireID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return in
}
