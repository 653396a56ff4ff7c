package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/authz"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/pkg/apperror"
	"github.com/sangkips/autoshop-api/pkg/metrics"
	"github.com/sangkips/autoshop-api/pkg/pagination"
)

const tireConflictMsg = "A tire with this brand, model, size and condition already exists"

// TireService manages tire inventory.
type TireService struct {
	tireRepo  repository.TireRepository
	txManager repository.TxManager
	audit     AuditLogger
	notifier  *NotificationService
}

func NewTireService(tireRepo repository.TireRepository, txManager repository.TxManager, audit AuditLogger, notifier *NotificationService) *TireService {
	return &TireService{tireRepo: tireRepo, txManager: txManager, audit: auditOrDiscard(audit), notifier: notifier}
}

type TireInput struct {
	Brand       string
	Model       string
	Size        string
	Type        enum.TireType
	Condition   enum.TireCondition
	Price       float64
	Cost        *float64
	Quantity    int
	MinStock    int
	Location    *string
	Description *string
}

func (in *TireInput) validate() error {
	if in.Brand == "" || in.Model == "" || in.Size == "" {
		return apperror.NewBadRequestError("Tire brand, model and size are required")
	}
	if in.Price < 0 || (in.Cost != nil && *in.Cost < 0) {
		return apperror.NewBadRequestError("Price and cost cannot be negative")
	}
	if in.Quantity < 0 || in.MinStock < 0 {
		return apperror.NewBadRequestError("Quantity and minimum stock cannot be negative")
	}
	if !in.Type.IsValid() || !in.Condition.IsValid() {
		return apperror.NewBadRequestError("Invalid tire type or condition")
	}
	return nil
}

func (s *TireService) CreateTire(ctx context.Context, actor Actor, input *TireInput) (*entity.Tire, error) {
	input.Brand = strings.TrimSpace(input.Brand)
	input.Model = strings.TrimSpace(input.Model)
	input.Size = strings.ToUpper(strings.TrimSpace(input.Size))
	if err := input.validate(); err != nil {
		return nil, err
	}

	existing, err := s.tireRepo.GetBySpec(ctx, input.Brand, input.Model, input.Size, input.Condition)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError(tireConflictMsg)
	}

	tire := &entity.Tire{
		Brand:       input.Brand,
		Model:       input.Model,
		Size:        input.Size,
		Type:        input.Type,
		Condition:   input.Condition,
		Price:       input.Price,
		Cost:        input.Cost,
		Quantity:    input.Quantity,
		MinStock:    input.MinStock,
		Location:    blankToNil(input.Location),
		Description: blankToNil(input.Description),
	}
	if err := s.tireRepo.Create(ctx, tire); err != nil {
		return nil, conflictOr(err, tireConflictMsg)
	}
	tire.LowStock = tire.IsLowStock()

	s.audit.Record(ctx, actor.audit(enum.AuditActionCreate, AuditTire, tire.ID, tire))
	return tire, nil
}

func (s *TireService) GetTire(ctx context.Context, id uuid.UUID) (*entity.Tire, error) {
	tire, err := s.tireRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tire == nil {
		return nil, apperror.NewNotFoundError("Tire")
	}
	return tire, nil
}

func (s *TireService) ListTires(ctx context.Context, filter repository.TireFilter) (*pagination.PaginatedResult[entity.Tire], error) {
	if filter.Pagination == nil {
		filter.Pagination = pagination.DefaultPagination()
	}
	tires, total, err := s.tireRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(tires, pagination.NewPagination(filter.Pagination.Page, filter.Pagination.PerPage, total)), nil
}

func (s *TireService) ListLowStock(ctx context.Context) ([]entity.Tire, error) {
	tires, err := s.tireRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	if tires == nil {
		tires = []entity.Tire{}
	}
	return tires, nil
}

// UpdateTireInput is a partial update. Quantity changes go through AdjustStock.
type UpdateTireInput struct {
	ID          uuid.UUID
	Brand       *string
	Model       *string
	Size        *string
	Type        *enum.TireType
	Condition   *enum.TireCondition
	Price       *float64
	Cost        *float64
	MinStock    *int
	Location    *string
	Description *string
}

func (s *TireService) UpdateTire(ctx context.Context, actor Actor, input *UpdateTireInput) (*entity.Tire, error) {
	tire, err := s.GetTire(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	in := TireInput{
		Brand: tire.Brand, Model: tire.Model, Size: tire.Size, Type: tire.Type, Condition: tire.Condition,
		Price: tire.Price, Cost: tire.Cost, Quantity: tire.Quantity, MinStock: tire.MinStock,
	}
	if input.Brand != nil {
		in.Brand = strings.TrimSpace(*input.Brand)
	}
	if input.Model != nil {
		in.Model = strings.TrimSpace(*input.Model)
	}
	if input.Size != nil {
		in.Size = strings.ToUpper(strings.TrimSpace(*input.Size))
	}
	if input.Type != nil {
		in.Type = *input.Type
	}
	if input.Condition != nil {
		in.Condition = *input.Condition
	}
	if input.Price != nil {
		in.Price = *input.Price
	}
	if input.Cost != nil {
		in.Cost = input.Cost
	}
	if input.MinStock != nil {
		in.MinStock = *input.MinStock
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	tire.Brand, tire.Model, tire.Size = in.Brand, in.Model, in.Size
	tire.Type, tire.Condition = in.Type, in.Condition
	tire.Price, tire.Cost, tire.MinStock = in.Price, in.Cost, in.MinStock
	if input.Location != nil {
		tire.Location = blankToNil(input.Location)
	}
	if input.Description != nil {
		tire.Description = blankToNil(input.Description)
	}

	if err := s.tireRepo.Update(ctx, tire); err != nil {
		return nil, conflictOr(err, tireConflictMsg)
	}
	tire.LowStock = tire.IsLowStock()

	s.audit.Record(ctx, actor.audit(enum.AuditActionUpdate, AuditTire, tire.ID, input))
	return tire, nil
}

func (s *TireService) DeleteTire(ctx context.Context, actor Actor, id uuid.UUID) error {
	if _, err := s.GetTire(ctx, id); err != nil {
		return err
	}
	if err := s.tireRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, actor.audit(enum.AuditActionDelete, AuditTire, id, nil))
	return nil
}

// AdjustStockInput is a manual inventory correction.
type AdjustStockInput struct {
	TireID   uuid.UUID
	Type     enum.StockAdjustmentType
	Quantity int
	Reason   string
}

// StockChange is what an adjustment recorded.
type StockChange struct {
	Type        enum.StockAdjustmentType `json:"type"`
	Quantity    int                      `json:"quantity"`
	Reason      string                   `json:"reason,omitempty"`
	OldQuantity int                      `json:"old_quantity"`
	NewQuantity int                      `json:"new_quantity"`
}

// AdjustStock adds, removes or sets on-hand quantity. Removing more than is
// on hand is refused; setting a negative quantity stores zero.
func (s *TireService) AdjustStock(ctx context.Context, actor Actor, input *AdjustStockInput) (*entity.Tire, error) {
	if !input.Type.IsValid() {
		return nil, apperror.NewBadRequestError("Adjustment type must be add, remove or set")
	}
	if input.Type != enum.StockAdjustmentTypeSet && input.Quantity < 0 {
		return nil, apperror.NewBadRequestError("Quantity cannot be negative")
	}

	var tire *entity.Tire
	var change StockChange
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.tireRepo.GetByID(txCtx, input.TireID)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.NewNotFoundError("Tire")
		}
		change = StockChange{Type: input.Type, Quantity: input.Quantity, Reason: input.Reason, OldQuantity: current.Quantity}

		switch input.Type {
		case enum.StockAdjustmentTypeAdd:
			err = s.tireRepo.IncrementStock(txCtx, current.ID, input.Quantity)
		case enum.StockAdjustmentTypeRemove:
			var ok bool
			ok, err = s.tireRepo.DecrementStock(txCtx, current.ID, input.Quantity)
			if err == nil && !ok {
				return apperror.NewBadRequestErrorf("Cannot remove %d units: only %d in stock", input.Quantity, current.Quantity)
			}
		case enum.StockAdjustmentTypeSet:
			qty := input.Quantity
			if qty < 0 {
				qty = 0
			}
			err = s.tireRepo.SetStock(txCtx, current.ID, qty)
		}
		if err != nil {
			return err
		}

		tire, err = s.tireRepo.GetByID(txCtx, current.ID)
		if err != nil {
			return err
		}
		change.NewQuantity = tire.Quantity
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.StockAdjustments.WithLabelValues(input.Type.String()).Inc()
	s.audit.Record(ctx, actor.audit(enum.AuditActionStockAdjust, AuditTire, tire.ID, change))
	if tire.IsLowStock() {
		s.notifier.LowStock(ctx, []entity.Tire{*tire})
	}
	return tire, nil
}

// HideCost strips purchase cost from tires the actor may not see it on.
func HideCost(actor Actor, tires ...*entity.Tire) {
	if actor.Can(authz.TiresViewCost) {
		return
	}
	for _, t := range tires {
		if t != nil {
			t.Cost = nil
		}
	}
}
