package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/pkg/apperror"
	"github.com/sangkips/autoshop-api/pkg/pagination"
	"github.com/sangkips/autoshop-api/pkg/tax"
)

// PaymentService records payroll payments against READY jobs.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	jobRepo     repository.JobRepository
	userRepo    repository.UserRepository
	txManager   repository.TxManager
	audit       AuditLogger
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	jobRepo repository.JobRepository,
	userRepo repository.UserRepository,
	txManager repository.TxManager,
	audit AuditLogger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		jobRepo:     jobRepo,
		userRepo:    userRepo,
		txManager:   txManager,
		audit:       auditOrDiscard(audit),
	}
}

type CreatePaymentInput struct {
	EmployeeID uuid.UUID
	JobIDs     []uuid.UUID
	Method     enum.PaymentMethod
	Reference  *string
	Notes      *string
	PaidAt     *time.Time
}

// CreatePayment pays an employee for a set of their READY jobs. The amount
// is the sum of the jobs' pay. Payment and job updates commit together.
func (s *PaymentService) CreatePayment(ctx context.Context, actor Actor, input *CreatePaymentInput) (*entity.Payment, error) {
	ids := uniqueIDs(input.JobIDs)
	if len(ids) == 0 {
		return nil, apperror.NewBadRequestError("At least one job is required")
	}
	if !input.Method.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid payment method")
	}
	employee, err := s.userRepo.GetByID(ctx, input.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}

	paidAt := now().UTC()
	if input.PaidAt != nil {
		paidAt = input.PaidAt.UTC()
	}

	var payment *entity.Payment
	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		jobs, err := s.jobRepo.GetByIDs(txCtx, ids)
		if err != nil {
			return err
		}
		if len(jobs) != len(ids) {
			return apperror.NewNotFoundError("Job")
		}

		amount := 0.0
		for _, j := range jobs {
			if j.EmployeeID != input.EmployeeID {
				return apperror.NewBadRequestErrorf("Job %q belongs to another employee", j.Title)
			}
			if j.Status != enum.JobStatusReady {
				return apperror.NewBadRequestErrorf("Job %q is %s, only READY jobs can be paid", j.Title, j.Status)
			}
			amount += j.PayAmount
		}

		payment = &entity.Payment{
			EmployeeID:  input.EmployeeID,
			Amount:      tax.Round(amount),
			Method:      input.Method,
			Reference:   blankToNil(input.Reference),
			Notes:       blankToNil(input.Notes),
			PaidAt:      paidAt,
			CreatedByID: actor.userID(),
		}
		if err := s.paymentRepo.Create(txCtx, payment); err != nil {
			return err
		}

		changed, err := s.jobRepo.MarkPaid(txCtx, ids, payment.ID)
		if err != nil {
			return err
		}
		if changed != int64(len(ids)) {
			return apperror.NewConflictError("Some jobs were paid by a concurrent request")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Payroll] paid %.2f to %s for %d jobs", payment.Amount, employee.Email, len(ids))
	s.audit.Record(ctx, actor.audit(enum.AuditActionCreate, AuditPayment, payment.ID, map[string]any{
		"employee_id": input.EmployeeID,
		"amount":      payment.Amount,
		"jobs":        ids,
	}))
	return s.GetPayment(ctx, payment.ID)
}

func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

func (s *PaymentService) ListPayments(ctx context.Context, filter repository.PaymentFilter) (*pagination.PaginatedResult[entity.Payment], error) {
	if filter.Pagination == nil {
		filter.Pagination = pagination.DefaultPagination()
	}
	payments, total, err := s.paymentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(payments, pagination.NewPagination(filter.Pagination.Page, filter.Pagination.PerPage, total)), nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
