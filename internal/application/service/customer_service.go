package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/pkg/apperror"
	"github.com/sangkips/autoshop-api/pkg/pagination"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
	vehicleRepo  repository.VehicleRepository
	audit        AuditLogger
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, vehicleRepo repository.VehicleRepository, audit AuditLogger) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, vehicleRepo: vehicleRepo, audit: auditOrDiscard(audit)}
}

// CustomerInput carries inline customer data, both for the customer
// endpoints and for invoices that create their customer on the fly.
type CustomerInput struct {
	Name         string
	BusinessName *string
	Email        *string
	Phone        *string
	Address      *string
	Notes        *string
}

func (in *CustomerInput) toEntity() *entity.Customer {
	return &entity.Customer{
		Name:         strings.TrimSpace(in.Name),
		BusinessName: blankToNil(in.BusinessName),
		Email:        normalizeEmail(in.Email),
		Phone:        blankToNil(in.Phone),
		Address:      blankToNil(in.Address),
		Notes:        blankToNil(in.Notes),
	}
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, actor Actor, input *CustomerInput) (*entity.Customer, error) {
	customer := input.toEntity()
	if customer.Name == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, conflictOr(err, "A customer with this email already exists")
	}

	s.audit.Record(ctx, actor.audit(enum.AuditActionCreate, AuditCustomer, customer.ID, customer))
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers searches customers by name, business name, email or phone.
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomerInput holds a partial update. Nil fields are left unchanged.
type UpdateCustomerInput struct {
	ID           uuid.UUID
	Name         *string
	BusinessName *string
	Email        *string
	Phone        *string
	Address      *string
	Notes        *string
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, actor Actor, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewBadRequestError("Customer name cannot be empty")
		}
		customer.Name = name
	}
	if input.BusinessName != nil {
		customer.BusinessName = blankToNil(input.BusinessName)
	}
	if input.Email != nil {
		customer.Email = normalizeEmail(input.Email)
	}
	if input.Phone != nil {
		customer.Phone = blankToNil(input.Phone)
	}
	if input.Address != nil {
		customer.Address = blankToNil(input.Address)
	}
	if input.Notes != nil {
		customer.Notes = blankToNil(input.Notes)
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, conflictOr(err, "A customer with this email already exists")
	}

	s.audit.Record(ctx, actor.audit(enum.AuditActionUpdate, AuditCustomer, customer.ID, input))
	return customer, nil
}

// DeleteCustomer removes a customer that no invoice or appointment references.
func (s *CustomerService) DeleteCustomer(ctx context.Context, actor Actor, id uuid.UUID) error {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return err
	}

	refs, err := s.customerRepo.CountDependents(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return apperror.NewConflictError("Customer has invoices or appointments and cannot be deleted")
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, actor.audit(enum.AuditActionDelete, AuditCustomer, id, nil))
	return nil
}

// ListVehicles returns the vehicles registered to a customer.
func (s *CustomerService) ListVehicles(ctx context.Context, customerID uuid.UUID) ([]entity.Vehicle, error) {
	if _, err := s.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	vehicles, err := s.vehicleRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if vehicles == nil {
		vehicles = []entity.Vehicle{}
	}
	return vehicles, nil
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func normalizeEmail(s *string) *string {
	v := blankToNil(s)
	if v == nil {
		return nil
	}
	lower := strings.ToLower(*v)
	return &lower
}
