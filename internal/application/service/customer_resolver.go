package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/pkg/apperror"
)

// CustomerRef names the customer of a new invoice: an existing id, inline
// details for a new customer, or both.
type CustomerRef struct {
	ID  *uuid.UUID
	New *CustomerInput
}

// CustomerResolver turns a CustomerRef into a stored customer.
type CustomerResolver struct {
	customers repository.CustomerRepository
}

func NewCustomerResolver(customers repository.CustomerRepository) *CustomerResolver {
	return &CustomerResolver{customers: customers}
}

// Resolve returns the referenced customer, creating it from the inline data
// when no id is given. An id always wins so a retried form never produces a
// duplicate. The second return value is true when a customer was created.
// Call it with a transactional ctx to make creation part of the caller's unit of work.
func (r *CustomerResolver) Resolve(ctx context.Context, ref CustomerRef) (*entity.Customer, bool, error) {
	if ref.ID != nil && *ref.ID != uuid.Nil {
		customer, err := r.customers.GetByID(ctx, *ref.ID)
		if err != nil {
			return nil, false, err
		}
		if customer == nil {
			return nil, false, apperror.NewNotFoundError("Customer")
		}
		return customer, false, nil
	}

	if ref.New == nil {
		return nil, false, apperror.NewBadRequestError("Either customerId or customer details are required")
	}

	customer := ref.New.toEntity()
	if customer.Name == "" {
		return nil, false, apperror.NewBadRequestError("Customer name is required")
	}
	if err := r.customers.Create(ctx, customer); err != nil {
		return nil, false, conflictOr(err, "A customer with this email already exists")
	}
	return customer, true, nil
}
