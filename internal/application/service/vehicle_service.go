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
	"github.com/sangkips/autoshop-api/pkg/utils"
)

// VehicleService manages customer vehicles.
type VehicleService struct {
	vehicleRepo  repository.VehicleRepository
	customerRepo repository.CustomerRepository
	audit        AuditLogger
}

func NewVehicleService(vehicleRepo repository.VehicleRepository, customerRepo repository.CustomerRepository, audit AuditLogger) *VehicleService {
	return &VehicleService{vehicleRepo: vehicleRepo, customerRepo: customerRepo, audit: auditOrDiscard(audit)}
}

type CreateVehicleInput struct {
	CustomerID   uuid.UUID
	Make         string
	Model        string
	Year         int
	VIN          *string
	LicensePlate *string
	Color        *string
	Mileage      *int
	Notes        *string
}

func (s *VehicleService) CreateVehicle(ctx context.Context, actor Actor, input *CreateVehicleInput) (*entity.Vehicle, error) {
	if err := s.requireCustomer(ctx, input.CustomerID); err != nil {
		return nil, err
	}
	if err := validateYear(input.Year); err != nil {
		return nil, err
	}
	vin, err := normalizeVIN(input.VIN)
	if err != nil {
		return nil, err
	}

	vehicle := &entity.Vehicle{
		CustomerID:   input.CustomerID,
		Make:         strings.TrimSpace(input.Make),
		Model:        strings.TrimSpace(input.Model),
		Year:         input.Year,
		VIN:          vin,
		LicensePlate: upperOrNil(input.LicensePlate),
		Color:        blankToNil(input.Color),
		Mileage:      input.Mileage,
		Notes:        blankToNil(input.Notes),
	}
	if vehicle.Make == "" || vehicle.Model == "" {
		return nil, apperror.NewBadRequestError("Vehicle make and model are required")
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, conflictOr(err, "A vehicle with this VIN already exists")
	}

	s.audit.Record(ctx, actor.audit(enum.AuditActionCreate, AuditVehicle, vehicle.ID, vehicle))
	return vehicle, nil
}

func (s *VehicleService) GetVehicle(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperror.NewNotFoundError("Vehicle")
	}
	return vehicle, nil
}

func (s *VehicleService) ListVehicles(ctx context.Context, filter repository.VehicleFilter) (*pagination.PaginatedResult[entity.Vehicle], error) {
	if filter.Pagination == nil {
		filter.Pagination = pagination.DefaultPagination()
	}
	vehicles, total, err := s.vehicleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(vehicles, pagination.NewPagination(filter.Pagination.Page, filter.Pagination.PerPage, total)), nil
}

// UpdateVehicleInput is a partial update. Nil fields are unchanged.
type UpdateVehicleInput struct {
	ID           uuid.UUID
	CustomerID   *uuid.UUID
	Make         *string
	Model        *string
	Year         *int
	VIN          *string
	LicensePlate *string
	Color        *string
	Mileage      *int
	Notes        *string
}

func (s *VehicleService) UpdateVehicle(ctx context.Context, actor Actor, input *UpdateVehicleInput) (*entity.Vehicle, error) {
	vehicle, err := s.GetVehicle(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.CustomerID != nil && *input.CustomerID != vehicle.CustomerID {
		if err := s.requireCustomer(ctx, *input.CustomerID); err != nil {
			return nil, err
		}
		vehicle.CustomerID = *input.CustomerID
		vehicle.Customer = nil
	}
	if input.Make != nil {
		vehicle.Make = strings.TrimSpace(*input.Make)
	}
	if input.Model != nil {
		vehicle.Model = strings.TrimSpace(*input.Model)
	}
	if vehicle.Make == "" || vehicle.Model == "" {
		return nil, apperror.NewBadRequestError("Vehicle make and model are required")
	}
	if input.Year != nil {
		if err := validateYear(*input.Year); err != nil {
			return nil, err
		}
		vehicle.Year = *input.Year
	}
	if input.VIN != nil {
		vin, err := normalizeVIN(input.VIN)
		if err != nil {
			return nil, err
		}
		vehicle.VIN = vin
	}
	if input.LicensePlate != nil {
		vehicle.LicensePlate = upperOrNil(input.LicensePlate)
	}
	if input.Color != nil {
		vehicle.Color = blankToNil(input.Color)
	}
	if input.Mileage != nil {
		if *input.Mileage < 0 {
			return nil, apperror.NewBadRequestError("Mileage cannot be negative")
		}
		vehicle.Mileage = input.Mileage
	}
	if input.Notes != nil {
		vehicle.Notes = blankToNil(input.Notes)
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, conflictOr(err, "A vehicle with this VIN already exists")
	}
	s.audit.Record(ctx, actor.audit(enum.AuditActionUpdate, AuditVehicle, vehicle.ID, input))
	return vehicle, nil
}

func (s *VehicleService) DeleteVehicle(ctx context.Context, actor Actor, id uuid.UUID) error {
	if _, err := s.GetVehicle(ctx, id); err != nil {
		return err
	}
	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, actor.audit(enum.AuditActionDelete, AuditVehicle, id, nil))
	return nil
}

func (s *VehicleService) requireCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return nil
}

func validateYear(year int) error {
	if year < 1900 || year > now().Year()+1 {
		return apperror.NewBadRequestErrorf("Vehicle year %d is out of range", year)
	}
	return nil
}

func normalizeVIN(vin *string) (*string, error) {
	v := blankToNil(vin)
	if v == nil {
		return nil, nil
	}
	n := utils.NormalizeVIN(*v)
	if !utils.ValidVIN(n) {
		return nil, apperror.NewBadRequestError("VIN must be 17 characters and cannot contain I, O or Q")
	}
	return &n, nil
}

func upperOrNil(s *string) *string {
	v := blankToNil(s)
	if v == nil {
		return nil
	}
	u := strings.ToUpper(*v)
	return &u
}

// vehicleOwnedBy checks that a vehicle exists and belongs to customerID.
func vehicleOwnedBy(ctx context.Context, repo repository.VehicleRepository, vehicleID, customerID uuid.UUID) (*entity.Vehicle, error) {
	vehicle, err := repo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperror.NewNotFoundError("Vehicle")
	}
	if vehicle.CustomerID != customerID {
		return nil, apperror.NewBadRequestError("Vehicle does not belong to this customer")
	}
	return vehicle, nil
}
