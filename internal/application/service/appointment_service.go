package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/internal/infrastructure/cache"
	"github.com/sangkips/autoshop-api/pkg/apperror"
	"github.com/sangkips/autoshop-api/pkg/pagination"
)

const defaultAppointmentMinutes = 60

// AppointmentService books service slots and sends reminders.
type AppointmentService struct {
	appointmentRepo repository.AppointmentRepository
	customerRepo    repository.CustomerRepository
	vehicleRepo     repository.VehicleRepository
	userRepo        repository.UserRepository
	notifier        *NotificationService
	audit           AuditLogger
	cache           *cache.Cache
	shopName        string
	loc             *time.Location
}

// AppointmentServiceDeps groups the collaborators of AppointmentService.
type AppointmentServiceDeps struct {
	AppointmentRepo repository.AppointmentRepository
	CustomerRepo    repository.CustomerRepository
	VehicleRepo     repository.VehicleRepository
	UserRepo        repository.UserRepository
	Notifier        *NotificationService
	Audit           AuditLogger
	Cache           *cache.Cache
	ShopName        string
	Location        *time.Location
}

func NewAppointmentService(d AppointmentServiceDeps) *AppointmentService {
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}
	return &AppointmentService{
		appointmentRepo: d.AppointmentRepo,
		customerRepo:    d.CustomerRepo,
		vehicleRepo:     d.VehicleRepo,
		userRepo:        d.UserRepo,
		notifier:        d.Notifier,
		audit:           auditOrDiscard(d.Audit),
		cache:           d.Cache,
		shopName:        d.ShopName,
		loc:             loc,
	}
}

type CreateAppointmentInput struct {
	CustomerID      uuid.UUID
	VehicleID       *uuid.UUID
	AssignedToID    *uuid.UUID
	ScheduledAt     time.Time
	DurationMinutes int
	ServiceType     string
	Status          *enum.AppointmentStatus
	Notes           *string
}

func (s *AppointmentService) CreateAppointment(ctx context.Context, actor Actor, input *CreateAppointmentInput) (*entity.Appointment, error) {
	serviceType := strings.TrimSpace(input.ServiceType)
	if serviceType == "" {
		return nil, apperror.NewBadRequestError("Service type is required")
	}
	if input.ScheduledAt.IsZero() {
		return nil, apperror.NewBadRequestError("Scheduled time is required")
	}
	duration := input.DurationMinutes
	if duration == 0 {
		duration = defaultAppointmentMinutes
	}
	if duration < 0 {
		return nil, apperror.NewBadRequestError("Duration cannot be negative")
	}
	status := enum.AppointmentStatusScheduled
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, apperror.NewBadRequestError("Invalid appointment status")
		}
		status = *input.Status
	}

	if err := s.checkRefs(ctx, input.CustomerID, input.VehicleID, input.AssignedToID); err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		CustomerID:      input.CustomerID,
		VehicleID:       input.VehicleID,
		AssignedToID:    input.AssignedToID,
		ScheduledAt:     input.ScheduledAt.UTC(),
		DurationMinutes: duration,
		ServiceType:     serviceType,
		Status:          status,
		Notes:           blankToNil(input.Notes),
	}
	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor.audit(enum.AuditActionCreate, AuditAppointment, appointment.ID, appointment))
	s.cache.Delete(ctx, cache.DashboardKey)
	return s.GetAppointment(ctx, appointment.ID)
}

func (s *AppointmentService) GetAppointment(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NewNotFoundError("Appointment")
	}
	return appointment, nil
}

func (s *AppointmentService) ListAppointments(ctx context.Context, filter repository.AppointmentFilter) (*pagination.PaginatedResult[entity.Appointment], error) {
	if filter.Pagination == nil {
		filter.Pagination = pagination.DefaultPagination()
	}
	appointments, total, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(appointments, pagination.NewPagination(filter.Pagination.Page, filter.Pagination.PerPage, total)), nil
}

type UpdateAppointmentInput struct {
	ID              uuid.UUID
	VehicleID       *uuid.UUID
	AssignedToID    *uuid.UUID
	ScheduledAt     *time.Time
	DurationMinutes *int
	ServiceType     *string
	Status          *enum.AppointmentStatus
	Notes           *string
}

func (s *AppointmentService) UpdateAppointment(ctx context.Context, actor Actor, input *UpdateAppointmentInput) (*entity.Appointment, error) {
	appointment, err := s.GetAppointment(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.VehicleID != nil {
		appointment.VehicleID = input.VehicleID
		appointment.Vehicle = nil
	}
	if input.AssignedToID != nil {
		appointment.AssignedToID = input.AssignedToID
		appointment.AssignedTo = nil
	}
	if err := s.checkRefs(ctx, appointment.CustomerID, input.VehicleID, input.AssignedToID); err != nil {
		return nil, err
	}
	if input.ScheduledAt != nil {
		if !input.ScheduledAt.Equal(appointment.ScheduledAt) {
			appointment.ReminderSentAt = nil
		}
		appointment.ScheduledAt = input.ScheduledAt.UTC()
	}
	if input.DurationMinutes != nil {
		if *input.DurationMinutes <= 0 {
			return nil, apperror.NewBadRequestError("Duration must be positive")
		}
		appointment.DurationMinutes = *input.DurationMinutes
	}
	if input.ServiceType != nil {
		st := strings.TrimSpace(*input.ServiceType)
		if st == "" {
			return nil, apperror.NewBadRequestError("Service type is required")
		}
		appointment.ServiceType = st
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, apperror.NewBadRequestError("Invalid appointment status")
		}
		appointment.Status = *input.Status
	}
	if input.Notes != nil {
		appointment.Notes = blankToNil(input.Notes)
	}

	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actor.audit(enum.AuditActionUpdate, AuditAppointment, appointment.ID, input))
	s.cache.Delete(ctx, cache.DashboardKey)
	return s.GetAppointment(ctx, appointment.ID)
}

func (s *AppointmentService) DeleteAppointment(ctx context.Context, actor Actor, id uuid.UUID) error {
	if _, err := s.GetAppointment(ctx, id); err != nil {
		return err
	}
	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, actor.audit(enum.AuditActionDelete, AuditAppointment, id, nil))
	s.cache.Delete(ctx, cache.DashboardKey)
	return nil
}

// SendReminder texts the customer about an upcoming appointment and stamps
// ReminderSentAt. Gateway errors surface as 502.
func (s *AppointmentService) SendReminder(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := s.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	switch appointment.Status {
	case enum.AppointmentStatusCancelled, enum.AppointmentStatusCompleted, enum.AppointmentStatusNoShow:
		return nil, apperror.NewBadRequestErrorf("Cannot remind a %s appointment", appointment.Status)
	}
	if appointment.Customer == nil || appointment.Customer.Phone == nil || *appointment.Customer.Phone == "" {
		return nil, apperror.NewBadRequestError("Customer has no phone number on file")
	}

	if err := s.notifier.SMS(ctx, *appointment.Customer.Phone, s.reminderText(appointment)); err != nil {
		return nil, apperror.NewAppError(http.StatusBadGateway, "Failed to send reminder: "+err.Error())
	}

	at := now().UTC()
	appointment.ReminderSentAt = &at
	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actor.audit(enum.AuditActionUpdate, AuditAppointment, appointment.ID, map[string]any{
		"reminder_sent_at": at,
	}))
	return appointment, nil
}

func (s *AppointmentService) reminderText(a *entity.Appointment) string {
	when := a.ScheduledAt.In(s.loc).Format("Mon Jan 2 at 3:04 PM")
	shop := s.shopName
	if shop == "" {
		shop = "the shop"
	}
	msg := fmt.Sprintf("Hi %s, this is a reminder of your %s appointment at %s on %s.", a.Customer.Name, a.ServiceType, shop, when)
	if a.Vehicle != nil {
		msg += fmt.Sprintf(" Vehicle: %d %s %s.", a.Vehicle.Year, a.Vehicle.Make, a.Vehicle.Model)
	}
	return msg
}

func (s *AppointmentService) checkRefs(ctx context.Context, customerID uuid.UUID, vehicleID, assignedTo *uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	if vehicleID != nil {
		if _, err := vehicleOwnedBy(ctx, s.vehicleRepo, *vehicleID, customerID); err != nil {
			return err
		}
	}
	if assignedTo != nil {
		user, err := s.userRepo.GetByID(ctx, *assignedTo)
		if err != nil {
			return err
		}
		if user == nil {
			return apperror.NewNotFoundError("Assigned user")
		}
	}
	return nil
}
