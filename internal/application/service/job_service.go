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
	"github.com/sangkips/autoshop-api/pkg/pagination"
)

// JobService tracks work credited to employees for payroll.
type JobService struct {
	jobRepo  repository.JobRepository
	userRepo repository.UserRepository
	audit    AuditLogger
}

func NewJobService(jobRepo repository.JobRepository, userRepo repository.UserRepository, audit AuditLogger) *JobService {
	return &JobService{jobRepo: jobRepo, userRepo: userRepo, audit: auditOrDiscard(audit)}
}

type CreateJobInput struct {
	EmployeeID  uuid.UUID
	InvoiceID   *uuid.UUID
	Title       string
	Description *string
	PayAmount   float64
}

func (s *JobService) CreateJob(ctx context.Context, actor Actor, input *CreateJobInput) (*entity.Job, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperror.NewBadRequestError("Job title is required")
	}
	if input.PayAmount < 0 {
		return nil, apperror.NewBadRequestError("Pay amount cannot be negative")
	}
	if _, err := s.requireEmployee(ctx, input.EmployeeID); err != nil {
		return nil, err
	}

	job := &entity.Job{
		EmployeeID:  input.EmployeeID,
		InvoiceID:   input.InvoiceID,
		Title:       title,
		Description: blankToNil(input.Description),
		PayAmount:   input.PayAmount,
		Status:      enum.JobStatusPending,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actor.audit(enum.AuditActionCreate, AuditJob, job.ID, job))
	return s.jobRepo.GetByID(ctx, job.ID)
}

// GetJob returns a job. Employees without JobsViewAll only see their own.
func (s *JobService) GetJob(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil || !canSeeJob(actor, job) {
		return nil, apperror.NewNotFoundError("Job")
	}
	return job, nil
}

// ListJobs scopes the listing to the actor unless they may see every job.
func (s *JobService) ListJobs(ctx context.Context, actor Actor, filter repository.JobFilter) (*pagination.PaginatedResult[entity.Job], error) {
	if filter.Pagination == nil {
		filter.Pagination = pagination.DefaultPagination()
	}
	if !actor.Can(authz.JobsViewAll) {
		filter.EmployeeID = &actor.UserID
	}
	jobs, total, err := s.jobRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(jobs, pagination.NewPagination(filter.Pagination.Page, filter.Pagination.PerPage, total)), nil
}

type UpdateJobInput struct {
	ID          uuid.UUID
	EmployeeID  *uuid.UUID
	InvoiceID   *uuid.UUID
	Title       *string
	Description *string
	PayAmount   *float64
}

func (s *JobService) UpdateJob(ctx context.Context, actor Actor, input *UpdateJobInput) (*entity.Job, error) {
	job, err := s.GetJob(ctx, actor, input.ID)
	if err != nil {
		return nil, err
	}
	if job.Status == enum.JobStatusPaid {
		return nil, apperror.NewBadRequestError("Paid jobs cannot be modified")
	}

	if input.EmployeeID != nil && *input.EmployeeID != job.EmployeeID {
		if _, err := s.requireEmployee(ctx, *input.EmployeeID); err != nil {
			return nil, err
		}
		job.EmployeeID = *input.EmployeeID
		job.Employee = nil
	}
	if input.InvoiceID != nil {
		job.InvoiceID = input.InvoiceID
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperror.NewBadRequestError("Job title is required")
		}
		job.Title = title
	}
	if input.Description != nil {
		job.Description = blankToNil(input.Description)
	}
	if input.PayAmount != nil {
		if *input.PayAmount < 0 {
			return nil, apperror.NewBadRequestError("Pay amount cannot be negative")
		}
		job.PayAmount = *input.PayAmount
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actor.audit(enum.AuditActionUpdate, AuditJob, job.ID, input))
	return s.jobRepo.GetByID(ctx, job.ID)
}

// SetStatus moves a job between PENDING and READY. PAID is reached only by
// recording a payment.
func (s *JobService) SetStatus(ctx context.Context, actor Actor, id uuid.UUID, status enum.JobStatus) (*entity.Job, error) {
	if status != enum.JobStatusPending && status != enum.JobStatusReady {
		return nil, apperror.NewBadRequestError("Job status can only be set to PENDING or READY")
	}
	job, err := s.GetJob(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if job.Status == enum.JobStatusPaid {
		return nil, apperror.NewBadRequestError("Paid jobs cannot change status")
	}
	if job.Status == status {
		return job, nil
	}

	from := job.Status
	job.Status = status
	if status == enum.JobStatusReady {
		at := now().UTC()
		job.CompletedAt = &at
	} else {
		job.CompletedAt = nil
	}
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actor.audit(enum.AuditActionStatusChange, AuditJob, job.ID, map[string]string{
		"from": from.String(),
		"to":   status.String(),
	}))
	return job, nil
}

func (s *JobService) DeleteJob(ctx context.Context, actor Actor, id uuid.UUID) error {
	job, err := s.GetJob(ctx, actor, id)
	if err != nil {
		return err
	}
	if job.Status == enum.JobStatusPaid {
		return apperror.NewBadRequestError("Paid jobs cannot be deleted")
	}
	if err := s.jobRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, actor.audit(enum.AuditActionDelete, AuditJob, id, nil))
	return nil
}

func (s *JobService) requireEmployee(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}
	if !user.IsActive {
		return nil, apperror.NewBadRequestError("Employee account is inactive")
	}
	return user, nil
}

func canSeeJob(actor Actor, job *entity.Job) bool {
	return actor.Can(authz.JobsViewAll) || job.EmployeeID == actor.UserID
}
