package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	domainRepo "github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type jobRepository struct {
	base
}

func NewJobRepository(db *gorm.DB) domainRepo.JobRepository {
	return &jobRepository{base{db: db}}
}

func (r *jobRepository) Create(ctx context.Context, job *entity.Job) error {
	return r.conn(ctx).Omit(clause.Associations).Create(job).Error
}

func (r *jobRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	var job entity.Job
	err := r.conn(ctx).Preload("Employee").First(&job, "id = ?", id).Error
	if notFound(err) {
		return nil, nil
	}
	return &job, err
}

func (r *jobRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Job, error) {
	var jobs []entity.Job
	if len(ids) == 0 {
		return jobs, nil
	}
	err := r.conn(ctx).Where("id IN ?", ids).Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) Update(ctx context.Context, job *entity.Job) error {
	return r.conn(ctx).Omit(clause.Associations).Save(job).Error
}

func (r *jobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.conn(ctx).Delete(&entity.Job{}, "id = ?", id).Error
}

func (r *jobRepository) List(ctx context.Context, filter domainRepo.JobFilter) ([]entity.Job, int64, error) {
	var jobs []entity.Job
	var total int64

	params := filter.Pagination
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	query := r.conn(ctx).Model(&entity.Job{})
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if params.Search != "" {
		query = query.Where("LOWER(title) LIKE ?", likePattern(params.Search))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Employee").
		Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&jobs).Error

	return jobs, total, err
}

func (r *jobRepository) MarkPaid(ctx context.Context, ids []uuid.UUID, paymentID uuid.UUID) (int64, error) {
	result := r.conn(ctx).Model(&entity.Job{}).
		Where("id IN ? AND status = ?", ids, enum.JobStatusReady).
		Updates(map[string]interface{}{
			"status":     enum.JobStatusPaid,
			"payment_id": paymentID,
		})
	return result.RowsAffected, result.Error
}
