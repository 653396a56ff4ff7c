package repository

import (
	"context"
	"time"

	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	domainRepo "github.com/sangkips/autoshop-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	base
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{base{db: db}}
}

type sumCount struct {
	Total float64
	Count int64
}

func (r *analyticsRepository) PaidRevenueBetween(ctx context.Context, start, end time.Time) (float64, int64, error) {
	var res sumCount
	err := r.conn(ctx).Model(&entity.Invoice{}).
		Select("COALESCE(SUM(total), 0) AS total, COUNT(*) AS count").
		Where("status = ? AND created_at >= ? AND created_at <= ?", enum.InvoiceStatusPaid, start.UTC(), end.UTC()).
		Scan(&res).Error
	return res.Total, res.Count, err
}

func (r *analyticsRepository) CountPendingInvoices(ctx context.Context) (int64, float64, error) {
	var res sumCount
	err := r.conn(ctx).Model(&entity.Invoice{}).
		Select("COALESCE(SUM(total), 0) AS total, COUNT(*) AS count").
		Where("status = ?", enum.InvoiceStatusPending).
		Scan(&res).Error
	return res.Count, res.Total, err
}

func (r *analyticsRepository) CountLowStockTires(ctx context.Context) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&entity.Tire{}).Where("quantity <= min_stock").Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountAppointmentsBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&entity.Appointment{}).
		Where("scheduled_at >= ? AND scheduled_at <= ? AND status <> ?", start.UTC(), end.UTC(), enum.AppointmentStatusCancelled).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountReadyJobs(ctx context.Context) (int64, float64, error) {
	var res sumCount
	err := r.conn(ctx).Model(&entity.Job{}).
		Select("COALESCE(SUM(pay_amount), 0) AS total, COUNT(*) AS count").
		Where("status = ?", enum.JobStatusReady).
		Scan(&res).Error
	return res.Count, res.Total, err
}
