package repository

import (
	"context"
	"time"
)

// AnalyticsRepository defines aggregation queries for the dashboard.
type AnalyticsRepository interface {
	// PaidRevenueBetween sums totals of PAID invoices created within [start, end].
	PaidRevenueBetween(ctx context.Context, start, end time.Time) (float64, int64, error)

	// CountPendingInvoices returns the number and outstanding total of PENDING invoices.
	CountPendingInvoices(ctx context.Context) (int64, float64, error)

	CountLowStockTires(ctx context.Context) (int64, error)

	// CountAppointmentsBetween counts non-cancelled appointments scheduled within [start, end].
	CountAppointmentsBetween(ctx context.Context, start, end time.Time) (int64, error)

	CountReadyJobs(ctx context.Context) (int64, float64, error)
}
