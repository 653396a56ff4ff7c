package service

import (
	"context"
	"time"

	"github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/internal/infrastructure/cache"
	"github.com/sangkips/autoshop-api/pkg/tax"
	"github.com/sangkips/autoshop-api/pkg/timeutil"
)

// revenueDays is the length of the revenue trend on the dashboard.
const revenueDays = 7

// DashboardService provides dashboard statistics
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	invoiceRepo   repository.InvoiceRepository
	cache         *cache.Cache
	loc           *time.Location
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	analyticsRepo repository.AnalyticsRepository,
	invoiceRepo repository.InvoiceRepository,
	c *cache.Cache,
	loc *time.Location,
) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		invoiceRepo:   invoiceRepo,
		cache:         c,
		loc:           loc,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TodayRevenue         float64             `json:"today_revenue"`
	TodayInvoices        int64               `json:"today_invoices"`
	PendingInvoices      int64               `json:"pending_invoices"`
	PendingAmount        float64             `json:"pending_amount"`
	LowStockCount        int64               `json:"low_stock_count"`
	AppointmentsToday    int64               `json:"appointments_today"`
	UpcomingAppointments int64               `json:"upcoming_appointments"`
	ReadyJobs            int64               `json:"ready_jobs"`
	ReadyJobsPay         float64             `json:"ready_jobs_pay"`
	RevenueByDay         []DailyRevenuePoint `json:"revenue_by_day"`
	GeneratedAt          time.Time           `json:"generated_at"`
}

// DailyRevenuePoint represents one day of paid revenue
type DailyRevenuePoint struct {
	Date     string  `json:"date"`
	Revenue  float64 `json:"revenue"`
	Invoices int     `json:"invoices"`
}

// GetStats returns the dashboard summary, served from cache for up to
// cache.DashboardTTL.
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	var cached DashboardStats
	if s.cache.GetJSON(ctx, cache.DashboardKey, &cached) {
		return &cached, nil
	}

	current := now()
	dayStart := timeutil.StartOfDay(current, s.loc)
	dayEnd := timeutil.EndOfDay(current, s.loc)
	stats := &DashboardStats{GeneratedAt: current.UTC()}

	var err error
	if stats.TodayRevenue, stats.TodayInvoices, err = s.analyticsRepo.PaidRevenueBetween(ctx, dayStart, dayEnd); err != nil {
		return nil, err
	}
	if stats.PendingInvoices, stats.PendingAmount, err = s.analyticsRepo.CountPendingInvoices(ctx); err != nil {
		return nil, err
	}
	if stats.LowStockCount, err = s.analyticsRepo.CountLowStockTires(ctx); err != nil {
		return nil, err
	}
	if stats.AppointmentsToday, err = s.analyticsRepo.CountAppointmentsBetween(ctx, dayStart, dayEnd); err != nil {
		return nil, err
	}
	if stats.UpcomingAppointments, err = s.analyticsRepo.CountAppointmentsBetween(ctx, current, dayEnd.AddDate(0, 0, revenueDays)); err != nil {
		return nil, err
	}
	if stats.ReadyJobs, stats.ReadyJobsPay, err = s.analyticsRepo.CountReadyJobs(ctx); err != nil {
		return nil, err
	}
	if stats.RevenueByDay, err = s.revenueTrend(ctx, dayStart, dayEnd); err != nil {
		return nil, err
	}
	stats.TodayRevenue = tax.Round(stats.TodayRevenue)
	stats.PendingAmount = tax.Round(stats.PendingAmount)
	stats.ReadyJobsPay = tax.Round(stats.ReadyJobsPay)

	s.cache.SetJSON(ctx, cache.DashboardKey, stats, cache.DashboardTTL)
	return stats, nil
}

// revenueTrend buckets the last revenueDays days of paid invoices by local
// calendar day, oldest first. Days without sales are zero.
func (s *DashboardService) revenueTrend(ctx context.Context, todayStart, todayEnd time.Time) ([]DailyRevenuePoint, error) {
	from := todayStart.AddDate(0, 0, -(revenueDays - 1))
	invoices, err := s.invoiceRepo.ListPaidBetween(ctx, from, todayEnd)
	if err != nil {
		return nil, err
	}

	points := make([]DailyRevenuePoint, revenueDays)
	index := make(map[string]int, revenueDays)
	for i := range points {
		day := from.AddDate(0, 0, i).Format(timeutil.DateLayout)
		points[i].Date = day
		index[day] = i
	}
	for _, inv := range invoices {
		i, ok := index[inv.CreatedAt.In(s.loc).Format(timeutil.DateLayout)]
		if !ok {
			continue
		}
		points[i].Revenue += inv.Total
		points[i].Invoices++
	}
	for i := range points {
		points[i].Revenue = tax.Round(points[i].Revenue)
	}
	return points, nil
}
