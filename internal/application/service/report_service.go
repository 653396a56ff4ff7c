package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/internal/infrastructure/cache"
	"github.com/sangkips/autoshop-api/pkg/apperror"
	"github.com/sangkips/autoshop-api/pkg/tax"
	"github.com/sangkips/autoshop-api/pkg/timeutil"
)

// PaymentMethodTotal is one row of the cash report breakdown.
type PaymentMethodTotal struct {
	Method string  `json:"method"`
	Count  int     `json:"count"`
	Total  float64 `json:"total"`
}

// CashReportInvoice is a paid invoice as listed on the cash report.
type CashReportInvoice struct {
	ID            uuid.UUID `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	Customer      string    `json:"customer"`
	PaymentMethod string    `json:"payment_method"`
	TaxAmount     float64   `json:"tax_amount"`
	Total         float64   `json:"total"`
	PaidAt        time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// DailyCashReport summarises one business day's PAID invoices.
type DailyCashReport struct {
	Date            string               `json:"date"`
	TotalInvoices   int                  `json:"total_invoices"`
	TotalRevenue    float64              `json:"total_revenue"`
	TotalTax        float64              `json:"total_tax"`
	ByPaymentMethod []PaymentMethodTotal `json:"by_payment_method"`
	Invoices        []CashReportInvoice  `json:"invoices"`
}

// ReportService builds cash reports.
type ReportService struct {
	invoiceRepo repository.InvoiceRepository
	cache       *cache.Cache
	loc         *time.Location
}

func NewReportService(invoiceRepo repository.InvoiceRepository, c *cache.Cache, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{invoiceRepo: invoiceRepo, cache: c, loc: loc}
}

// unpaidMethod labels PAID invoices that carry no payment method.
const unpaidMethod = "UNSPECIFIED"

// DailyCash reports PAID invoices created on date (YYYY-MM-DD, shop local
// time). An empty date means today. Days that are over are cached.
func (s *ReportService) DailyCash(ctx context.Context, date string) (*DailyCashReport, error) {
	current := now()
	start, end, err := timeutil.DayWindow(date, current, s.loc)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}
	day := start.Format(timeutil.DateLayout)
	key := fmt.Sprintf(cache.DailyCashKeyFmt, day)
	past := end.Before(current)

	if past {
		var cached DailyCashReport
		if s.cache.GetJSON(ctx, key, &cached) {
			return &cached, nil
		}
	}

	invoices, err := s.invoiceRepo.ListPaidBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	report := &DailyCashReport{
		Date:            day,
		ByPaymentMethod: []PaymentMethodTotal{},
		Invoices:        make([]CashReportInvoice, 0, len(invoices)),
	}
	byMethod := map[string]*PaymentMethodTotal{}
	revenue, taxTotal := 0.0, 0.0
	for _, inv := range invoices {
		if inv.Status != enum.InvoiceStatusPaid {
			continue
		}
		method := unpaidMethod
		if inv.PaymentMethod != nil {
			method = inv.PaymentMethod.String()
		}
		row, ok := byMethod[method]
		if !ok {
			row = &PaymentMethodTotal{Method: method}
			byMethod[method] = row
		}
		row.Count++
		row.Total += inv.Total
		revenue += inv.Total
		taxTotal += inv.TaxAmount

		entry := CashReportInvoice{
			ID:            inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			PaymentMethod: method,
			TaxAmount:     inv.TaxAmount,
			Total:         inv.Total,
			CreatedAt:     inv.CreatedAt,
		}
		if inv.Customer != nil {
			entry.Customer = inv.Customer.DisplayName()
		}
		if inv.PaidAt != nil {
			entry.PaidAt = *inv.PaidAt
		}
		report.Invoices = append(report.Invoices, entry)
	}

	report.TotalInvoices = len(report.Invoices)
	report.TotalRevenue = tax.Round(revenue)
	report.TotalTax = tax.Round(taxTotal)
	for _, row := range byMethod {
		row.Total = tax.Round(row.Total)
		report.ByPaymentMethod = append(report.ByPaymentMethod, *row)
	}
	sort.Slice(report.ByPaymentMethod, func(i, j int) bool {
		return report.ByPaymentMethod[i].Method < report.ByPaymentMethod[j].Method
	})

	if past {
		s.cache.SetJSON(ctx, key, report, cache.DailyCashTTL)
	}
	return report, nil
}
