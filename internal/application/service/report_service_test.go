package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	infraRepo "github.com/sangkips/autoshop-api/internal/infrastructure/repository"
)

func TestDailyCashCountsOnlyPaidInvoicesOfTheDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.customer(t, "Lee")
	repo := infraRepo.NewInvoiceRepository(env.db)

	day := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	cash, card := enum.PaymentMethodCash, enum.PaymentMethodCreditCard
	seed := []struct {
		number string
		status enum.InvoiceStatus
		method *enum.PaymentMethod
		total  float64
		at     time.Time
	}{
		{"INV-202403-0001", enum.InvoiceStatusPaid, &cash, 100, day.Add(9 * time.Hour)},
		{"INV-202403-0002", enum.InvoiceStatusPaid, &card, 50, day.Add(16 * time.Hour)},
		{"INV-202403-0003", enum.InvoiceStatusPending, nil, 200, day.Add(12 * time.Hour)},
		{"INV-202403-0004", enum.InvoiceStatusPaid, &cash, 75, day.Add(24 * time.Hour)},
	}
	for _, s := range seed {
		inv := &entity.Invoice{
			InvoiceNumber: s.number,
			CustomerID:    c.ID,
			Status:        s.status,
			PaymentMethod: s.method,
			CreatedAt:     s.at,
			Totals:        entity.Totals{Subtotal: s.total, Total: s.total},
			Items:         []entity.InvoiceItem{{ItemType: enum.ItemTypeService, Description: "Work", Quantity: 1, UnitPrice: s.total, Total: s.total}},
		}
		if err := repo.Create(ctx, inv); err != nil {
			t.Fatalf("seed %s: %v", s.number, err)
		}
	}

	report, err := env.reports.DailyCash(ctx, "2024-03-12")
	if err != nil {
		t.Fatalf("DailyCash: %v", err)
	}
	if report.Date != "2024-03-12" || report.TotalInvoices != 2 || report.TotalRevenue != 150 {
		t.Fatalf("report = %+v", report)
	}
	if len(report.ByPaymentMethod) != 2 {
		t.Fatalf("breakdown = %+v", report.ByPaymentMethod)
	}
	for _, row := range report.ByPaymentMethod {
		switch row.Method {
		case "CASH":
			if row.Count != 1 || row.Total != 100 {
				t.Errorf("cash row = %+v", row)
			}
		case "CREDIT_CARD":
			if row.Count != 1 || row.Total != 50 {
				t.Errorf("card row = %+v", row)
			}
		default:
			t.Errorf("unexpected method %s", row.Method)
		}
	}
	if report.Invoices[0].InvoiceNumber != "INV-202403-0001" || report.Invoices[0].Customer != "Lee" {
		t.Errorf("first invoice = %+v", report.Invoices[0])
	}

	empty, err := env.reports.DailyCash(ctx, "2024-03-01")
	if err != nil {
		t.Fatalf("DailyCash: %v", err)
	}
	if empty.TotalInvoices != 0 || empty.TotalRevenue != 0 || empty.ByPaymentMethod == nil {
		t.Errorf("empty report = %+v", empty)
	}

	_, err = env.reports.DailyCash(ctx, "12/03/2024")
	expectStatus(t, err, http.StatusBadRequest)
}

func TestDailyCashUsesShopTimezone(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.customer(t, "Lee")
	repo := infraRepo.NewInvoiceRepository(env.db)
	est := time.FixedZone("EST", -5*3600)
	reports := NewReportService(repo, nil, est)

	cash := enum.PaymentMethodCash
	// 02:00 UTC on the 13th is still the evening of the 12th in EST.
	inv := &entity.Invoice{
		InvoiceNumber: "INV-202403-0009",
		CustomerID:    c.ID,
		Status:        enum.InvoiceStatusPaid,
		PaymentMethod: &cash,
		CreatedAt:     time.Date(2024, 3, 13, 2, 0, 0, 0, time.UTC),
		Totals:        entity.Totals{Subtotal: 40, Total: 40},
		Items:         []entity.InvoiceItem{{ItemType: enum.ItemTypeService, Description: "Patch", Quantity: 1, UnitPrice: 40, Total: 40}},
	}
	if err := repo.Create(ctx, inv); err != nil {
		t.Fatalf("seed: %v", err)
	}

	report, err := reports.DailyCash(ctx, "2024-03-12")
	if err != nil {
		t.Fatalf("DailyCash: %v", err)
	}
	if report.TotalInvoices != 1 || report.TotalRevenue != 40 {
		t.Errorf("report = %+v", report)
	}
}
