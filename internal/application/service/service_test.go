package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/autoshop-api/internal/infrastructure/repository"
	"github.com/sangkips/autoshop-api/pkg/apperror"
	"gorm.io/gorm"
)

// testEnv wires services to a private in-memory SQLite database.
type testEnv struct {
	db         *gorm.DB
	audit      *AuditService
	customers  *CustomerService
	vehicles   *VehicleService
	tires      *TireService
	invoices   *InvoiceService
	quotations *QuotationService
	reports    *ReportService
	jobs       *JobService
	payments   *PaymentService
	actor      Actor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := database.NewSQLiteDB(dsn, false)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	fixed := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	prev := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = prev })
	// Row timestamps follow the same clock, still advancing so ordering by
	// created_at stays stable.
	started := time.Now()
	db.NowFunc = func() time.Time { return fixed.Add(time.Since(started)) }

	txm := infraRepo.NewTxManager(db)
	customerRepo := infraRepo.NewCustomerRepository(db)
	vehicleRepo := infraRepo.NewVehicleRepository(db)
	tireRepo := infraRepo.NewTireRepository(db)
	invoiceRepo := infraRepo.NewInvoiceRepository(db)
	userRepo := infraRepo.NewUserRepository(db)

	audit := NewAuditService(infraRepo.NewAuditLogRepository(db))
	notifier := NewNotificationService(nil, nil, "")
	invoices := NewInvoiceService(InvoiceServiceDeps{
		InvoiceRepo:  invoiceRepo,
		TireRepo:     tireRepo,
		VehicleRepo:  vehicleRepo,
		CustomerRepo: customerRepo,
		TxManager:    txm,
		Audit:        audit,
		Notifier:     notifier,
		Location:     time.UTC,
	})

	admin := &entity.User{Email: "owner@shop.test", FirstName: "Shop", LastName: "Owner", Role: enum.UserRoleAdmin, IsActive: true}
	if err := userRepo.Create(context.Background(), admin); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	return &testEnv{
		db:         db,
		audit:      audit,
		customers:  NewCustomerService(customerRepo, vehicleRepo, audit),
		vehicles:   NewVehicleService(vehicleRepo, customerRepo, audit),
		tires:      NewTireService(tireRepo, txm, audit, notifier),
		invoices:   invoices,
		quotations: NewQuotationService(infraRepo.NewQuotationRepository(db), customerRepo, vehicleRepo, tireRepo, invoices, txm, audit),
		reports:    NewReportService(invoiceRepo, nil, time.UTC),
		jobs:       NewJobService(infraRepo.NewJobRepository(db), userRepo, audit),
		payments:   NewPaymentService(infraRepo.NewPaymentRepository(db), infraRepo.NewJobRepository(db), userRepo, txm, audit),
		actor:      Actor{UserID: admin.ID, Email: admin.Email, Role: enum.UserRoleAdmin, IP: "127.0.0.1"},
	}
}

func (e *testEnv) tire(t *testing.T, size string, qty, minStock int, price float64) *entity.Tire {
	t.Helper()
	tire, err := e.tires.CreateTire(context.Background(), e.actor, &TireInput{
		Brand: "Michelin", Model: "Defender", Size: size,
		Type: enum.TireTypeAllSeason, Condition: enum.TireConditionNew,
		Price: price, Quantity: qty, MinStock: minStock,
	})
	if err != nil {
		t.Fatalf("create tire: %v", err)
	}
	return tire
}

func (e *testEnv) customer(t *testing.T, name string) *entity.Customer {
	t.Helper()
	c, err := e.customers.CreateCustomer(context.Background(), e.actor, &CustomerInput{Name: name})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return c
}

func (e *testEnv) count(t *testing.T, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	q := e.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func expectStatus(t *testing.T, err error, code int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d, got nil", code)
	}
	if !apperror.Is(err, code) {
		t.Fatalf("expected status %d, got %v", code, err)
	}
}

func ptr[T any](v T) *T { return &v }
