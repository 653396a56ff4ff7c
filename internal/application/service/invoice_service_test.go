package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	infraRepo "github.com/sangkips/autoshop-api/internal/infrastructure/repository"
	"github.com/sangkips/autoshop-api/pkg/tax"
)

func TestCreateInvoiceSplitTaxAndStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tire := env.tire(t, "225/65R17", 10, 2, 50)

	inv, err := env.invoices.CreateInvoice(ctx, env.actor, &CreateInvoiceInput{
		Customer: CustomerRef{New: &CustomerInput{Name: "Dana Walk-in", Phone: ptr("555-0100")}},
		Items: []LineItemInput{
			{ItemType: enum.ItemTypeTire, TireID: &tire.ID, Quantity: 2, UnitPrice: 50},
			{ItemType: enum.ItemTypeService, Description: "Mount and balance", Quantity: 1, UnitPrice: 30},
		},
		Tax: tax.Input{GSTRate: ptr(0.05), PSTRate: ptr(0.07)},
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	if inv.InvoiceNumber != "INV-202403-0001" {
		t.Errorf("number = %s", inv.InvoiceNumber)
	}
	if inv.Status != enum.InvoiceStatusPending {
		t.Errorf("status = %s", inv.Status)
	}
	want := entity.Totals{Subtotal: 130, GSTRate: 0.05, PSTRate: 0.07, SplitTax: true, GSTAmount: 6.5, PSTAmount: 9.1, TaxAmount: 15.6, Total: 145.6, TaxRate: 0.12}
	if inv.Totals != want {
		t.Errorf("totals = %+v, want %+v", inv.Totals, want)
	}
	if len(inv.Items) != 2 || inv.Items[0].Description != tire.Label() || inv.Items[1].Total != 30 {
		t.Errorf("items = %+v", inv.Items)
	}
	if inv.Customer == nil || inv.Customer.Name != "Dana Walk-in" {
		t.Errorf("customer = %+v", inv.Customer)
	}

	after, err := env.tires.GetTire(ctx, tire.ID)
	if err != nil {
		t.Fatalf("GetTire: %v", err)
	}
	if after.Quantity != 8 {
		t.Errorf("stock = %d, want 8", after.Quantity)
	}

	if n := env.count(t, &entity.AuditLog{}, "entity_type = ? AND entity_id = ?", AuditInvoice, inv.ID.String()); n != 1 {
		t.Errorf("invoice audit entries = %d", n)
	}
	if n := env.count(t, &entity.AuditLog{}, "entity_type = ?", AuditCustomer); n != 1 {
		t.Errorf("customer audit entries = %d", n)
	}
}

func TestCreateInvoiceDefaultsToSingleRate(t *testing.T) {
	env := newTestEnv(t)
	c := env.customer(t, "Lee")

	inv, err := env.invoices.CreateInvoice(context.Background(), env.actor, &CreateInvoiceInput{
		Customer: CustomerRef{ID: &c.ID},
		Items:    []LineItemInput{{ItemType: enum.ItemTypeService, Description: "Alignment", Quantity: 1, UnitPrice: 100}},
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if inv.SplitTax || inv.GSTRate != tax.DefaultRate || inv.PSTRate != 0 {
		t.Errorf("rates = %+v", inv.Totals)
	}
	if inv.TaxAmount != 8.25 || inv.Total != 108.25 || inv.TaxRate != tax.DefaultRate {
		t.Errorf("totals = %+v", inv.Totals)
	}
}

func TestCreateInvoiceTaxExemptShop(t *testing.T) {
	env := newTestEnv(t)
	c := env.customer(t, "Lee")
	exempt := NewInvoiceService(InvoiceServiceDeps{
		InvoiceRepo:    infraRepo.NewInvoiceRepository(env.db),
		TireRepo:       infraRepo.NewTireRepository(env.db),
		VehicleRepo:    infraRepo.NewVehicleRepository(env.db),
		CustomerRepo:   infraRepo.NewCustomerRepository(env.db),
		TxManager:      infraRepo.NewTxManager(env.db),
		DefaultTaxRate: ptr(0.0),
	})
	if exempt.DefaultTaxRate() != 0 {
		t.Fatalf("default rate = %v, want 0", exempt.DefaultTaxRate())
	}

	inv, err := exempt.CreateInvoice(context.Background(), env.actor, &CreateInvoiceInput{
		Customer: CustomerRef{ID: &c.ID},
		Items:    []LineItemInput{{ItemType: enum.ItemTypeService, Description: "Alignment", Quantity: 1, UnitPrice: 100}},
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if inv.TaxAmount != 0 || inv.Total != 100 {
		t.Errorf("totals = %+v", inv.Totals)
	}

	invalid := NewInvoiceService(InvoiceServiceDeps{DefaultTaxRate: ptr(-0.1)})
	if invalid.DefaultTaxRate() != tax.DefaultRate {
		t.Errorf("negative rate kept: %v", invalid.DefaultTaxRate())
	}
}

func TestCreateInvoicePrefersExistingCustomer(t *testing.T) {
	env := newTestEnv(t)
	c := env.customer(t, "Lee")

	inv, err := env.invoices.CreateInvoice(context.Background(), env.actor, &CreateInvoiceInput{
		Customer: CustomerRef{ID: &c.ID, New: &CustomerInput{Name: "Someone Else", Email: ptr("else@shop.test")}},
		Items:    []LineItemInput{{ItemType: enum.ItemTypeService, Description: "Rotation", Quantity: 1, UnitPrice: 20}},
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if inv.CustomerID != c.ID {
		t.Errorf("customer = %s, want %s", inv.CustomerID, c.ID)
	}
	if n := env.count(t, &entity.Customer{}, ""); n != 1 {
		t.Errorf("customers = %d, want 1", n)
	}
}

func TestCreateInvoiceNumbersIncrement(t *testing.T) {
	env := newTestEnv(t)
	c := env.customer(t, "Lee")
	in := &CreateInvoiceInput{
		Customer: CustomerRef{ID: &c.ID},
		Items:    []LineItemInput{{ItemType: enum.ItemTypeOther, Description: "Disposal fee", Quantity: 4, UnitPrice: 5}},
	}
	for _, want := range []string{"INV-202403-0001", "INV-202403-0002"} {
		inv, err := env.invoices.CreateInvoice(context.Background(), env.actor, in)
		if err != nil {
			t.Fatalf("CreateInvoice: %v", err)
		}
		if inv.InvoiceNumber != want {
			t.Errorf("number = %s, want %s", inv.InvoiceNumber, want)
		}
	}
}

func TestCreateInvoiceInsufficientStockRollsBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tire := env.tire(t, "205/55R16", 1, 0, 80)

	_, err := env.invoices.CreateInvoice(ctx, env.actor, &CreateInvoiceInput{
		Customer: CustomerRef{New: &CustomerInput{Name: "Rollback Customer"}},
		Items:    []LineItemInput{{ItemType: enum.ItemTypeTire, TireID: &tire.ID, Quantity: 2, UnitPrice: 80}},
	})
	expectStatus(t, err, http.StatusBadRequest)

	if n := env.count(t, &entity.Invoice{}, ""); n != 0 {
		t.Errorf("invoices = %d, want 0", n)
	}
	if n := env.count(t, &entity.Customer{}, ""); n != 0 {
		t.Errorf("customers = %d, want 0 after rollback", n)
	}
	after, _ := env.tires.GetTire(ctx, tire.ID)
	if after.Quantity != 1 {
		t.Errorf("stock = %d, want 1", after.Quantity)
	}
}

func TestCreateInvoiceValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.customer(t, "Lee")
	other := env.customer(t, "Kim")
	car, err := env.vehicles.CreateVehicle(ctx, env.actor, &CreateVehicleInput{CustomerID: other.ID, Make: "Honda", Model: "Civic", Year: 2019})
	if err != nil {
		t.Fatalf("CreateVehicle: %v", err)
	}
	service := []LineItemInput{{ItemType: enum.ItemTypeService, Description: "Rotation", Quantity: 1, UnitPrice: 20}}

	cases := []struct {
		name string
		in   CreateInvoiceInput
		code int
	}{
		{"no customer", CreateInvoiceInput{Items: service}, http.StatusBadRequest},
		{"unknown customer", CreateInvoiceInput{Customer: CustomerRef{ID: ptr(uuid.New())}, Items: service}, http.StatusNotFound},
		{"no items", CreateInvoiceInput{Customer: CustomerRef{ID: &c.ID}}, http.StatusBadRequest},
		{"zero quantity", CreateInvoiceInput{Customer: CustomerRef{ID: &c.ID}, Items: []LineItemInput{{ItemType: enum.ItemTypeService, Description: "x", Quantity: 0, UnitPrice: 1}}}, http.StatusBadRequest},
		{"rate out of range", CreateInvoiceInput{Customer: CustomerRef{ID: &c.ID}, Items: service, Tax: tax.Input{TaxRate: ptr(1.5)}}, http.StatusBadRequest},
		{"foreign vehicle", CreateInvoiceInput{Customer: CustomerRef{ID: &c.ID}, VehicleID: &car.ID, Items: service}, http.StatusBadRequest},
		{"unknown vehicle", CreateInvoiceInput{Customer: CustomerRef{ID: &c.ID}, VehicleID: ptr(uuid.New()), Items: service}, http.StatusNotFound},
		{"unknown tire", CreateInvoiceInput{Customer: CustomerRef{ID: &c.ID}, Items: []LineItemInput{{ItemType: enum.ItemTypeTire, TireID: ptr(uuid.New()), Quantity: 1, UnitPrice: 90}}}, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.invoices.CreateInvoice(ctx, env.actor, &tc.in)
			expectStatus(t, err, tc.code)
		})
	}
}

func TestPayAndCancelInvoice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.customer(t, "Lee")
	tire := env.tire(t, "195/65R15", 4, 0, 60)

	create := func() *entity.Invoice {
		inv, err := env.invoices.CreateInvoice(ctx, env.actor, &CreateInvoiceInput{
			Customer: CustomerRef{ID: &c.ID},
			Items:    []LineItemInput{{ItemType: enum.ItemTypeTire, TireID: &tire.ID, Quantity: 2, UnitPrice: 60}},
		})
		if err != nil {
			t.Fatalf("CreateInvoice: %v", err)
		}
		return inv
	}

	paid := create()
	got, err := env.invoices.PayInvoice(ctx, env.actor, paid.ID, enum.PaymentMethodDebitCard)
	if err != nil {
		t.Fatalf("PayInvoice: %v", err)
	}
	if got.Status != enum.InvoiceStatusPaid || got.PaidAt == nil || *got.PaymentMethod != enum.PaymentMethodDebitCard {
		t.Errorf("paid invoice = %+v", got)
	}
	_, err = env.invoices.PayInvoice(ctx, env.actor, paid.ID, enum.PaymentMethodCash)
	expectStatus(t, err, http.StatusBadRequest)
	_, err = env.invoices.CancelInvoice(ctx, env.actor, paid.ID)
	expectStatus(t, err, http.StatusBadRequest)

	cancelled := create()
	if s, _ := env.tires.GetTire(ctx, tire.ID); s.Quantity != 0 {
		t.Fatalf("stock before cancel = %d", s.Quantity)
	}
	got, err = env.invoices.CancelInvoice(ctx, env.actor, cancelled.ID)
	if err != nil {
		t.Fatalf("CancelInvoice: %v", err)
	}
	if got.Status != enum.InvoiceStatusCancelled {
		t.Errorf("status = %s", got.Status)
	}
	if s, _ := env.tires.GetTire(ctx, tire.ID); s.Quantity != 2 {
		t.Errorf("stock after cancel = %d, want 2", s.Quantity)
	}
	_, err = env.invoices.UpdateInvoice(ctx, env.actor, &UpdateInvoiceInput{ID: cancelled.ID, Notes: ptr("late")})
	expectStatus(t, err, http.StatusBadRequest)
}
