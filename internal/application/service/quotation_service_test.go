package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/pkg/tax"
)

func TestQuotationDoesNotTouchStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tire := env.tire(t, "235/45R18", 3, 1, 120)

	q, err := env.quotations.CreateQuotation(ctx, env.actor, &CreateQuotationInput{
		Items: []LineItemInput{{ItemType: enum.ItemTypeTire, TireID: &tire.ID, Quantity: 4, UnitPrice: 120}},
		Tax:   tax.Input{TaxRate: ptr(0.13)},
	})
	if err != nil {
		t.Fatalf("CreateQuotation: %v", err)
	}
	if q.QuotationNumber != "QT-202403-0001" || q.Status != enum.QuotationStatusDraft {
		t.Errorf("quotation = %s %s", q.QuotationNumber, q.Status)
	}
	if q.Subtotal != 480 || q.TaxAmount != 62.4 || q.Total != 542.4 {
		t.Errorf("totals = %+v", q.Totals)
	}
	if s, _ := env.tires.GetTire(ctx, tire.ID); s.Quantity != 3 {
		t.Errorf("stock = %d, want 3", s.Quantity)
	}
}

func TestConvertQuotationOnlyOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.customer(t, "Fleet Co")
	tire := env.tire(t, "265/70R17", 10, 2, 150)

	q, err := env.quotations.CreateQuotation(ctx, env.actor, &CreateQuotationInput{
		CustomerID: &c.ID,
		Items: []LineItemInput{
			{ItemType: enum.ItemTypeTire, TireID: &tire.ID, Quantity: 4, UnitPrice: 150},
			{ItemType: enum.ItemTypeService, Description: "Install", Quantity: 1, UnitPrice: 80},
		},
		Tax: tax.Input{GSTRate: ptr(0.05), PSTRate: ptr(0.07)},
	})
	if err != nil {
		t.Fatalf("CreateQuotation: %v", err)
	}

	inv, err := env.quotations.ConvertQuotation(ctx, env.actor, &ConvertQuotationInput{QuotationID: q.ID})
	if err != nil {
		t.Fatalf("ConvertQuotation: %v", err)
	}
	if inv.CustomerID != c.ID || inv.QuotationID == nil || *inv.QuotationID != q.ID {
		t.Errorf("invoice links = %+v", inv)
	}
	if inv.Totals != q.Totals {
		t.Errorf("invoice totals %+v differ from quotation %+v", inv.Totals, q.Totals)
	}
	if len(inv.Items) != 2 || inv.Items[0].Quantity != 4 || inv.Items[1].Description != "Install" {
		t.Errorf("items = %+v", inv.Items)
	}
	if s, _ := env.tires.GetTire(ctx, tire.ID); s.Quantity != 6 {
		t.Errorf("stock = %d, want 6", s.Quantity)
	}

	stored, err := env.quotations.GetQuotation(ctx, q.ID)
	if err != nil {
		t.Fatalf("GetQuotation: %v", err)
	}
	if !stored.IsConverted() || stored.ConvertedInvoiceID == nil || *stored.ConvertedInvoiceID != inv.ID {
		t.Errorf("quotation after convert = %+v", stored)
	}

	_, err = env.quotations.ConvertQuotation(ctx, env.actor, &ConvertQuotationInput{QuotationID: q.ID})
	expectStatus(t, err, http.StatusBadRequest)
	if n := env.count(t, &entity.Invoice{}, ""); n != 1 {
		t.Errorf("invoices = %d, want 1", n)
	}

	_, err = env.quotations.UpdateQuotation(ctx, env.actor, &UpdateQuotationInput{ID: q.ID, Notes: ptr("again")})
	expectStatus(t, err, http.StatusBadRequest)
	expectStatus(t, env.quotations.DeleteQuotation(ctx, env.actor, q.ID), http.StatusBadRequest)
}

func TestConvertQuotationNeedsCustomer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	q, err := env.quotations.CreateQuotation(ctx, env.actor, &CreateQuotationInput{
		Items: []LineItemInput{{ItemType: enum.ItemTypeService, Description: "Inspection", Quantity: 1, UnitPrice: 40}},
	})
	if err != nil {
		t.Fatalf("CreateQuotation: %v", err)
	}
	_, err = env.quotations.ConvertQuotation(ctx, env.actor, &ConvertQuotationInput{QuotationID: q.ID})
	expectStatus(t, err, http.StatusBadRequest)

	c := env.customer(t, "Late Binder")
	inv, err := env.quotations.ConvertQuotation(ctx, env.actor, &ConvertQuotationInput{QuotationID: q.ID, CustomerID: &c.ID})
	if err != nil {
		t.Fatalf("ConvertQuotation: %v", err)
	}
	if inv.CustomerID != c.ID || inv.Total != 43.3 {
		t.Errorf("invoice = %s total %.2f", inv.CustomerID, inv.Total)
	}
}

func TestConvertQuotationInsufficientStockLeavesQuotationOpen(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.customer(t, "Lee")
	tire := env.tire(t, "215/60R16", 1, 0, 90)

	q, err := env.quotations.CreateQuotation(ctx, env.actor, &CreateQuotationInput{
		CustomerID: &c.ID,
		Items:      []LineItemInput{{ItemType: enum.ItemTypeTire, TireID: &tire.ID, Quantity: 4, UnitPrice: 90}},
	})
	if err != nil {
		t.Fatalf("CreateQuotation: %v", err)
	}

	_, err = env.quotations.ConvertQuotation(ctx, env.actor, &ConvertQuotationInput{QuotationID: q.ID})
	expectStatus(t, err, http.StatusBadRequest)

	stored, _ := env.quotations.GetQuotation(ctx, q.ID)
	if stored.IsConverted() {
		t.Errorf("quotation converted despite failure")
	}
	if n := env.count(t, &entity.Invoice{}, ""); n != 0 {
		t.Errorf("invoices = %d, want 0", n)
	}
}

func TestUpdateQuotationReprices(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	q, err := env.quotations.CreateQuotation(ctx, env.actor, &CreateQuotationInput{
		Items: []LineItemInput{{ItemType: enum.ItemTypeService, Description: "Alignment", Quantity: 1, UnitPrice: 100}},
	})
	if err != nil {
		t.Fatalf("CreateQuotation: %v", err)
	}

	sent := enum.QuotationStatusSent
	got, err := env.quotations.UpdateQuotation(ctx, env.actor, &UpdateQuotationInput{
		ID:     q.ID,
		Status: &sent,
		Items: []LineItemInput{
			{ItemType: enum.ItemTypePart, Description: "Valve stems", Quantity: 4, UnitPrice: 2.5},
			{ItemType: enum.ItemTypeService, Description: "Alignment", Quantity: 1, UnitPrice: 90},
		},
	})
	if err != nil {
		t.Fatalf("UpdateQuotation: %v", err)
	}
	if got.Status != enum.QuotationStatusSent || len(got.Items) != 2 || got.Subtotal != 100 || got.Items[0].Description != "Valve stems" {
		t.Errorf("updated = %+v", got)
	}

	converted := enum.QuotationStatusConverted
	_, err = env.quotations.UpdateQuotation(ctx, env.actor, &UpdateQuotationInput{ID: q.ID, Status: &converted})
	expectStatus(t, err, http.StatusBadRequest)
}
