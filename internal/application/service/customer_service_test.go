package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
)

func TestCreateCustomerNormalizesEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c, err := env.customers.CreateCustomer(ctx, env.actor, &CustomerInput{Name: "  Jo Park ", Email: ptr(" Jo@Shop.Test ")})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	if c.Name != "Jo Park" || c.Email == nil || *c.Email != "jo@shop.test" {
		t.Fatalf("customer = %q %v", c.Name, c.Email)
	}

	_, err = env.customers.CreateCustomer(ctx, env.actor, &CustomerInput{Name: "Blank"})
	if err != nil {
		t.Fatalf("customer without email: %v", err)
	}
	_, err = env.customers.CreateCustomer(ctx, env.actor, &CustomerInput{Name: "  "})
	expectStatus(t, err, http.StatusBadRequest)
}

func TestDuplicateCustomerEmailConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.customers.CreateCustomer(ctx, env.actor, &CustomerInput{Name: "Jo", Email: ptr("jo@shop.test")}); err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}

	for _, email := range []string{"jo@shop.test", "JO@Shop.TEST", "  jo@shop.test  "} {
		t.Run(email, func(t *testing.T) {
			_, err := env.customers.CreateCustomer(ctx, env.actor, &CustomerInput{Name: "Copy", Email: ptr(email)})
			expectStatus(t, err, http.StatusConflict)
		})
	}

	other, err := env.customers.CreateCustomer(ctx, env.actor, &CustomerInput{Name: "Sam", Email: ptr("sam@shop.test")})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	_, err = env.customers.UpdateCustomer(ctx, env.actor, &UpdateCustomerInput{ID: other.ID, Email: ptr(" Jo@shop.test")})
	expectStatus(t, err, http.StatusConflict)
}

func TestDeleteCustomerWithInvoiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.customer(t, "Lee")

	_, err := env.invoices.CreateInvoice(ctx, env.actor, &CreateInvoiceInput{
		Customer: CustomerRef{ID: &c.ID},
		Items:    []LineItemInput{{ItemType: enum.ItemTypeService, Description: "Rotation", Quantity: 1, UnitPrice: 20}},
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	expectStatus(t, env.customers.DeleteCustomer(ctx, env.actor, c.ID), http.StatusConflict)
	if _, err := env.customers.GetCustomer(ctx, c.ID); err != nil {
		t.Fatalf("customer gone after refused delete: %v", err)
	}
}

func TestDeleteCustomerWithAppointmentConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.customer(t, "Lee")

	appt := &entity.Appointment{CustomerID: c.ID, ScheduledAt: now().Add(24 * time.Hour), DurationMinutes: 60, ServiceType: "Tire swap"}
	if err := env.db.Create(appt).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	expectStatus(t, env.customers.DeleteCustomer(ctx, env.actor, c.ID), http.StatusConflict)
}

func TestDeleteCustomer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.customer(t, "Lee")

	if err := env.customers.DeleteCustomer(ctx, env.actor, c.ID); err != nil {
		t.Fatalf("DeleteCustomer: %v", err)
	}
	_, err := env.customers.GetCustomer(ctx, c.ID)
	expectStatus(t, err, http.StatusNotFound)
	expectStatus(t, env.customers.DeleteCustomer(ctx, env.actor, c.ID), http.StatusNotFound)

	if n := env.count(t, &entity.AuditLog{}, "entity_type = ? AND action = ?", AuditCustomer, enum.AuditActionDelete); n != 1 {
		t.Errorf("delete audit entries = %d", n)
	}
}
