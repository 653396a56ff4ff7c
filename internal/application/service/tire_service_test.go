package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
)

func TestAdjustStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tire := env.tire(t, "245/40R19", 5, 2, 200)

	steps := []struct {
		kind enum.StockAdjustmentType
		qty  int
		want int
	}{
		{enum.StockAdjustmentTypeAdd, 3, 8},
		{enum.StockAdjustmentTypeRemove, 6, 2},
		{enum.StockAdjustmentTypeSet, 12, 12},
		{enum.StockAdjustmentTypeSet, -4, 0},
	}
	for _, s := range steps {
		got, err := env.tires.AdjustStock(ctx, env.actor, &AdjustStockInput{TireID: tire.ID, Type: s.kind, Quantity: s.qty, Reason: "count"})
		if err != nil {
			t.Fatalf("%s %d: %v", s.kind, s.qty, err)
		}
		if got.Quantity != s.want {
			t.Fatalf("%s %d: quantity = %d, want %d", s.kind, s.qty, got.Quantity, s.want)
		}
	}

	_, err := env.tires.AdjustStock(ctx, env.actor, &AdjustStockInput{TireID: tire.ID, Type: enum.StockAdjustmentTypeRemove, Quantity: 1})
	expectStatus(t, err, http.StatusBadRequest)

	if n := env.count(t, &entity.AuditLog{}, "action = ?", enum.AuditActionStockAdjust); n != int64(len(steps)) {
		t.Errorf("stock audit entries = %d, want %d", n, len(steps))
	}
}

func TestCreateTireRejectsDuplicateSpec(t *testing.T) {
	env := newTestEnv(t)
	env.tire(t, "225/65R17", 4, 1, 150)

	_, err := env.tires.CreateTire(context.Background(), env.actor, &TireInput{
		Brand: "Michelin", Model: "Defender", Size: "225/65r17",
		Type: enum.TireTypeAllSeason, Condition: enum.TireConditionNew, Price: 155,
	})
	expectStatus(t, err, http.StatusConflict)
}

func TestHideCost(t *testing.T) {
	cost := 90.0
	tire := &entity.Tire{Cost: &cost}

	HideCost(Actor{Role: enum.UserRoleAdmin}, tire)
	if tire.Cost == nil {
		t.Fatalf("admin should see cost")
	}
	HideCost(Actor{Role: enum.UserRoleStaff}, tire)
	if tire.Cost != nil {
		t.Fatalf("staff should not see cost")
	}
}
