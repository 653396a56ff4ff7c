package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/pkg/apperror"
	"github.com/sangkips/autoshop-api/pkg/tax"
)

// LineItemInput is one submitted invoice or quotation line.
type LineItemInput struct {
	ItemType    enum.ItemType
	TireID      *uuid.UUID
	Description string
	Quantity    int
	UnitPrice   float64
}

// pricedLine is a validated line with its total.
type pricedLine struct {
	ItemType    enum.ItemType
	TireID      *uuid.UUID
	Description string
	Quantity    int
	UnitPrice   float64
	Total       float64
}

func validateLines(items []LineItemInput) error {
	if len(items) == 0 {
		return apperror.NewBadRequestError("At least one line item is required")
	}
	for i, it := range items {
		if !it.ItemType.IsValid() {
			return apperror.NewBadRequestErrorf("Item %d: invalid item type", i+1)
		}
		if it.Quantity < 1 {
			return apperror.NewBadRequestErrorf("Item %d: quantity must be at least 1", i+1)
		}
		if it.UnitPrice < 0 {
			return apperror.NewBadRequestErrorf("Item %d: unit price cannot be negative", i+1)
		}
		hasTire := it.TireID != nil && *it.TireID != uuid.Nil
		if it.ItemType == enum.ItemTypeTire && !hasTire {
			return apperror.NewBadRequestErrorf("Item %d: tire items must reference a tire", i+1)
		}
		if it.ItemType != enum.ItemTypeTire && hasTire {
			return apperror.NewBadRequestErrorf("Item %d: only tire items can reference a tire", i+1)
		}
		if !hasTire && strings.TrimSpace(it.Description) == "" {
			return apperror.NewBadRequestErrorf("Item %d: description is required", i+1)
		}
	}
	return nil
}

// loadTires fetches every tire the items reference. A missing tire is a 404.
func loadTires(ctx context.Context, repo repository.TireRepository, items []LineItemInput) (map[uuid.UUID]entity.Tire, error) {
	var ids []uuid.UUID
	seen := map[uuid.UUID]bool{}
	for _, it := range items {
		if it.TireID != nil && !seen[*it.TireID] {
			seen[*it.TireID] = true
			ids = append(ids, *it.TireID)
		}
	}
	tires := make(map[uuid.UUID]entity.Tire, len(ids))
	if len(ids) == 0 {
		return tires, nil
	}

	found, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, t := range found {
		tires[t.ID] = t
	}
	for _, id := range ids {
		if _, ok := tires[id]; !ok {
			return nil, apperror.NewNotFoundError("Tire " + id.String())
		}
	}
	return tires, nil
}

// priceLines computes each line total and the subtotal. Lines keep the
// submitted order. Tire lines without a description take the tire label.
func priceLines(items []LineItemInput, tires map[uuid.UUID]entity.Tire) ([]pricedLine, float64) {
	lines := make([]pricedLine, 0, len(items))
	subtotal := 0.0
	for _, it := range items {
		desc := strings.TrimSpace(it.Description)
		if desc == "" && it.TireID != nil {
			t := tires[*it.TireID]
			desc = t.Label()
		}
		total := tax.LineTotal(it.Quantity, it.UnitPrice)
		subtotal += total
		lines = append(lines, pricedLine{
			ItemType:    it.ItemType,
			TireID:      it.TireID,
			Description: desc,
			Quantity:    it.Quantity,
			UnitPrice:   tax.Round(it.UnitPrice),
			Total:       total,
		})
	}
	return lines, tax.Round(subtotal)
}

// tireDemand sums requested quantities per tire, in first-seen order.
func tireDemand(lines []pricedLine) ([]uuid.UUID, map[uuid.UUID]int) {
	var order []uuid.UUID
	demand := map[uuid.UUID]int{}
	for _, l := range lines {
		if l.ItemType != enum.ItemTypeTire || l.TireID == nil {
			continue
		}
		if _, ok := demand[*l.TireID]; !ok {
			order = append(order, *l.TireID)
		}
		demand[*l.TireID] += l.Quantity
	}
	return order, demand
}

func resolveRates(in tax.Input, defaultRate float64) (tax.Rates, error) {
	rates, err := tax.Resolve(in, defaultRate)
	if err != nil {
		return tax.Rates{}, apperror.NewBadRequestError(err.Error())
	}
	return rates, nil
}
