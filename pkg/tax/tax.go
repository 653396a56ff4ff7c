// Package tax computes sales tax for invoices and quotations.
//
// A document stores its tax as two component rates (GST and PST) plus a flag
// telling whether they were supplied separately. A single combined rate is kept
// in the GST slot with a zero PST. The combined rate is always derived.
package tax

import (
	"fmt"
	"math"
)

// DefaultRate applies when neither a combined rate nor split rates are given.
const DefaultRate = 0.0825

// Rates is the canonical tax representation persisted on documents.
type Rates struct {
	GSTRate float64
	PSTRate float64
	Split   bool
}

// Input is what callers may send. Nil fields are absent.
type Input struct {
	TaxRate *float64
	GSTRate *float64
	PSTRate *float64
}

// Breakdown is the computed tax for a subtotal.
type Breakdown struct {
	Subtotal  float64 `json:"subtotal"`
	GSTRate   float64 `json:"gst_rate"`
	PSTRate   float64 `json:"pst_rate"`
	TaxRate   float64 `json:"tax_rate"`
	GSTAmount float64 `json:"gst_amount"`
	PSTAmount float64 `json:"pst_amount"`
	TaxAmount float64 `json:"tax_amount"`
	Total     float64 `json:"total"`
	Split     bool    `json:"split_tax"`
}

// Resolve normalises an Input into Rates. Split mode wins whenever either
// component rate is present. defaultRate is used in single mode when no rate
// is given; pass DefaultRate unless the shop overrides it.
func Resolve(in Input, defaultRate float64) (Rates, error) {
	if in.GSTRate != nil || in.PSTRate != nil {
		r := Rates{Split: true}
		if in.GSTRate != nil {
			r.GSTRate = *in.GSTRate
		}
		if in.PSTRate != nil {
			r.PSTRate = *in.PSTRate
		}
		if err := checkRate("gstRate", r.GSTRate); err != nil {
			return Rates{}, err
		}
		if err := checkRate("pstRate", r.PSTRate); err != nil {
			return Rates{}, err
		}
		return r, nil
	}

	rate := defaultRate
	if in.TaxRate != nil {
		rate = *in.TaxRate
	}
	if err := checkRate("taxRate", rate); err != nil {
		return Rates{}, err
	}
	return Rates{GSTRate: rate}, nil
}

// Combined is the total rate applied to the subtotal.
func (r Rates) Combined() float64 {
	return math.Round((r.GSTRate+r.PSTRate)*1e6) / 1e6
}

// Apply computes the tax breakdown for subtotal.
func (r Rates) Apply(subtotal float64) Breakdown {
	subtotal = Round(subtotal)
	b := Breakdown{
		Subtotal: subtotal,
		GSTRate:  r.GSTRate,
		PSTRate:  r.PSTRate,
		TaxRate:  r.Combined(),
		Split:    r.Split,
	}
	if r.Split {
		b.GSTAmount = Round(subtotal * r.GSTRate)
		b.PSTAmount = Round(subtotal * r.PSTRate)
		b.TaxAmount = Round(b.GSTAmount + b.PSTAmount)
	} else {
		b.TaxAmount = Round(subtotal * r.GSTRate)
	}
	b.Total = Round(subtotal + b.TaxAmount)
	return b
}

// LineTotal is quantity × unit price rounded to cents.
func LineTotal(quantity int, unitPrice float64) float64 {
	return Round(float64(quantity) * unitPrice)
}

// Round rounds to cents, half away from zero.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}

func checkRate(field string, v float64) error {
	if v < 0 || v > 1 || math.IsNaN(v) {
		return fmt.Errorf("%s must be between 0 and 1, got %v", field, v)
	}
	return nil
}
