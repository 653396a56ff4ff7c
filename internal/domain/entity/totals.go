package entity

import "github.com/sangkips/autoshop-api/pkg/tax"

// Totals are the money columns shared by invoices and quotations. The
// combined tax rate is derived from the two component rates and never stored.
type Totals struct {
	Subtotal  float64 `gorm:"type:decimal(15,2);not null;default:0" json:"subtotal"`
	GSTRate   float64 `gorm:"type:decimal(7,5);not null;default:0" json:"gst_rate"`
	PSTRate   float64 `gorm:"type:decimal(7,5);not null;default:0" json:"pst_rate"`
	SplitTax  bool    `gorm:"not null;default:false" json:"split_tax"`
	GSTAmount float64 `gorm:"type:decimal(15,2);not null;default:0" json:"gst_amount"`
	PSTAmount float64 `gorm:"type:decimal(15,2);not null;default:0" json:"pst_amount"`
	TaxAmount float64 `gorm:"type:decimal(15,2);not null;default:0" json:"tax_amount"`
	Total     float64 `gorm:"type:decimal(15,2);not null;default:0" json:"total"`

	TaxRate float64 `gorm:"-" json:"tax_rate"`
}

// Rates returns the canonical tax rates.
func (t *Totals) Rates() tax.Rates {
	return tax.Rates{GSTRate: t.GSTRate, PSTRate: t.PSTRate, Split: t.SplitTax}
}

// Apply copies a computed breakdown onto the persisted columns.
func (t *Totals) Apply(b tax.Breakdown) {
	t.Subtotal = b.Subtotal
	t.GSTRate = b.GSTRate
	t.PSTRate = b.PSTRate
	t.SplitTax = b.Split
	t.GSTAmount = b.GSTAmount
	t.PSTAmount = b.PSTAmount
	t.TaxAmount = b.TaxAmount
	t.Total = b.Total
	t.TaxRate = b.TaxRate
}

func (t *Totals) deriveTaxRate() {
	t.TaxRate = t.Rates().Combined()
}
