package tax

import "testing"

func ptr(v float64) *float64 { return &v }

func TestSplitTax(t *testing.T) {
	subtotal := LineTotal(2, 50) + LineTotal(1, 30)

	rates, err := Resolve(Input{GSTRate: ptr(0.05), PSTRate: ptr(0.07)}, DefaultRate)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	b := rates.Apply(subtotal)

	if b.Subtotal != 130 {
		t.Fatalf("subtotal = %v, want 130", b.Subtotal)
	}
	if b.GSTAmount != 6.5 || b.PSTAmount != 9.1 {
		t.Fatalf("gst/pst = %v/%v, want 6.5/9.1", b.GSTAmount, b.PSTAmount)
	}
	if b.TaxAmount != 15.6 || b.Total != 145.6 {
		t.Fatalf("tax/total = %v/%v, want 15.6/145.6", b.TaxAmount, b.Total)
	}
	if b.TaxRate != 0.12 || !b.Split {
		t.Fatalf("taxRate = %v split=%v", b.TaxRate, b.Split)
	}
}

func TestSingleRate(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		wantTax float64
	}{
		{"default rate", Input{}, 8.25},
		{"explicit rate", Input{TaxRate: ptr(0.13)}, 13},
		{"zero rate", Input{TaxRate: ptr(0)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rates, err := Resolve(tt.in, DefaultRate)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if rates.Split || rates.PSTRate != 0 {
				t.Fatalf("expected single mode, got %+v", rates)
			}
			b := rates.Apply(100)
			if b.TaxAmount != tt.wantTax || b.Total != 100+tt.wantTax {
				t.Fatalf("tax = %v total = %v", b.TaxAmount, b.Total)
			}
		})
	}
}

func TestSplitWithOnlyOneComponent(t *testing.T) {
	rates, err := Resolve(Input{GSTRate: ptr(0.05), TaxRate: ptr(0.2)}, DefaultRate)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !rates.Split || rates.PSTRate != 0 || rates.Combined() != 0.05 {
		t.Fatalf("unexpected rates %+v", rates)
	}
}

func TestRejectsOutOfRange(t *testing.T) {
	for _, in := range []Input{
		{TaxRate: ptr(-0.01)},
		{TaxRate: ptr(8.25)},
		{GSTRate: ptr(0.05), PSTRate: ptr(1.5)},
	} {
		if _, err := Resolve(in, DefaultRate); err == nil {
			t.Fatalf("expected error for %+v", in)
		}
	}
}

func TestRound(t *testing.T) {
	if got := Round(-2.675 * 2); got != -5.35 {
		t.Fatalf("unexpected rounding %v", got)
	}
	r, _ := Resolve(Input{}, DefaultRate)
	if r.Combined() != 0.0825 {
		t.Fatalf("combined default = %v", r.Combined())
	}
	if got := LineTotal(3, 19.99); got != 59.97 {
		t.Fatalf("line total = %v", got)
	}
}
