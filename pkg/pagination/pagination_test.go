package pagination

import "testing"

func TestValidateClamps(t *testing.T) {
	p := &PaginationParams{Page: -3, PerPage: 1000, Search: "  michelin "}
	p.Validate()
	if p.Page != 1 || p.PerPage != maxPerPage || p.Search != "michelin" {
		t.Fatalf("unexpected params after validate: %+v", p)
	}
	if p.Offset() != 0 {
		t.Fatalf("expected offset 0, got %d", p.Offset())
	}
}

func TestNewPagination(t *testing.T) {
	pg := NewPagination(2, 20, 41)
	if pg.TotalPages != 3 || !pg.HasNext || !pg.HasPrev {
		t.Fatalf("unexpected pagination: %+v", pg)
	}
}

func TestOrderByWhitelist(t *testing.T) {
	allowed := map[string]string{"date": "invoice_date"}

	p := &PaginationParams{SortBy: "date", SortDir: "asc"}
	if got := p.OrderBy(allowed, "created_at DESC"); got != "invoice_date ASC" {
		t.Fatalf("got %q", got)
	}

	p = &PaginationParams{SortBy: "1; DROP TABLE invoices"}
	if got := p.OrderBy(allowed, "created_at DESC"); got != "created_at DESC" {
		t.Fatalf("expected fallback, got %q", got)
	}
}
