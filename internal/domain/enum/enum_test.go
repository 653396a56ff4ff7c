package enum

import (
	"encoding/json"
	"testing"
)

func TestPaymentMethodJSON(t *testing.T) {
	var body struct {
		Method PaymentMethod `json:"method"`
	}
	if err := json.Unmarshal([]byte(`{"method":"credit-card"}`), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Method != PaymentMethodCreditCard {
		t.Fatalf("got %v", body.Method)
	}
	out, _ := json.Marshal(body)
	if string(out) != `{"method":"CREDIT_CARD"}` {
		t.Fatalf("marshal = %s", out)
	}
}

func TestUnknownNameRejected(t *testing.T) {
	var s InvoiceStatus
	if err := json.Unmarshal([]byte(`"REFUNDED"`), &s); err == nil {
		t.Fatalf("expected error for unknown status")
	}
	if err := json.Unmarshal([]byte(`7`), &s); err == nil {
		t.Fatalf("expected error for out-of-range ordinal")
	}
}

func TestScan(t *testing.T) {
	var s QuotationStatus
	if err := s.Scan(int64(5)); err != nil || s != QuotationStatusConverted {
		t.Fatalf("scan = %v %v", s, err)
	}
	if err := s.Scan("oops"); err == nil {
		t.Fatalf("expected scan error")
	}
}

func TestParseUserRole(t *testing.T) {
	r, err := ParseUserRole(" manager ")
	if err != nil || r != UserRoleManager {
		t.Fatalf("got %v %v", r, err)
	}
	if UserRole(9).IsValid() {
		t.Fatalf("out of range role reported valid")
	}
}
