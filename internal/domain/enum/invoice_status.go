package enum

import "database/sql/driver"

// InvoiceStatus is the lifecycle state of an invoice
type InvoiceStatus int

const (
	InvoiceStatusPending InvoiceStatus = iota
	InvoiceStatusPaid
	InvoiceStatusCancelled
)

var invoiceStatusNames = []string{"PENDING", "PAID", "CANCELLED"}

func (s InvoiceStatus) String() string {
	return nameOf(invoiceStatusNames, int(s))
}

// IsValid reports whether s is a known value.
func (s InvoiceStatus) IsValid() bool {
	return nameOf(invoiceStatusNames, int(s)) != ""
}

// ParseInvoiceStatus parses a name such as "PENDING" (case-insensitive).
func ParseInvoiceStatus(str string) (InvoiceStatus, error) {
	i, err := parseName(invoiceStatusNames, "invoice status", str)
	return InvoiceStatus(i), err
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	i, err := unmarshalName(data, invoiceStatusNames, "invoice status")
	if err != nil {
		return err
	}
	*s = InvoiceStatus(i)
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	i, err := scanInt(value)
	if err != nil {
		return err
	}
	*s = InvoiceStatus(i)
	return nil
}
