package enum

import "database/sql/driver"

// QuotationStatus is the lifecycle state of a quotation
type QuotationStatus int

const (
	QuotationStatusDraft QuotationStatus = iota
	QuotationStatusSent
	QuotationStatusAccepted
	QuotationStatusDeclined
	QuotationStatusExpired
	QuotationStatusConverted
)

var quotationStatusNames = []string{"DRAFT", "SENT", "ACCEPTED", "DECLINED", "EXPIRED", "CONVERTED"}

func (s QuotationStatus) String() string {
	return nameOf(quotationStatusNames, int(s))
}

// IsValid reports whether s is a known value.
func (s QuotationStatus) IsValid() bool {
	return nameOf(quotationStatusNames, int(s)) != ""
}

// ParseQuotationStatus parses a name such as "DRAFT" (case-insensitive).
func ParseQuotationStatus(str string) (QuotationStatus, error) {
	i, err := parseName(quotationStatusNames, "quotation status", str)
	return QuotationStatus(i), err
}

func (s QuotationStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *QuotationStatus) UnmarshalJSON(data []byte) error {
	i, err := unmarshalName(data, quotationStatusNames, "quotation status")
	if err != nil {
		return err
	}
	*s = QuotationStatus(i)
	return nil
}

func (s QuotationStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *QuotationStatus) Scan(value interface{}) error {
	i, err := scanInt(value)
	if err != nil {
		return err
	}
	*s = QuotationStatus(i)
	return nil
}
