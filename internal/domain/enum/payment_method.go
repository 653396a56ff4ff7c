package enum

import "database/sql/driver"

// PaymentMethod is how a customer settled an invoice
type PaymentMethod int

const (
	PaymentMethodCash PaymentMethod = iota
	PaymentMethodCreditCard
	PaymentMethodDebitCard
	PaymentMethodCheck
	PaymentMethodETransfer
	PaymentMethodFinancing
)

var paymentMethodNames = []string{"CASH", "CREDIT_CARD", "DEBIT_CARD", "CHECK", "E_TRANSFER", "FINANCING"}

func (s PaymentMethod) String() string {
	return nameOf(paymentMethodNames, int(s))
}

// IsValid reports whether s is a known value.
func (s PaymentMethod) IsValid() bool {
	return nameOf(paymentMethodNames, int(s)) != ""
}

// ParsePaymentMethod parses a name such as "CASH" (case-insensitive).
func ParsePaymentMethod(str string) (PaymentMethod, error) {
	i, err := parseName(paymentMethodNames, "payment method", str)
	return PaymentMethod(i), err
}

func (s PaymentMethod) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *PaymentMethod) UnmarshalJSON(data []byte) error {
	i, err := unmarshalName(data, paymentMethodNames, "payment method")
	if err != nil {
		return err
	}
	*s = PaymentMethod(i)
	return nil
}

func (s PaymentMethod) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentMethod) Scan(value interface{}) error {
	i, err := scanInt(value)
	if err != nil {
		return err
	}
	*s = PaymentMethod(i)
	return nil
}
