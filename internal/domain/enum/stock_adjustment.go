package enum

import "database/sql/driver"

// StockAdjustmentType is how a stock adjustment changes on-hand quantity
type StockAdjustmentType int

const (
	StockAdjustmentTypeAdd StockAdjustmentType = iota
	StockAdjustmentTypeRemove
	StockAdjustmentTypeSet
)

var stockAdjustmentTypeNames = []string{"ADD", "REMOVE", "SET"}

func (s StockAdjustmentType) String() string {
	return nameOf(stockAdjustmentTypeNames, int(s))
}

// IsValid reports whether s is a known value.
func (s StockAdjustmentType) IsValid() bool {
	return nameOf(stockAdjustmentTypeNames, int(s)) != ""
}

// ParseStockAdjustmentType parses a name such as "ADD" (case-insensitive).
func ParseStockAdjustmentType(str string) (StockAdjustmentType, error) {
	i, err := parseName(stockAdjustmentTypeNames, "adjustment type", str)
	return StockAdjustmentType(i), err
}

func (s StockAdjustmentType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *StockAdjustmentType) UnmarshalJSON(data []byte) error {
	i, err := unmarshalName(data, stockAdjustmentTypeNames, "adjustment type")
	if err != nil {
		return err
	}
	*s = StockAdjustmentType(i)
	return nil
}

func (s StockAdjustmentType) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *StockAdjustmentType) Scan(value interface{}) error {
	i, err := scanInt(value)
	if err != nil {
		return err
	}
	*s = StockAdjustmentType(i)
	return nil
}
