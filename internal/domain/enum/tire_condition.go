package enum

import "database/sql/driver"

// TireCondition distinguishes new stock from used
type TireCondition int

const (
	TireConditionNew TireCondition = iota
	TireConditionUsed
)

var tireConditionNames = []string{"NEW", "USED"}

func (s TireCondition) String() string {
	return nameOf(tireConditionNames, int(s))
}

// IsValid reports whether s is a known value.
func (s TireCondition) IsValid() bool {
	return nameOf(tireConditionNames, int(s)) != ""
}

// ParseTireCondition parses a name such as "NEW" (case-insensitive).
func ParseTireCondition(str string) (TireCondition, error) {
	i, err := parseName(tireConditionNames, "tire condition", str)
	return TireCondition(i), err
}

func (s TireCondition) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *TireCondition) UnmarshalJSON(data []byte) error {
	i, err := unmarshalName(data, tireConditionNames, "tire condition")
	if err != nil {
		return err
	}
	*s = TireCondition(i)
	return nil
}

func (s TireCondition) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TireCondition) Scan(value interface{}) error {
	i, err := scanInt(value)
	if err != nil {
		return err
	}
	*s = TireCondition(i)
	return nil
}
