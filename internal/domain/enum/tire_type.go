package enum

import "database/sql/driver"

// TireType is the season or use class of a tire
type TireType int

const (
	TireTypeAllSeason TireType = iota
	TireTypeSummer
	TireTypeWinter
	TireTypePerformance
	TireTypeOffRoad
)

var tireTypeNames = []string{"ALL_SEASON", "SUMMER", "WINTER", "PERFORMANCE", "OFF_ROAD"}

func (s TireType) String() string {
	return nameOf(tireTypeNames, int(s))
}

// IsValid reports whether s is a known value.
func (s TireType) IsValid() bool {
	return nameOf(tireTypeNames, int(s)) != ""
}

// ParseTireType parses a name such as "ALL_SEASON" (case-insensitive).
func ParseTireType(str string) (TireType, error) {
	i, err := parseName(tireTypeNames, "tire type", str)
	return TireType(i), err
}

func (s TireType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *TireType) UnmarshalJSON(data []byte) error {
	i, err := unmarshalName(data, tireTypeNames, "tire type")
	if err != nil {
		return err
	}
	*s = TireType(i)
	return nil
}

func (s TireType) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TireType) Scan(value interface{}) error {
	i, err := scanInt(value)
	if err != nil {
		return err
	}
	*s = TireType(i)
	return nil
}
