package enum

import "database/sql/driver"

// ItemType classifies an invoice or quotation line
type ItemType int

const (
	ItemTypeTire ItemType = iota
	ItemTypeService
	ItemTypePart
	ItemTypeOther
)

var itemTypeNames = []string{"TIRE", "SERVICE", "PART", "OTHER"}

func (s ItemType) String() string {
	return nameOf(itemTypeNames, int(s))
}

// IsValid reports whether s is a known value.
func (s ItemType) IsValid() bool {
	return nameOf(itemTypeNames, int(s)) != ""
}

// ParseItemType parses a name such as "TIRE" (case-insensitive).
func ParseItemType(str string) (ItemType, error) {
	i, err := parseName(itemTypeNames, "item type", str)
	return ItemType(i), err
}

func (s ItemType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *ItemType) UnmarshalJSON(data []byte) error {
	i, err := unmarshalName(data, itemTypeNames, "item type")
	if err != nil {
		return err
	}
	*s = ItemType(i)
	return nil
}

func (s ItemType) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ItemType) Scan(value interface{}) error {
	i, err := scanInt(value)
	if err != nil {
		return err
	}
	*s = ItemType(i)
	return nil
}
