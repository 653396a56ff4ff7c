package enum

import "database/sql/driver"

// UserRole is the access level of a user
type UserRole int

const (
	UserRoleStaff UserRole = iota
	UserRoleManager
	UserRoleAdmin
)

var userRoleNames = []string{"STAFF", "MANAGER", "ADMIN"}

func (s UserRole) String() string {
	return nameOf(userRoleNames, int(s))
}

// IsValid reports whether s is a known value.
func (s UserRole) IsValid() bool {
	return nameOf(userRoleNames, int(s)) != ""
}

// ParseUserRole parses a name such as "STAFF" (case-insensitive).
func ParseUserRole(str string) (UserRole, error) {
	i, err := parseName(userRoleNames, "user role", str)
	return UserRole(i), err
}

func (s UserRole) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *UserRole) UnmarshalJSON(data []byte) error {
	i, err := unmarshalName(data, userRoleNames, "user role")
	if err != nil {
		return err
	}
	*s = UserRole(i)
	return nil
}

func (s UserRole) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *UserRole) Scan(value interface{}) error {
	i, err := scanInt(value)
	if err != nil {
		return err
	}
	*s = UserRole(i)
	return nil
}
