package enum

import "database/sql/driver"

// AppointmentStatus is the state of a booked appointment
type AppointmentStatus int

const (
	AppointmentStatusScheduled AppointmentStatus = iota
	AppointmentStatusConfirmed
	AppointmentStatusCompleted
	AppointmentStatusCancelled
	AppointmentStatusNoShow
)

var appointmentStatusNames = []string{"SCHEDULED", "CONFIRMED", "COMPLETED", "CANCELLED", "NO_SHOW"}

func (s AppointmentStatus) String() string {
	return nameOf(appointmentStatusNames, int(s))
}

// IsValid reports whether s is a known value.
func (s AppointmentStatus) IsValid() bool {
	return nameOf(appointmentStatusNames, int(s)) != ""
}

// ParseAppointmentStatus parses a name such as "SCHEDULED" (case-insensitive).
func ParseAppointmentStatus(str string) (AppointmentStatus, error) {
	i, err := parseName(appointmentStatusNames, "appointment status", str)
	return AppointmentStatus(i), err
}

func (s AppointmentStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *AppointmentStatus) UnmarshalJSON(data []byte) error {
	i, err := unmarshalName(data, appointmentStatusNames, "appointment status")
	if err != nil {
		return err
	}
	*s = AppointmentStatus(i)
	return nil
}

func (s AppointmentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *AppointmentStatus) Scan(value interface{}) error {
	i, err := scanInt(value)
	if err != nil {
		return err
	}
	*s = AppointmentStatus(i)
	return nil
}
