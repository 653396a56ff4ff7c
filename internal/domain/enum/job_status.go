package enum

import "database/sql/driver"

// JobStatus tracks an employee job through payroll
type JobStatus int

const (
	JobStatusPending JobStatus = iota
	JobStatusReady
	JobStatusPaid
)

var jobStatusNames = []string{"PENDING", "READY", "PAID"}

func (s JobStatus) String() string {
	return nameOf(jobStatusNames, int(s))
}

// IsValid reports whether s is a known value.
func (s JobStatus) IsValid() bool {
	return nameOf(jobStatusNames, int(s)) != ""
}

// ParseJobStatus parses a name such as "PENDING" (case-insensitive).
func ParseJobStatus(str string) (JobStatus, error) {
	i, err := parseName(jobStatusNames, "job status", str)
	return JobStatus(i), err
}

func (s JobStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *JobStatus) UnmarshalJSON(data []byte) error {
	i, err := unmarshalName(data, jobStatusNames, "job status")
	if err != nil {
		return err
	}
	*s = JobStatus(i)
	return nil
}

func (s JobStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *JobStatus) Scan(value interface{}) error {
	i, err := scanInt(value)
	if err != nil {
		return err
	}
	*s = JobStatus(i)
	return nil
}
