package enum

import "database/sql/driver"

// AuditAction names the kind of change recorded in the audit log
type AuditAction int

const (
	AuditActionCreate AuditAction = iota
	AuditActionUpdate
	AuditActionDelete
	AuditActionStatusChange
	AuditActionStockAdjust
	AuditActionConvert
	AuditActionLogin
)

var auditActionNames = []string{"CREATE", "UPDATE", "DELETE", "STATUS_CHANGE", "STOCK_ADJUST", "CONVERT", "LOGIN"}

func (s AuditAction) String() string {
	return nameOf(auditActionNames, int(s))
}

// IsValid reports whether s is a known value.
func (s AuditAction) IsValid() bool {
	return nameOf(auditActionNames, int(s)) != ""
}

// ParseAuditAction parses a name such as "CREATE" (case-insensitive).
func ParseAuditAction(str string) (AuditAction, error) {
	i, err := parseName(auditActionNames, "audit action", str)
	return AuditAction(i), err
}

func (s AuditAction) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *AuditAction) UnmarshalJSON(data []byte) error {
	i, err := unmarshalName(data, auditActionNames, "audit action")
	if err != nil {
		return err
	}
	*s = AuditAction(i)
	return nil
}

func (s AuditAction) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *AuditAction) Scan(value interface{}) error {
	i, err := scanInt(value)
	if err != nil {
		return err
	}
	*s = AuditAction(i)
	return nil
}
