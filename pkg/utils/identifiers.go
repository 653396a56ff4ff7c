package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ParseOptionalUUID parses s, treating an empty string as absent.
func ParseOptionalUUID(s string) (*uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// VINs are 17 characters and never use I, O or Q.
var vinPattern = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)

// NormalizeVIN upper-cases and strips spaces and dashes.
func NormalizeVIN(vin string) string {
	vin = strings.ToUpper(strings.TrimSpace(vin))
	return strings.NewReplacer(" ", "", "-", "").Replace(vin)
}

// ValidVIN reports whether vin is a well-formed VIN after normalisation.
func ValidVIN(vin string) bool {
	return vinPattern.MatchString(NormalizeVIN(vin))
}
