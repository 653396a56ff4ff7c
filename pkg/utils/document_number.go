package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Document number prefixes.
const (
	InvoicePrefix   = "INV"
	QuotationPrefix = "QT"
)

// DocumentNumberPrefix returns "{PREFIX}-{YYYYMM}-" for the month of t.
func DocumentNumberPrefix(prefix string, t time.Time) string {
	return fmt.Sprintf("%s-%s-", prefix, t.Format("200601"))
}

// FormatDocumentNumber zero-pads seq to four digits. Larger sequences keep all digits.
func FormatDocumentNumber(prefix string, t time.Time, seq int) string {
	return fmt.Sprintf("%s%04d", DocumentNumberPrefix(prefix, t), seq)
}

// ParseDocumentSequence extracts the trailing sequence of a document number.
func ParseDocumentSequence(number string) (int, bool) {
	idx := strings.LastIndex(number, "-")
	if idx < 0 || idx == len(number)-1 {
		return 0, false
	}
	n, err := strconv.Atoi(number[idx+1:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// NextDocumentNumber picks max(existing sequence)+1 for the month of t.
// Numbers that do not parse are ignored.
func NextDocumentNumber(prefix string, t time.Time, existing []string) string {
	monthPrefix := DocumentNumberPrefix(prefix, t)
	max := 0
	for _, n := range existing {
		if !strings.HasPrefix(n, monthPrefix) {
			continue
		}
		if seq, ok := ParseDocumentSequence(n); ok && seq > max {
			max = seq
		}
	}
	return FormatDocumentNumber(prefix, t, max+1)
}
