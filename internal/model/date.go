package model

import (
	"fmt"
	"time"

	"github.com/debtify/debtify/internal/common"
)

// DateLayout is the ISO-8601 calendar date format used on the wire and in
// the transactions table.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD) into a UTC
// midnight time. Returns common.ErrParse on malformed input.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", common.ErrParse, s)
	}
	return d, nil
}

// FormatDate renders a time as an ISO-8601 calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
