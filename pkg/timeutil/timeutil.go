package timeutil

import (
	"time"
)

const (
	TimeFormatCommonStyleDay = "2006-01-02"
	TimeFormatCommonStyleSec = "2006-01-02 15:04:05"
)

// ISOTimestamp formats a time as UTC RFC3339 with a Z suffix, the wire format
// used by every API response and stored document in this service.
func ISOTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// NowISO is ISOTimestamp for the current instant.
func NowISO() string {
	return ISOTimestamp(time.Now())
}

// ParseDay parses a YYYY-MM-DD date string.
func ParseDay(value string) (time.Time, error) {
	return time.Parse(TimeFormatCommonStyleDay, value)
}

// IsValidDay reports whether value is a well-formed YYYY-MM-DD date.
func IsValidDay(value string) bool {
	_, err := ParseDay(value)
	return err == nil
}
