package formatter

import (
	"strconv"
	"time"
)

// Iso8601 formats t in UTC with second precision.
func Iso8601(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ValidUntil returns the timestamp validFor after t, or "" when validFor is
// not positive.
func ValidUntil(t time.Time, validFor time.Duration) string {
	if validFor <= 0 {
		return ""
	}
	return t.Add(validFor).UTC().Format(time.RFC3339Nano)
}

func vehicleRef(id int) string {
	return "sim-" + strconv.Itoa(id)
}
