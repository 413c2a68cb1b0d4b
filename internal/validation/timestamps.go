package validation

import (
	"math"
	"strconv"
	"strings"
	"time"

	"fleet-workhours/internal/errors"
)

// TimestampLayouts are the accepted input forms, tried in order. Layouts
// without an offset are read in the caller's location.
var TimestampLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseTimestamp parses s in one of TimestampLayouts. loc defaults to
// time.Local.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	value := strings.TrimSpace(s)
	if value == "" {
		return time.Time{}, errors.NewInvalidInputError("timestamp", s, "is required")
	}

	for _, layout := range TimestampLayouts {
		if layout == time.RFC3339 {
			if t, err := time.Parse(layout, value); err == nil {
				return t, nil
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.NewInvalidInputError("timestamp", s, "expected YYYY-MM-DD HH:MM, YYYY-MM-DDTHH:MM or RFC3339")
}

// ParseHours parses a work amount given as decimal hours ("4.5") or a Go
// duration ("4h30m", "90m"). The result must be finite and not negative.
func ParseHours(s string) (float64, error) {
	value := strings.TrimSpace(s)
	if value == "" {
		return 0, errors.NewInvalidInputError("hours", s, "is required")
	}

	hours, err := strconv.ParseFloat(value, 64)
	if err != nil {
		d, derr := time.ParseDuration(value)
		if derr != nil {
			return 0, errors.NewInvalidInputError("hours", s, "expected decimal hours or a duration such as 4h30m")
		}
		hours = d.Hours()
	}

	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours < 0 {
		return 0, errors.NewInvalidInputError("hours", s, "must be a finite, non-negative number")
	}
	return hours, nil
}
