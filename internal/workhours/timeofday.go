package workhours

import (
	"fmt"
	"strings"
	"time"

	"fleet-workhours/internal/errors"
)

const minutesPerDay = 24 * 60

// TimeOfDay is a wall-clock time within a day, counted in minutes after midnight.
type TimeOfDay int

// NewTimeOfDay returns the time of day hour:minute.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 {
		return 0, errors.NewInvalidInputError("hour", hour, "must be between 0 and 23")
	}
	if minute < 0 || minute > 59 {
		return 0, errors.NewInvalidInputError("minute", minute, "must be between 0 and 59")
	}
	return TimeOfDay(hour*60 + minute), nil
}

// MustTimeOfDay is like NewTimeOfDay but panics on out-of-range input.
func MustTimeOfDay(hour, minute int) TimeOfDay {
	tod, err := NewTimeOfDay(hour, minute)
	if err != nil {
		panic(err)
	}
	return tod
}

// ParseTimeOfDay parses "HH:MM" (24-hour clock).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, errors.NewInvalidInputError("time of day", s, "expected HH:MM")
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// TimeOfDayOf returns the hour and minute component of t. Seconds are dropped.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// Hour returns the hour component.
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component.
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// Minutes returns the number of minutes after midnight.
func (t TimeOfDay) Minutes() int { return int(t) }

func (t TimeOfDay) valid() bool {
	return t >= 0 && t < minutesPerDay
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}
