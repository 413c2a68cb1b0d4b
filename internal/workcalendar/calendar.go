// Package workcalendar layers non-working dates (weekly days off and
// holidays) over a workhours.Window. Non-working dates contribute no working
// time and are skipped when consuming work, so Elapsed and Completion remain
// inverses.
package workcalendar

import (
	"math"
	"sort"
	"strings"
	"time"

	"fleet-workhours/internal/errors"
	"fleet-workhours/internal/workhours"
)

const dateLayout = "2006-01-02"

// Calendar is immutable after New and safe for concurrent use.
type Calendar struct {
	window      workhours.Window
	workdays    [7]bool
	holidays    map[int64]struct{}
	lastHoliday int64
}

// Option configures a Calendar.
type Option func(*Calendar)

// WithWorkdays replaces the working weekdays. Without it every day works.
func WithWorkdays(days ...time.Weekday) Option {
	return func(c *Calendar) {
		c.workdays = [7]bool{}
		for _, d := range days {
			c.workdays[d] = true
		}
	}
}

// WithHolidays marks the calendar dates of the given times as non-working.
func WithHolidays(dates ...time.Time) Option {
	return func(c *Calendar) {
		for _, d := range dates {
			c.holidays[workhours.DayNumber(d)] = struct{}{}
		}
	}
}

// New builds a calendar over window. At least one weekday must be working.
func New(window workhours.Window, opts ...Option) (*Calendar, error) {
	if window.LengthMinutes() <= 0 {
		return nil, errors.NewConfigurationError("working calendar", "window has no working time")
	}

	c := &Calendar{
		window:   window,
		workdays: [7]bool{true, true, true, true, true, true, true},
		holidays: make(map[int64]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.lastHoliday = math.MinInt64
	for d := range c.holidays {
		c.lastHoliday = max(c.lastHoliday, d)
	}

	for _, works := range c.workdays {
		if works {
			return c, nil
		}
	}
	return nil, errors.NewConfigurationError("working calendar", "at least one weekday must be a working day")
}

// Window returns the daily window the calendar is built on.
func (c *Calendar) Window() workhours.Window {
	return c.window
}

// Workdays returns the working weekdays, Sunday first.
func (c *Calendar) Workdays() []time.Weekday {
	var days []time.Weekday
	for d, works := range c.workdays {
		if works {
			days = append(days, time.Weekday(d))
		}
	}
	return days
}

// Holidays returns the holiday dates in ascending order, at midnight UTC.
func (c *Calendar) Holidays() []time.Time {
	days := make([]int64, 0, len(c.holidays))
	for d := range c.holidays {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	out := make([]time.Time, len(days))
	for i, d := range days {
		out[i] = time.Unix(d*24*60*60, 0).UTC()
	}
	return out
}

// IsWorkingDay reports whether the calendar date of t has a working window.
func (c *Calendar) IsWorkingDay(t time.Time) bool {
	if !c.workdays[t.Weekday()] {
		return false
	}
	_, holiday := c.holidays[workhours.DayNumber(t)]
	return !holiday
}

// ParseWeekdays accepts English weekday names or their three-letter
// abbreviations, case-insensitively.
func ParseWeekdays(names []string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		day, ok := weekdayNames[name]
		if !ok {
			return nil, errors.NewInvalidInputError("weekday", raw, "unknown weekday name")
		}
		days = append(days, day)
	}
	return days, nil
}

// ParseHolidays parses dates in YYYY-MM-DD form.
func ParseHolidays(values []string) ([]time.Time, error) {
	var dates []time.Time
	for _, raw := range values {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			return nil, errors.NewInvalidInputError("holiday", raw, "expected YYYY-MM-DD")
		}
		dates = append(dates, d)
	}
	return dates, nil
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}
