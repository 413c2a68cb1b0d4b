package workhours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 2025-11-07 is a Friday.
func ts(day, hour, minute int) time.Time {
	return time.Date(2025, time.November, day, hour, minute, 0, 0, time.UTC)
}

func TestElapsed_Scenarios(t *testing.T) {
	w := DefaultWindow()
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected float64
	}{
		{"same day inside window", ts(10, 9, 0), ts(10, 12, 0), 3.0},
		{"same day clamped to open", ts(10, 6, 0), ts(10, 10, 0), 2.5},
		{"same day clamped to close", ts(10, 15, 0), ts(10, 18, 0), 1.5},
		{"friday to sunday", ts(7, 10, 0), ts(9, 10, 0), 18.0},
		{"entirely before opening", ts(10, 5, 0), ts(10, 6, 0), 0.0},
		{"across one night", ts(9, 15, 0), ts(10, 10, 0), 4.0},
		{"same instant", ts(9, 10, 0), ts(9, 10, 0), 0.0},
		{"reversed", ts(9, 15, 0), ts(9, 10, 0), 0.0},
		{"exactly the window", ts(9, 7, 30), ts(9, 16, 30), 9.0},
		{"partial hour", ts(9, 7, 45), ts(9, 8, 15), 0.5},
		{"start after close", ts(10, 17, 0), ts(12, 8, 30), 10.0},
		{"end before open", ts(10, 15, 30), ts(12, 6, 0), 10.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, w.Elapsed(tt.start, tt.end))
		})
	}
}

func TestWorkingHoursElapsed_UsesCanonicalWindow(t *testing.T) {
	assert.Equal(t, 18.0, WorkingHoursElapsed(ts(7, 10, 0), ts(9, 10, 0)))
}

func TestBreakdown(t *testing.T) {
	w := DefaultWindow()

	b := w.Breakdown(ts(7, 10, 0), ts(9, 10, 0))
	assert.Equal(t, Breakdown{FirstDayMinutes: 390, WholeDays: 1, DayLengthMinutes: 540, LastDayMinutes: 150}, b)
	assert.Equal(t, int64(1080), b.Total())

	same := w.Breakdown(ts(10, 9, 0), ts(10, 12, 0))
	assert.Equal(t, 180, same.FirstDayMinutes)
	assert.Zero(t, same.WholeDays)
	assert.Zero(t, same.LastDayMinutes)

	empty := w.Breakdown(ts(10, 12, 0), ts(10, 9, 0))
	assert.Zero(t, empty.Total())
}

func TestElapsed_IgnoresSeconds(t *testing.T) {
	w := DefaultWindow()
	start := time.Date(2025, time.November, 10, 9, 0, 45, 0, time.UTC)
	end := time.Date(2025, time.November, 10, 10, 0, 10, 0, time.UTC)
	assert.Equal(t, int64(60), w.ElapsedMinutes(start, end))
}

func TestElapsed_KeepsWallClockOfLocation(t *testing.T) {
	w := DefaultWindow()
	zone := time.FixedZone("CLT", -3*60*60)
	start := time.Date(2025, time.November, 10, 9, 0, 0, 0, zone)
	end := time.Date(2025, time.November, 10, 12, 0, 0, 0, zone)
	assert.Equal(t, 3.0, w.Elapsed(start, end))
}

func TestElapsed_CustomWindow(t *testing.T) {
	w, err := ParseWindow("08:00", "12:00")
	assert.NoError(t, err)
	assert.Equal(t, 4.0+4.0+2.0, w.Elapsed(ts(10, 6, 0), ts(12, 10, 0)))
}

func TestElapsed_LongSpan(t *testing.T) {
	w := DefaultWindow()
	start := time.Date(2024, time.January, 1, 7, 30, 0, 0, time.UTC)
	end := time.Date(2025, time.January, 1, 7, 30, 0, 0, time.UTC)
	// 2024 has 366 days, each contributes a full window
	assert.Equal(t, 366*9.0, w.Elapsed(start, end))
}
