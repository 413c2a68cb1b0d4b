package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewPause(t *testing.T) {
	start := time.Date(2025, 11, 7, 10, 0, 0, 0, time.UTC)

	p := NewPause(3, "waiting for parts", start)

	assert.Equal(t, int64(3), p.WorkOrderID)
	assert.Equal(t, "waiting for parts", p.Reason)
	assert.Equal(t, start, p.StartTime)
	assert.True(t, p.IsActive())
	assert.Nil(t, p.DurationMinutes)
	assert.Equal(t, int64(0), p.Minutes())
}

func TestPause_Stop(t *testing.T) {
	start := time.Date(2025, 11, 7, 10, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	p := NewPause(1, "", start)

	stopped := p.Stop(end, 90)

	assert.True(t, p.IsActive(), "Stop returns a copy")
	assert.False(t, stopped.IsActive())
	assert.Equal(t, end, *stopped.EndTime)
	assert.Equal(t, int64(90), stopped.Minutes())
}

func TestPause_IsValid(t *testing.T) {
	start := time.Date(2025, 11, 7, 10, 0, 0, 0, time.UTC)
	before := start.Add(-time.Minute)
	negative := int64(-5)

	tests := []struct {
		name     string
		pause    Pause
		expected bool
	}{
		{name: "active", pause: NewPause(1, "", start), expected: true},
		{name: "stopped", pause: NewPause(1, "", start).Stop(start.Add(time.Hour), 60), expected: true},
		{name: "no work order", pause: NewPause(0, "", start), expected: false},
		{name: "zero start", pause: NewPause(1, "", time.Time{}), expected: false},
		{name: "ends before start", pause: Pause{WorkOrderID: 1, StartTime: start, EndTime: &before}, expected: false},
		{name: "negative minutes", pause: Pause{WorkOrderID: 1, StartTime: start, DurationMinutes: &negative}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.pause.IsValid())
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes  int64
		expected string
	}{
		{0, "0m"},
		{45, "45m"},
		{59, "59m"},
		{60, "1h 0m"},
		{135, "2h 15m"},
		{540, "9h 0m"},
		{-10, "0m"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMinutes(tt.minutes))
		})
	}
}

func TestFormatPauseDuration(t *testing.T) {
	start := time.Date(2025, 11, 7, 10, 0, 0, 0, time.UTC)
	active := NewPause(1, "", start)

	assert.Equal(t, RunningLabel, FormatPauseDuration(active))
	assert.Equal(t, "1h 30m", FormatPauseDuration(active.Stop(start.Add(90*time.Minute), 90)))
}
