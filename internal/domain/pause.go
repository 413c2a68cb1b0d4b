package domain

import (
	"time"
)

// Pause is an interval during which work on a work order is stopped.
// DurationMinutes holds the working minutes inside the pause once it is
// stopped; it is nil while the pause is active.
type Pause struct {
	ID              int64
	WorkOrderID     int64
	Reason          string
	StartTime       time.Time
	EndTime         *time.Time
	DurationMinutes *int64
}

// NewPause creates an active pause for the given work order.
func NewPause(workOrderID int64, reason string, startTime time.Time) Pause {
	return Pause{
		WorkOrderID: workOrderID,
		Reason:      reason,
		StartTime:   startTime,
	}
}

// IsActive returns true if the pause has not been stopped.
func (p Pause) IsActive() bool {
	return p.EndTime == nil
}

// Stop closes the pause at endTime with the working minutes it covered.
func (p Pause) Stop(endTime time.Time, workingMinutes int64) Pause {
	p.EndTime = &endTime
	p.DurationMinutes = &workingMinutes
	return p
}

// Minutes returns the recorded working minutes, zero while active.
func (p Pause) Minutes() int64 {
	if p.DurationMinutes == nil {
		return 0
	}
	return *p.DurationMinutes
}

// IsValid checks if the pause has valid data.
func (p Pause) IsValid() bool {
	if p.WorkOrderID <= 0 {
		return false
	}
	if p.StartTime.IsZero() {
		return false
	}
	if p.EndTime != nil && p.EndTime.Before(p.StartTime) {
		return false
	}
	if p.DurationMinutes != nil && *p.DurationMinutes < 0 {
		return false
	}
	return true
}
