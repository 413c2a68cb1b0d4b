package workhours

import (
	"fmt"

	"fleet-workhours/internal/errors"
)

// Canonical working day of the workshop.
var (
	CanonicalOpen  = MustTimeOfDay(7, 30)
	CanonicalClose = MustTimeOfDay(16, 30)
)

// Window is the daily working interval [open, close]. It is immutable once
// built; the zero value has no working time and must not be used, build one
// with NewWindow.
type Window struct {
	open  TimeOfDay
	close TimeOfDay
}

// NewWindow validates open < close, both inside [00:00, 24:00). Any other
// pair is a configuration fault.
func NewWindow(open, closeAt TimeOfDay) (Window, error) {
	if !open.valid() {
		return Window{}, errors.NewConfigurationError("working window", fmt.Sprintf("open %d is outside the day", int(open)))
	}
	if !closeAt.valid() {
		return Window{}, errors.NewConfigurationError("working window", fmt.Sprintf("close %d is outside the day", int(closeAt)))
	}
	if open >= closeAt {
		return Window{}, errors.NewConfigurationError("working window", fmt.Sprintf("open %s is not before close %s", open, closeAt))
	}
	return Window{open: open, close: closeAt}, nil
}

// ParseWindow builds a Window from two "HH:MM" strings.
func ParseWindow(open, closeAt string) (Window, error) {
	o, err := ParseTimeOfDay(open)
	if err != nil {
		return Window{}, errors.WrapError(err, errors.ErrorTypeConfiguration, "working window open time")
	}
	c, err := ParseTimeOfDay(closeAt)
	if err != nil {
		return Window{}, errors.WrapError(err, errors.ErrorTypeConfiguration, "working window close time")
	}
	return NewWindow(o, c)
}

// DefaultWindow returns the canonical 07:30-16:30 window.
func DefaultWindow() Window {
	return Window{open: CanonicalOpen, close: CanonicalClose}
}

func (w Window) Open() TimeOfDay  { return w.open }
func (w Window) Close() TimeOfDay { return w.close }

// LengthMinutes is the working time of one full day.
func (w Window) LengthMinutes() int {
	return int(w.close - w.open)
}

// LengthHours is LengthMinutes expressed in hours.
func (w Window) LengthHours() float64 {
	return HoursFromMinutes(int64(w.LengthMinutes()))
}

// Clamp returns open if t is before the window, close if t is after it and
// t otherwise.
func (w Window) Clamp(t TimeOfDay) TimeOfDay {
	if t < w.open {
		return w.open
	}
	if t > w.close {
		return w.close
	}
	return t
}

// MinutesInside returns the working minutes of [start, end] restricted to
// the window: max(0, min(end, close) - max(start, open)).
func (w Window) MinutesInside(start, end TimeOfDay) int {
	from := max(start, w.open)
	to := min(end, w.close)
	if to <= from {
		return 0
	}
	return int(to - from)
}

// Contains reports whether t is working time: open inclusive, close exclusive.
func (w Window) Contains(t TimeOfDay) bool {
	return t >= w.open && t < w.close
}

func (w Window) String() string {
	return w.open.String() + "-" + w.close.String()
}
