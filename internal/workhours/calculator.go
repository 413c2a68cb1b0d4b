package workhours

import "time"

var canonical = DefaultWindow()

// WorkingHoursElapsed returns the working hours between start and end under
// the canonical window.
func WorkingHoursElapsed(start, end time.Time) float64 {
	return canonical.Elapsed(start, end)
}

// CompletionDatetime returns when requiredHours of work started at start
// finish under the canonical window.
func CompletionDatetime(start time.Time, requiredHours float64) time.Time {
	return canonical.Completion(start, requiredHours)
}

// Calculator is the pair of inverse operations. Window implements it, as do
// calendar layers built over a Window.
type Calculator interface {
	ElapsedMinutes(start, end time.Time) int64
	CompletionMinutes(start time.Time, minutes int64) time.Time
}

var _ Calculator = Window{}
