package workhours

import "time"

const secondsPerDay = 24 * 60 * 60

// DayNumber returns the number of calendar days between 1970-01-01 and the
// wall-clock date of t. Only t's date matters, not its location offset.
func DayNumber(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
}

// At returns the wall-clock time tod on the date dayOffset days after the
// date of base, in base's location.
func At(base time.Time, dayOffset int, tod TimeOfDay) time.Time {
	y, m, d := base.Date()
	return time.Date(y, m, d+dayOffset, 0, int(tod), 0, 0, base.Location())
}
