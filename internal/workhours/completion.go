package workhours

import "time"

// Normalise moves a start outside working time to the next opening: before
// open goes to open on the same day, at or after close goes to open on the
// following day. It returns the day offset from start's date and the time of
// day to start consuming work at.
func (w Window) Normalise(start time.Time) (dayOffset int, tod TimeOfDay) {
	tod = TimeOfDayOf(start)
	switch {
	case w.Contains(tod):
		return 0, tod
	case tod < w.open:
		return 0, w.open
	default:
		return 1, w.open
	}
}

// CompletionMinutes returns the timestamp at which minutes of working time
// have been consumed from start. A non-positive amount returns start
// unchanged. A result landing exactly on close stays on that day.
func (w Window) CompletionMinutes(start time.Time, minutes int64) time.Time {
	length := int64(w.LengthMinutes())
	if minutes <= 0 || length <= 0 {
		return start
	}

	day, tod := w.Normalise(start)
	avail := int64(w.close - tod)
	if minutes <= avail {
		return At(start, day, tod+TimeOfDay(minutes))
	}

	remaining := minutes - avail
	// whole days consumed before the finishing day; remaining ends in (0, length]
	fullDays := (remaining - 1) / length
	remaining -= fullDays * length
	return At(start, day+1+int(fullDays), w.open+TimeOfDay(remaining))
}

// Completion returns the timestamp at which hours of working time have been
// consumed from start. Hours are rounded to the nearest minute first.
func (w Window) Completion(start time.Time, hours float64) time.Time {
	return w.CompletionMinutes(start, MinutesFromHours(hours))
}
