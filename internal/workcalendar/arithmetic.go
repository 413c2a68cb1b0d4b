package workcalendar

import (
	"time"

	"fleet-workhours/internal/workhours"
)

// ElapsedMinutes returns the working minutes between start and end, counting
// only working days.
func (c *Calendar) ElapsedMinutes(start, end time.Time) int64 {
	if !start.Before(end) {
		return 0
	}

	w := c.window
	startDay, endDay := workhours.DayNumber(start), workhours.DayNumber(end)
	if endDay < startDay {
		return 0
	}
	startTOD, endTOD := workhours.TimeOfDayOf(start), workhours.TimeOfDayOf(end)

	if startDay == endDay {
		if !c.IsWorkingDay(start) {
			return 0
		}
		return int64(w.MinutesInside(startTOD, endTOD))
	}

	var total int64
	if c.IsWorkingDay(start) {
		total += int64(w.MinutesInside(startTOD, w.Close()))
	}
	for offset := 1; int64(offset) < endDay-startDay; offset++ {
		if c.IsWorkingDay(workhours.At(start, offset, 0)) {
			total += int64(w.LengthMinutes())
		}
	}
	if c.IsWorkingDay(end) {
		total += int64(w.MinutesInside(w.Open(), endTOD))
	}
	return total
}

// Elapsed returns ElapsedMinutes in hours.
func (c *Calendar) Elapsed(start, end time.Time) float64 {
	return workhours.HoursFromMinutes(c.ElapsedMinutes(start, end))
}

// CompletionMinutes returns the timestamp at which minutes of working time
// have been consumed from start, skipping non-working days. A non-positive
// amount returns start unchanged.
func (c *Calendar) CompletionMinutes(start time.Time, minutes int64) time.Time {
	if minutes <= 0 {
		return start
	}

	w := c.window
	day, tod := w.Normalise(start)
	day = c.nextWorkingOffset(start, day)
	if day > 0 {
		tod = w.Open()
	}

	firstDay := workhours.DayNumber(start)
	weekMinutes := int64(c.workdayCount() * w.LengthMinutes())

	remaining := minutes
	for {
		avail := int64(w.Close() - tod)
		if remaining <= avail {
			return workhours.At(start, day, tod+workhours.TimeOfDay(remaining))
		}
		remaining -= avail
		day = c.nextWorkingOffset(start, day+1)
		tod = w.Open()

		// Past the last holiday every 7 consecutive days hold the same
		// working time, so whole weeks are consumed at once.
		if remaining > weekMinutes && firstDay+int64(day) > c.lastHoliday {
			weeks := (remaining - 1) / weekMinutes
			day += 7 * int(weeks)
			remaining -= weeks * weekMinutes
		}
	}
}

// Completion returns CompletionMinutes for an amount in hours.
func (c *Calendar) Completion(start time.Time, hours float64) time.Time {
	return c.CompletionMinutes(start, workhours.MinutesFromHours(hours))
}

func (c *Calendar) workdayCount() int {
	n := 0
	for _, works := range c.workdays {
		if works {
			n++
		}
	}
	return n
}

// nextWorkingOffset returns the first day offset >= from whose date works.
func (c *Calendar) nextWorkingOffset(base time.Time, from int) int {
	offset := from
	for !c.IsWorkingDay(workhours.At(base, offset, 0)) {
		offset++
	}
	return offset
}
