package workhours

import "time"

// Breakdown splits the working minutes between two timestamps into the three
// contributions that make up the total. For a same-day interval everything is
// in FirstDayMinutes.
type Breakdown struct {
	FirstDayMinutes  int
	WholeDays        int64
	DayLengthMinutes int
	LastDayMinutes   int
}

// Total returns the working minutes the breakdown accounts for.
func (b Breakdown) Total() int64 {
	return int64(b.FirstDayMinutes) + b.WholeDays*int64(b.DayLengthMinutes) + int64(b.LastDayMinutes)
}

// Breakdown returns the per-part working minutes between start and end. An
// empty breakdown is returned when start is not before end.
func (w Window) Breakdown(start, end time.Time) Breakdown {
	b := Breakdown{DayLengthMinutes: w.LengthMinutes()}
	if !start.Before(end) {
		return b
	}

	startDay, endDay := DayNumber(start), DayNumber(end)
	startTOD, endTOD := TimeOfDayOf(start), TimeOfDayOf(end)

	switch {
	case endDay < startDay:
		// only reachable when the two timestamps carry different locations
		return b
	case startDay == endDay:
		b.FirstDayMinutes = w.MinutesInside(startTOD, endTOD)
	default:
		b.FirstDayMinutes = w.MinutesInside(startTOD, w.close)
		b.WholeDays = endDay - startDay - 1
		b.LastDayMinutes = w.MinutesInside(w.open, endTOD)
	}
	return b
}

// ElapsedMinutes returns the working minutes between start and end, 0 when
// start is not before end.
func (w Window) ElapsedMinutes(start, end time.Time) int64 {
	return w.Breakdown(start, end).Total()
}

// Elapsed returns the working hours between start and end.
func (w Window) Elapsed(start, end time.Time) float64 {
	return HoursFromMinutes(w.ElapsedMinutes(start, end))
}
