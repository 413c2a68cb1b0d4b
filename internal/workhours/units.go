package workhours

import "math"

// MinutesPerHour converts between the two units the package exposes.
const MinutesPerHour = 60

// MaxMinutes is the largest amount of work the package converts. Every whole
// minute up to it is exact in a float64.
const MaxMinutes int64 = 1 << 53

// MaxHours is MaxMinutes expressed in hours.
const MaxHours = float64(MaxMinutes) / MinutesPerHour

// HoursFromMinutes converts whole minutes to hours. Every multiple of 1/60 is
// produced by a single division, so no drift accumulates.
func HoursFromMinutes(minutes int64) float64 {
	return float64(minutes) / MinutesPerHour
}

// MinutesFromHours converts hours to whole minutes, rounding half away from
// zero. NaN, infinities and non-positive amounts convert to 0; finite amounts
// of MaxHours or more saturate at MaxMinutes.
func MinutesFromHours(hours float64) int64 {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours <= 0 {
		return 0
	}
	if hours >= MaxHours {
		return MaxMinutes
	}
	return int64(math.Round(hours * MinutesPerHour))
}
