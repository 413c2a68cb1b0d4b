package domain

import "fmt"

// RunningLabel is shown in place of a duration for an active pause.
const RunningLabel = "running"

// FormatMinutes renders working minutes as "Xh Ym", or "Ym" below an hour.
// Negative input renders as "0m".
func FormatMinutes(minutes int64) string {
	if minutes < 0 {
		minutes = 0
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// FormatPauseDuration renders a stopped pause's working minutes, or
// RunningLabel while it is active.
func FormatPauseDuration(p Pause) string {
	if p.IsActive() {
		return RunningLabel
	}
	return FormatMinutes(p.Minutes())
}
