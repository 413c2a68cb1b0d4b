package services

import (
	"time"

	"fleet-workhours/internal/domain"
	"fleet-workhours/internal/workhours"
)

// computeProgress measures w against its pauses. Open orders are measured up
// to now, completed ones up to their completion. An active pause counts as
// paused until the same moment.
func computeProgress(calc workhours.Calculator, w *domain.WorkOrder, pauses []*domain.Pause, now time.Time) *WorkOrderProgress {
	asOf := now
	if w.ActualCompletion != nil {
		asOf = *w.ActualCompletion
	}

	p := &WorkOrderProgress{
		WorkOrder:        w,
		AsOf:             asOf,
		EstimatedMinutes: workhours.MinutesFromHours(w.EstimatedHours),
		ElapsedMinutes:   calc.ElapsedMinutes(w.CreatedAt, asOf),
		PauseCount:       len(pauses),
		Overdue:          w.IsOverdue(now),
	}

	for _, pause := range pauses {
		if pause.IsActive() {
			p.PausedMinutes += calc.ElapsedMinutes(pause.StartTime, asOf)
			p.ActivePause = pause
			continue
		}
		p.PausedMinutes += pause.Minutes()
	}
	if p.PausedMinutes > p.ElapsedMinutes {
		p.PausedMinutes = p.ElapsedMinutes
	}

	p.WorkedMinutes = p.ElapsedMinutes - p.PausedMinutes
	if w.IsOpen() && p.WorkedMinutes < p.EstimatedMinutes {
		p.RemainingMinutes = p.EstimatedMinutes - p.WorkedMinutes
	}

	if p.EstimatedMinutes > 0 {
		p.PercentComplete = float64(p.WorkedMinutes) / float64(p.EstimatedMinutes) * 100
		if p.PercentComplete > 100 {
			p.PercentComplete = 100
		}
	}

	if w.IsOpen() {
		p.ProjectedCompletion = calc.CompletionMinutes(now, p.RemainingMinutes)
	} else {
		p.ProjectedCompletion = asOf
	}

	return p
}
