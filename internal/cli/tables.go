package cli

import (
	"fmt"
	"io"

	"fleet-workhours/internal/domain"
	"fleet-workhours/internal/services"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(out io.Writer, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	return t
}

// statusLabel summarises the state of a work order at its progress point
func statusLabel(p *services.WorkOrderProgress) string {
	switch {
	case !p.WorkOrder.IsOpen() && p.Overdue:
		return "completed late"
	case !p.WorkOrder.IsOpen():
		return "completed"
	case p.ActivePause != nil:
		return "paused"
	case p.Overdue:
		return "overdue"
	default:
		return "open"
	}
}

var progressHeader = table.Row{"ID", "Ref", "Plate", "Created", "Estimate", "ETA", "Worked", "Paused", "Remaining", "Status"}

func (a *App) progressRow(p *services.WorkOrderProgress) table.Row {
	w := p.WorkOrder
	return table.Row{
		w.ID,
		w.ShortReference(),
		w.Plate,
		a.formatTime(w.CreatedAt),
		fmt.Sprintf("%.2fh", w.EstimatedHours),
		a.formatTime(w.EstimatedCompletion),
		domain.FormatMinutes(p.WorkedMinutes),
		domain.FormatMinutes(p.PausedMinutes),
		domain.FormatMinutes(p.RemainingMinutes),
		statusLabel(p),
	}
}

func (a *App) renderProgress(rows []*services.WorkOrderProgress) {
	if len(rows) == 0 {
		a.printf("No work orders found\n")
		return
	}
	t := newTable(a.out, progressHeader)
	for _, p := range rows {
		t.AppendRow(a.progressRow(p))
	}
	t.Render()
}

func (a *App) renderPauses(pauses []*services.PauseSession) {
	if len(pauses) == 0 {
		a.printf("No pauses recorded\n")
		return
	}
	t := newTable(a.out, table.Row{"ID", "Start", "End", "Working time", "Reason"})
	for _, s := range pauses {
		t.AppendRow(table.Row{
			s.Pause.ID,
			a.formatTime(s.Pause.StartTime),
			a.formatTimePtr(s.Pause.EndTime, domain.RunningLabel),
			s.Duration,
			s.Pause.Reason,
		})
	}
	t.Render()
}
