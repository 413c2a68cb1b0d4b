package services

import (
	"context"
	"testing"
	"time"

	"fleet-workhours/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stoppedPause(minutes int64) *domain.Pause {
	start := ts(7, 10, 0)
	p := domain.NewPause(1, "", start).Stop(start.Add(time.Duration(minutes)*time.Minute), minutes)
	return &p
}

func TestReportingService_CalculatePauseStatistics(t *testing.T) {
	env := setupServices(t, nil)
	svc := env.container.ReportingService

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, PauseStatistics{}, svc.CalculatePauseStatistics(nil))
	})

	t.Run("active pauses are skipped", func(t *testing.T) {
		active := domain.NewPause(1, "", ts(7, 10, 0))
		got := svc.CalculatePauseStatistics([]*domain.Pause{&active})
		assert.Equal(t, 0, got.Count)
	})

	t.Run("ten pauses", func(t *testing.T) {
		var pauses []*domain.Pause
		for m := int64(10); m <= 100; m += 10 {
			pauses = append(pauses, stoppedPause(m))
		}

		got := svc.CalculatePauseStatistics(pauses)

		assert.Equal(t, 10, got.Count)
		assert.Equal(t, int64(550), got.TotalMinutes)
		assert.InDelta(t, 55, got.MeanMinutes, 1e-9)
		assert.InDelta(t, 55, got.MedianMinutes, 1e-9)
		assert.InDelta(t, 90, got.P90Minutes, 1e-9)
		assert.InDelta(t, 100, got.MaxMinutes, 1e-9)
	})

	t.Run("single pause", func(t *testing.T) {
		got := svc.CalculatePauseStatistics([]*domain.Pause{stoppedPause(42)})
		assert.Equal(t, 1, got.Count)
		assert.InDelta(t, 42, got.MeanMinutes, 1e-9)
		assert.InDelta(t, 42, got.P90Minutes, 1e-9)
	})
}

func TestReportingService_BuildReport(t *testing.T) {
	env := setupServices(t, nil)
	ctx := context.Background()
	orders := env.container.WorkOrderService
	pauses := env.container.PauseService

	// Open, on track, two stopped pauses (30m and 60m).
	a, err := orders.CreateWorkOrder(ctx, "AAA", "", ts(7, 9, 0), 8)
	require.NoError(t, err)
	_, err = pauses.StartPause(ctx, a.ID, "", ts(7, 9, 30))
	require.NoError(t, err)
	_, err = pauses.StopPause(ctx, a.ID, ts(7, 10, 0))
	require.NoError(t, err)
	_, err = pauses.StartPause(ctx, a.ID, "", ts(7, 10, 30))
	require.NoError(t, err)
	_, err = pauses.StopPause(ctx, a.ID, ts(7, 11, 30))
	require.NoError(t, err)

	// Completed late.
	b, err := orders.CreateWorkOrder(ctx, "BBB", "", ts(7, 9, 0), 1)
	require.NoError(t, err)
	_, err = orders.CompleteWorkOrder(ctx, b.ID, ts(7, 11, 0))
	require.NoError(t, err)

	// Open with an active pause.
	c, err := orders.CreateWorkOrder(ctx, "CCC", "", ts(7, 9, 0), 2)
	require.NoError(t, err)
	_, err = pauses.StartPause(ctx, c.ID, "", ts(7, 11, 0))
	require.NoError(t, err)

	env.clock.now = ts(7, 12, 0)
	report, err := env.container.ReportingService.BuildReport(ctx, domain.WorkOrderFilter{})
	require.NoError(t, err)

	assert.True(t, report.GeneratedAt.Equal(ts(7, 12, 0)))
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Open)
	assert.Equal(t, 1, report.Completed)
	assert.Equal(t, 2, report.Overdue, "BBB finished late and CCC is open past 11:00")
	assert.InDelta(t, 11, report.EstimatedHours, 1e-9)

	require.Len(t, report.Rows, 3)
	assert.Equal(t, int64(90), report.Rows[0].PausedMinutes)
	assert.Equal(t, int64(90), report.Rows[0].WorkedMinutes)
	assert.Equal(t, int64(120), report.Rows[1].WorkedMinutes)
	assert.Equal(t, int64(60), report.Rows[2].PausedMinutes)
	assert.NotNil(t, report.Rows[2].ActivePause)

	// Paused: 90 (AAA) + 60 (CCC active). Worked: 90 + 120 + 120.
	assert.InDelta(t, 2.5, report.PausedHours, 1e-9)
	assert.InDelta(t, 5.5, report.WorkedHours, 1e-9)

	assert.Equal(t, 2, report.PauseStatistics.Count)
	assert.Equal(t, int64(90), report.PauseStatistics.TotalMinutes)
	assert.InDelta(t, 45, report.PauseStatistics.MeanMinutes, 1e-9)
	assert.InDelta(t, 60, report.PauseStatistics.MaxMinutes, 1e-9)
}

func TestReportingService_BuildReportFiltered(t *testing.T) {
	env := setupServices(t, nil)
	ctx := context.Background()

	_, err := env.container.WorkOrderService.CreateWorkOrder(ctx, "AB-1", "", ts(7, 9, 0), 1)
	require.NoError(t, err)
	_, err = env.container.WorkOrderService.CreateWorkOrder(ctx, "XY-2", "", ts(7, 9, 0), 1)
	require.NoError(t, err)

	plate := "xy"
	report, err := env.container.ReportingService.BuildReport(ctx, domain.WorkOrderFilter{Plate: &plate})
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "XY-2", report.Rows[0].WorkOrder.Plate)

	empty, err := env.container.ReportingService.BuildReport(ctx, domain.WorkOrderFilter{Plate: ptrString("none")})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Total)
	assert.Empty(t, empty.Rows)
}

func ptrString(s string) *string {
	return &s
}
