package services

import (
	"context"

	"fleet-workhours/internal/domain"
	"fleet-workhours/internal/logging"
	"fleet-workhours/internal/repository/sqlstore"
	"fleet-workhours/internal/workhours"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultReportConcurrency bounds concurrent pause loading while building a report
	DefaultReportConcurrency = 4
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	repo             sqlstore.Repository
	calc             workhours.Calculator
	clock            Clock
	workOrderService WorkOrderService
	mapper           *domain.Mapper
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(repo sqlstore.Repository, calc workhours.Calculator, workOrderService WorkOrderService, clock Clock) ReportingService {
	return &reportingServiceImpl{
		repo:             repo,
		calc:             calc,
		clock:            clock,
		workOrderService: workOrderService,
		mapper:           domain.NewMapper(),
	}
}

// BuildReport summarises the work orders matching filter. Pauses are loaded
// concurrently, one work order per goroutine.
func (r *reportingServiceImpl) BuildReport(ctx context.Context, filter domain.WorkOrderFilter) (*Report, error) {
	orders, err := r.workOrderService.ListWorkOrders(ctx, filter)
	if err != nil {
		return nil, err
	}

	pauses := make([][]*domain.Pause, len(orders))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultReportConcurrency)
	for i, w := range orders {
		i, w := i, w
		g.Go(func() error {
			rows, err := r.repo.ListPauses(gctx, w.ID)
			if err != nil {
				return err
			}
			pauses[i] = r.mapper.Pause.FromDatabaseSlice(rows)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := r.clock.now()
	report := &Report{
		GeneratedAt: now,
		Total:       len(orders),
		Rows:        make([]*WorkOrderProgress, 0, len(orders)),
	}

	var allPauses []*domain.Pause
	var worked, paused int64
	for i, w := range orders {
		progress := computeProgress(r.calc, w, pauses[i], now)
		report.Rows = append(report.Rows, progress)
		allPauses = append(allPauses, pauses[i]...)

		if w.IsOpen() {
			report.Open++
		} else {
			report.Completed++
		}
		if progress.Overdue {
			report.Overdue++
		}
		report.EstimatedHours += w.EstimatedHours
		worked += progress.WorkedMinutes
		paused += progress.PausedMinutes
	}

	report.WorkedHours = workhours.HoursFromMinutes(worked)
	report.PausedHours = workhours.HoursFromMinutes(paused)
	report.PauseStatistics = r.CalculatePauseStatistics(allPauses)

	logging.Debugf("report built: %d work orders, %d pauses\n", report.Total, len(allPauses))
	return report, nil
}

// CalculatePauseStatistics summarises the stopped pauses; active pauses are
// not yet measurable and are skipped.
func (r *reportingServiceImpl) CalculatePauseStatistics(pauses []*domain.Pause) PauseStatistics {
	var result PauseStatistics
	var data stats.Float64Data
	for _, p := range pauses {
		if p.IsActive() {
			continue
		}
		data = append(data, float64(p.Minutes()))
		result.TotalMinutes += p.Minutes()
	}

	result.Count = len(data)
	if result.Count == 0 {
		return result
	}

	result.MeanMinutes, _ = stats.Mean(data)
	result.MedianMinutes, _ = stats.Median(data)
	result.P90Minutes, _ = stats.Percentile(data, 90)
	result.MaxMinutes, _ = stats.Max(data)
	return result
}
