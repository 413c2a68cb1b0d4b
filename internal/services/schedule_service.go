package services

import (
	"context"
	"sort"
	"time"

	"fleet-workhours/internal/domain"
	"fleet-workhours/internal/errors"
	"fleet-workhours/internal/repository/sqlstore"
	"fleet-workhours/internal/validation"
	"fleet-workhours/internal/workhours"
)

// scheduleServiceImpl implements the ScheduleService interface
type scheduleServiceImpl struct {
	repo      sqlstore.Repository
	calc      workhours.Calculator
	mapper    *domain.Mapper
	validator *validation.Validator
}

// NewScheduleService creates a new ScheduleService instance
func NewScheduleService(repo sqlstore.Repository, calc workhours.Calculator, v *validation.Validator) ScheduleService {
	if v == nil {
		v = validation.NewValidator()
	}
	return &scheduleServiceImpl{
		repo:      repo,
		calc:      calc,
		mapper:    domain.NewMapper(),
		validator: v,
	}
}

// CheckSlot computes the slot [start, completion of hours] and lists the open
// work orders whose estimated interval shares working time with it, largest
// overlap first.
func (s *scheduleServiceImpl) CheckSlot(ctx context.Context, start time.Time, hours float64) (*ScheduleCheck, error) {
	if start.IsZero() {
		return nil, errors.NewInvalidInputError("start", start, "is required")
	}
	if !s.validator.IsValidEstimate(hours) {
		return nil, errors.NewInvalidInputError("hours", hours, "must be greater than 0 and within the estimate limit")
	}

	end := s.calc.CompletionMinutes(start, workhours.MinutesFromHours(hours))
	check := &ScheduleCheck{
		Start:     start,
		End:       end,
		Hours:     hours,
		Conflicts: []*ScheduleConflict{},
	}

	rows, err := s.repo.ListWorkOrders(ctx, sqlstore.ListOptions{OpenOnly: true})
	if err != nil {
		return nil, err
	}

	for _, w := range s.mapper.WorkOrder.FromDatabaseSlice(rows) {
		overlap := s.OverlapMinutes(start, end, w.CreatedAt, w.EstimatedCompletion)
		if overlap <= 0 {
			continue
		}
		check.Conflicts = append(check.Conflicts, &ScheduleConflict{
			WorkOrder:      w,
			OverlapMinutes: overlap,
			Overlap:        domain.FormatMinutes(overlap),
		})
	}

	sort.SliceStable(check.Conflicts, func(i, j int) bool {
		return check.Conflicts[i].OverlapMinutes > check.Conflicts[j].OverlapMinutes
	})
	return check, nil
}

// OverlapMinutes returns the working minutes shared by [aStart, aEnd] and
// [bStart, bEnd], zero when they are disjoint.
func (s *scheduleServiceImpl) OverlapMinutes(aStart, aEnd, bStart, bEnd time.Time) int64 {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return s.calc.ElapsedMinutes(start, end)
}
