package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fleet-workhours/internal/domain"
	"fleet-workhours/internal/errors"
	"fleet-workhours/internal/logging"
	"fleet-workhours/internal/repository/sqlstore"
	"fleet-workhours/internal/validation"
	"fleet-workhours/internal/workhours"
)

// pauseServiceImpl implements the PauseService interface
type pauseServiceImpl struct {
	repo      sqlstore.Repository
	calc      workhours.Calculator
	clock     Clock
	mapper    *domain.Mapper
	orders    *validation.WorkOrderValidator
	validator *validation.PauseValidator
}

// NewPauseService creates a new PauseService instance
func NewPauseService(repo sqlstore.Repository, calc workhours.Calculator, v *validation.Validator, clock Clock) PauseService {
	if v == nil {
		v = validation.NewValidator()
	}
	return &pauseServiceImpl{
		repo:      repo,
		calc:      calc,
		clock:     clock,
		mapper:    domain.NewMapper(),
		orders:    validation.NewWorkOrderValidator(v),
		validator: validation.NewPauseValidator(v),
	}
}

func (s *pauseServiceImpl) getWorkOrder(ctx context.Context, id int64) (*domain.WorkOrder, error) {
	if err := s.orders.ValidateWorkOrderID(id); err != nil {
		return nil, err
	}
	row, err := s.repo.GetWorkOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	w := s.mapper.WorkOrder.FromDatabase(*row)
	return &w, nil
}

// StartPause opens a pause on an open work order. A work order holds at most
// one active pause. A zero at means now.
func (s *pauseServiceImpl) StartPause(ctx context.Context, workOrderID int64, reason string, at time.Time) (*domain.Pause, error) {
	if at.IsZero() {
		at = s.clock.now()
	}
	reason = strings.TrimSpace(reason)

	w, err := s.getWorkOrder(ctx, workOrderID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateForStart(*w, reason, at); err != nil {
		return nil, err
	}

	_, err = s.repo.GetActivePause(ctx, workOrderID)
	if err == nil {
		return nil, errors.NewConflictError("pause", "work order "+w.Plate+" already has an active pause")
	}
	if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil, err
	}
	if err := s.checkAfterStoppedPauses(ctx, w, at); err != nil {
		return nil, err
	}

	pause := domain.NewPause(workOrderID, reason, at)
	row := s.mapper.Pause.ToDatabase(pause)
	if err := s.repo.CreatePause(ctx, &row); err != nil {
		return nil, err
	}

	logging.Debugf("pause %d started on work order %d at %s\n", row.ID, workOrderID, at.Format(time.RFC3339))
	created := s.mapper.Pause.FromDatabase(row)
	return &created, nil
}

// checkAfterStoppedPauses rejects a start inside a stopped pause of w. Pauses
// of one work order never overlap, so their working minutes add up.
func (s *pauseServiceImpl) checkAfterStoppedPauses(ctx context.Context, w *domain.WorkOrder, at time.Time) error {
	rows, err := s.repo.ListPauses(ctx, w.ID)
	if err != nil {
		return err
	}

	var lastEnd time.Time
	for _, p := range s.mapper.Pause.FromDatabaseSlice(rows) {
		if p.EndTime != nil && p.EndTime.After(lastEnd) {
			lastEnd = *p.EndTime
		}
	}
	if at.Before(lastEnd) {
		return errors.NewConflictError("pause",
			fmt.Sprintf("work order %s was already paused until %s", w.Plate, lastEnd.Format(time.RFC3339)))
	}
	return nil
}

// StopPause closes the active pause of a work order, recording the working
// minutes it covered. A zero at means now.
func (s *pauseServiceImpl) StopPause(ctx context.Context, workOrderID int64, at time.Time) (*PauseSession, error) {
	if at.IsZero() {
		at = s.clock.now()
	}
	if err := s.orders.ValidateWorkOrderID(workOrderID); err != nil {
		return nil, err
	}

	row, err := s.repo.GetActivePause(ctx, workOrderID)
	if err != nil {
		return nil, err
	}

	pause := s.mapper.Pause.FromDatabase(*row)
	if err := s.validator.ValidateStop(pause, at); err != nil {
		return nil, err
	}

	stopped := pause.Stop(at, s.calc.ElapsedMinutes(pause.StartTime, at))
	updated := s.mapper.Pause.ToDatabase(stopped)
	if err := s.repo.UpdatePause(ctx, &updated); err != nil {
		return nil, err
	}

	logging.Debugf("pause %d stopped: %d working minutes\n", stopped.ID, stopped.Minutes())
	return s.Session(&stopped), nil
}

// GetActivePause returns the active pause of a work order
func (s *pauseServiceImpl) GetActivePause(ctx context.Context, workOrderID int64) (*PauseSession, error) {
	if err := s.orders.ValidateWorkOrderID(workOrderID); err != nil {
		return nil, err
	}

	row, err := s.repo.GetActivePause(ctx, workOrderID)
	if err != nil {
		return nil, err
	}
	pause := s.mapper.Pause.FromDatabase(*row)
	return s.Session(&pause), nil
}

// ListPauses lists the pauses of a work order
func (s *pauseServiceImpl) ListPauses(ctx context.Context, workOrderID int64) ([]*PauseSession, error) {
	if _, err := s.getWorkOrder(ctx, workOrderID); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListPauses(ctx, workOrderID)
	if err != nil {
		return nil, err
	}

	pauses := s.mapper.Pause.FromDatabaseSlice(rows)
	sessions := make([]*PauseSession, len(pauses))
	for i, p := range pauses {
		sessions[i] = s.Session(p)
	}
	return sessions, nil
}

// Session resolves the working minutes of p. An active pause is measured up
// to now and shown as running.
func (s *pauseServiceImpl) Session(p *domain.Pause) *PauseSession {
	session := &PauseSession{
		Pause:    p,
		Minutes:  p.Minutes(),
		Duration: domain.FormatPauseDuration(*p),
	}
	if p.IsActive() {
		session.Minutes = s.calc.ElapsedMinutes(p.StartTime, s.clock.now())
	}
	return session
}
