package services

import (
	"context"
	"strings"
	"time"

	"fleet-workhours/internal/domain"
	"fleet-workhours/internal/errors"
	"fleet-workhours/internal/logging"
	"fleet-workhours/internal/repository/sqlstore"
	"fleet-workhours/internal/validation"
	"fleet-workhours/internal/workhours"
)

// workOrderServiceImpl implements the WorkOrderService interface
type workOrderServiceImpl struct {
	repo      sqlstore.Repository
	calc      workhours.Calculator
	clock     Clock
	mapper    *domain.Mapper
	validator *validation.Validator
	orders    *validation.WorkOrderValidator
}

// NewWorkOrderService creates a new WorkOrderService instance
func NewWorkOrderService(repo sqlstore.Repository, calc workhours.Calculator, v *validation.Validator, clock Clock) WorkOrderService {
	if v == nil {
		v = validation.NewValidator()
	}
	return &workOrderServiceImpl{
		repo:      repo,
		calc:      calc,
		clock:     clock,
		mapper:    domain.NewMapper(),
		validator: v,
		orders:    validation.NewWorkOrderValidator(v),
	}
}

// CreateWorkOrder opens a work order and sets its estimated completion from
// the working calendar. A zero createdAt means now.
func (s *workOrderServiceImpl) CreateWorkOrder(ctx context.Context, plate, description string, createdAt time.Time, estimatedHours float64) (*domain.WorkOrder, error) {
	if createdAt.IsZero() {
		createdAt = s.clock.now()
	}
	plate = s.validator.NormalisePlate(plate)
	description = strings.TrimSpace(description)

	if err := s.orders.ValidateForCreation(plate, description, createdAt, estimatedHours); err != nil {
		return nil, err
	}

	w := domain.NewWorkOrder(plate, description, createdAt, estimatedHours)
	w.EstimatedCompletion = s.completion(createdAt, estimatedHours)

	row := s.mapper.WorkOrder.ToDatabase(w)
	if err := s.repo.CreateWorkOrder(ctx, &row); err != nil {
		return nil, err
	}

	logging.Debugf("work order %d created: %.2fh from %s due %s\n", row.ID, estimatedHours,
		createdAt.Format(time.RFC3339), w.EstimatedCompletion.Format(time.RFC3339))

	created := s.mapper.WorkOrder.FromDatabase(row)
	return &created, nil
}

// GetWorkOrder retrieves a work order by its ID
func (s *workOrderServiceImpl) GetWorkOrder(ctx context.Context, id int64) (*domain.WorkOrder, error) {
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

// GetWorkOrderByReference retrieves a work order by its public reference
func (s *workOrderServiceImpl) GetWorkOrderByReference(ctx context.Context, reference string) (*domain.WorkOrder, error) {
	if err := s.orders.ValidateReference(reference); err != nil {
		return nil, err
	}

	row, err := s.repo.GetWorkOrderByReference(ctx, strings.ToLower(strings.TrimSpace(reference)))
	if err != nil {
		return nil, err
	}

	w := s.mapper.WorkOrder.FromDatabase(*row)
	return &w, nil
}

// ListWorkOrders lists work orders matching filter
func (s *workOrderServiceImpl) ListWorkOrders(ctx context.Context, filter domain.WorkOrderFilter) ([]*domain.WorkOrder, error) {
	if err := s.orders.ValidateFilter(filter); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListWorkOrders(ctx, s.mapper.Filter.ToDatabase(filter))
	if err != nil {
		return nil, err
	}
	return s.mapper.WorkOrder.FromDatabaseSlice(rows), nil
}

// UpdateEstimate replaces the estimate of an open work order and recomputes
// its estimated completion from the creation time.
func (s *workOrderServiceImpl) UpdateEstimate(ctx context.Context, id int64, estimatedHours float64) (*domain.WorkOrder, error) {
	w, err := s.GetWorkOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !w.IsOpen() {
		return nil, errors.NewConflictError("work order", "a completed work order cannot be re-estimated")
	}
	if err := s.orders.ValidateForCreation(w.Plate, w.Description, w.CreatedAt, estimatedHours); err != nil {
		return nil, err
	}

	w.EstimatedHours = estimatedHours
	w.EstimatedCompletion = s.completion(w.CreatedAt, estimatedHours)

	row := s.mapper.WorkOrder.ToDatabase(*w)
	if err := s.repo.UpdateWorkOrder(ctx, &row); err != nil {
		return nil, err
	}
	return w, nil
}

// CompleteWorkOrder records the completion of a work order. A zero at means
// now. An active pause is closed at the same moment.
func (s *workOrderServiceImpl) CompleteWorkOrder(ctx context.Context, id int64, at time.Time) (*domain.WorkOrder, error) {
	if at.IsZero() {
		at = s.clock.now()
	}

	w, err := s.GetWorkOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.orders.ValidateCompletion(*w, at); err != nil {
		return nil, err
	}

	stopped, err := s.stopActivePause(ctx, id, at)
	if err != nil {
		return nil, err
	}

	completed := w.Complete(at)
	row := s.mapper.WorkOrder.ToDatabase(completed)
	if err := s.repo.CompleteWorkOrder(ctx, &row, stopped); err != nil {
		return nil, err
	}

	logging.Debugf("work order %d completed at %s (overdue: %v)\n", id, at.Format(time.RFC3339), completed.IsOverdue(at))
	return &completed, nil
}

// stopActivePause returns the active pause of a work order stopped at at, or
// nil when there is none. Nothing is written.
func (s *workOrderServiceImpl) stopActivePause(ctx context.Context, workOrderID int64, at time.Time) (*sqlstore.Pause, error) {
	row, err := s.repo.GetActivePause(ctx, workOrderID)
	if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	pause := s.mapper.Pause.FromDatabase(*row)
	if at.Before(pause.StartTime) {
		return nil, errors.NewValidationError("completion cannot be earlier than the active pause", nil)
	}
	stopped := pause.Stop(at, s.calc.ElapsedMinutes(pause.StartTime, at))
	updated := s.mapper.Pause.ToDatabase(stopped)
	return &updated, nil
}

// DeleteWorkOrder deletes a work order and its pauses
func (s *workOrderServiceImpl) DeleteWorkOrder(ctx context.Context, id int64) error {
	if err := s.orders.ValidateWorkOrderID(id); err != nil {
		return err
	}
	return s.repo.DeleteWorkOrder(ctx, id)
}

// GetProgress reports worked, paused and remaining working time
func (s *workOrderServiceImpl) GetProgress(ctx context.Context, id int64) (*WorkOrderProgress, error) {
	w, err := s.GetWorkOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListPauses(ctx, id)
	if err != nil {
		return nil, err
	}

	return computeProgress(s.calc, w, s.mapper.Pause.FromDatabaseSlice(rows), s.clock.now()), nil
}

// ListOverdue lists work orders that finished late or are open past their estimate
func (s *workOrderServiceImpl) ListOverdue(ctx context.Context) ([]*domain.WorkOrder, error) {
	all, err := s.ListWorkOrders(ctx, domain.WorkOrderFilter{})
	if err != nil {
		return nil, err
	}

	now := s.clock.now()
	var overdue []*domain.WorkOrder
	for _, w := range all {
		if w.IsOverdue(now) {
			overdue = append(overdue, w)
		}
	}
	return overdue, nil
}

func (s *workOrderServiceImpl) completion(start time.Time, hours float64) time.Time {
	return s.calc.CompletionMinutes(start, workhours.MinutesFromHours(hours))
}
