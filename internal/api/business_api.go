package api

import (
	"context"
	"strconv"
	"strings"
	"time"

	"fleet-workhours/internal/domain"
	"fleet-workhours/internal/errors"
	"fleet-workhours/internal/services"
	"fleet-workhours/internal/validation"
	"fleet-workhours/internal/workhours"
)

// WorkOrderDetail is a work order's progress together with its pauses
type WorkOrderDetail struct {
	*services.WorkOrderProgress
	Pauses []*services.PauseSession `json:"pauses"`
}

// BusinessAPI defines the workshop workflows consumed by the CLI and HTTP layers.
// Work orders are addressed by key: a numeric ID or the full reference.
type BusinessAPI interface {
	CalculatorAPI

	// ========== Work Order Workflows ==========

	// OpenWorkOrder registers a vehicle with its estimate; a zero createdAt means now
	OpenWorkOrder(ctx context.Context, plate, description string, createdAt time.Time, estimatedHours float64) (*services.WorkOrderProgress, error)

	// ReviseEstimate changes the estimate of an open work order and recomputes its ETA
	ReviseEstimate(ctx context.Context, key string, estimatedHours float64) (*services.WorkOrderProgress, error)

	// CloseWorkOrder completes a work order, stopping any active pause
	CloseWorkOrder(ctx context.Context, key string, at time.Time) (*services.WorkOrderProgress, error)

	// DeleteWorkOrder removes a work order with its pauses
	DeleteWorkOrder(ctx context.Context, key string) error

	// ========== Query Operations ==========

	// GetWorkOrder returns a single work order by key
	GetWorkOrder(ctx context.Context, key string) (*domain.WorkOrder, error)

	// GetWorkOrderDetail returns progress and pause history for a work order
	GetWorkOrderDetail(ctx context.Context, key string) (*WorkOrderDetail, error)

	// ListProgress returns the progress of every work order matching filter
	ListProgress(ctx context.Context, filter domain.WorkOrderFilter) ([]*services.WorkOrderProgress, error)

	// ListOverdue returns open work orders past their ETA
	ListOverdue(ctx context.Context) ([]*domain.WorkOrder, error)

	// ========== Pause Workflows ==========

	StartPause(ctx context.Context, key, reason string, at time.Time) (*services.PauseSession, error)
	StopPause(ctx context.Context, key string, at time.Time) (*services.PauseSession, error)
	ListPauses(ctx context.Context, key string) ([]*services.PauseSession, error)

	// ========== Scheduling and Reporting ==========

	// CheckSchedule lists open work orders overlapping a job of hours starting at start
	CheckSchedule(ctx context.Context, start time.Time, hours float64) (*services.ScheduleCheck, error)

	// BuildReport summarises the work orders matching filter
	BuildReport(ctx context.Context, filter domain.WorkOrderFilter) (*services.Report, error)
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	CalculatorAPI
	container      *services.ServiceContainer
	orderValidator *validation.WorkOrderValidator
}

// NewBusinessAPI creates a new BusinessAPI instance
func NewBusinessAPI(container *services.ServiceContainer, calc workhours.Calculator, v *validation.Validator) BusinessAPI {
	if v == nil {
		v = validation.NewValidator()
	}
	return &businessAPIImpl{
		CalculatorAPI:  NewCalculatorAPI(calc, WithMaxHours(v.MaxEstimateHours())),
		container:      container,
		orderValidator: validation.NewWorkOrderValidator(v),
	}
}

// resolve turns a key into a work order ID
func (b *businessAPIImpl) resolve(ctx context.Context, key string) (int64, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return 0, errors.NewInvalidInputError("work_order", key, "an ID or reference is required")
	}

	if id, err := strconv.ParseInt(key, 10, 64); err == nil {
		if err := b.orderValidator.ValidateWorkOrderID(id); err != nil {
			return 0, err
		}
		return id, nil
	}

	if err := b.orderValidator.ValidateReference(key); err != nil {
		return 0, err
	}
	w, err := b.container.WorkOrderService.GetWorkOrderByReference(ctx, key)
	if err != nil {
		return 0, err
	}
	return w.ID, nil
}

// ========== Work Order Workflows ==========

func (b *businessAPIImpl) OpenWorkOrder(ctx context.Context, plate, description string, createdAt time.Time, estimatedHours float64) (*services.WorkOrderProgress, error) {
	w, err := b.container.WorkOrderService.CreateWorkOrder(ctx, plate, description, createdAt, estimatedHours)
	if err != nil {
		return nil, err
	}
	return b.container.WorkOrderService.GetProgress(ctx, w.ID)
}

func (b *businessAPIImpl) ReviseEstimate(ctx context.Context, key string, estimatedHours float64) (*services.WorkOrderProgress, error) {
	id, err := b.resolve(ctx, key)
	if err != nil {
		return nil, err
	}
	if _, err := b.container.WorkOrderService.UpdateEstimate(ctx, id, estimatedHours); err != nil {
		return nil, err
	}
	return b.container.WorkOrderService.GetProgress(ctx, id)
}

func (b *businessAPIImpl) CloseWorkOrder(ctx context.Context, key string, at time.Time) (*services.WorkOrderProgress, error) {
	id, err := b.resolve(ctx, key)
	if err != nil {
		return nil, err
	}
	if _, err := b.container.WorkOrderService.CompleteWorkOrder(ctx, id, at); err != nil {
		return nil, err
	}
	return b.container.WorkOrderService.GetProgress(ctx, id)
}

func (b *businessAPIImpl) DeleteWorkOrder(ctx context.Context, key string) error {
	id, err := b.resolve(ctx, key)
	if err != nil {
		return err
	}
	return b.container.WorkOrderService.DeleteWorkOrder(ctx, id)
}

// ========== Query Operations ==========

func (b *businessAPIImpl) GetWorkOrder(ctx context.Context, key string) (*domain.WorkOrder, error) {
	id, err := b.resolve(ctx, key)
	if err != nil {
		return nil, err
	}
	return b.container.WorkOrderService.GetWorkOrder(ctx, id)
}

func (b *businessAPIImpl) GetWorkOrderDetail(ctx context.Context, key string) (*WorkOrderDetail, error) {
	id, err := b.resolve(ctx, key)
	if err != nil {
		return nil, err
	}

	progress, err := b.container.WorkOrderService.GetProgress(ctx, id)
	if err != nil {
		return nil, err
	}
	pauses, err := b.container.PauseService.ListPauses(ctx, id)
	if err != nil {
		return nil, err
	}
	return &WorkOrderDetail{WorkOrderProgress: progress, Pauses: pauses}, nil
}

func (b *businessAPIImpl) ListProgress(ctx context.Context, filter domain.WorkOrderFilter) ([]*services.WorkOrderProgress, error) {
	report, err := b.container.ReportingService.BuildReport(ctx, filter)
	if err != nil {
		return nil, err
	}
	return report.Rows, nil
}

func (b *businessAPIImpl) ListOverdue(ctx context.Context) ([]*domain.WorkOrder, error) {
	return b.container.WorkOrderService.ListOverdue(ctx)
}

// ========== Pause Workflows ==========

func (b *businessAPIImpl) StartPause(ctx context.Context, key, reason string, at time.Time) (*services.PauseSession, error) {
	id, err := b.resolve(ctx, key)
	if err != nil {
		return nil, err
	}
	pause, err := b.container.PauseService.StartPause(ctx, id, reason, at)
	if err != nil {
		return nil, err
	}
	return b.container.PauseService.Session(pause), nil
}

func (b *businessAPIImpl) StopPause(ctx context.Context, key string, at time.Time) (*services.PauseSession, error) {
	id, err := b.resolve(ctx, key)
	if err != nil {
		return nil, err
	}
	return b.container.PauseService.StopPause(ctx, id, at)
}

func (b *businessAPIImpl) ListPauses(ctx context.Context, key string) ([]*services.PauseSession, error) {
	id, err := b.resolve(ctx, key)
	if err != nil {
		return nil, err
	}
	return b.container.PauseService.ListPauses(ctx, id)
}

// ========== Scheduling and Reporting ==========

func (b *businessAPIImpl) CheckSchedule(ctx context.Context, start time.Time, hours float64) (*services.ScheduleCheck, error) {
	return b.container.ScheduleService.CheckSlot(ctx, start, hours)
}

func (b *businessAPIImpl) BuildReport(ctx context.Context, filter domain.WorkOrderFilter) (*services.Report, error) {
	return b.container.ReportingService.BuildReport(ctx, filter)
}
