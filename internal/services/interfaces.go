package services

import (
	"context"
	"time"

	"fleet-workhours/internal/domain"
)

// Clock returns the current time. Services take one so tests can pin "now".
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// WorkOrderProgress is the working-time position of a work order at a moment:
// the completion time for closed orders, otherwise now.
type WorkOrderProgress struct {
	WorkOrder           *domain.WorkOrder `json:"work_order"`
	AsOf                time.Time         `json:"as_of"`
	EstimatedMinutes    int64             `json:"estimated_minutes"`
	ElapsedMinutes      int64             `json:"elapsed_minutes"`
	PausedMinutes       int64             `json:"paused_minutes"`
	WorkedMinutes       int64             `json:"worked_minutes"`
	RemainingMinutes    int64             `json:"remaining_minutes"`
	PercentComplete     float64           `json:"percent_complete"`
	PauseCount          int               `json:"pause_count"`
	ActivePause         *domain.Pause     `json:"active_pause,omitempty"`
	Overdue             bool              `json:"overdue"`
	ProjectedCompletion time.Time         `json:"projected_completion"`
}

// PauseSession is a pause with its working duration resolved
type PauseSession struct {
	Pause    *domain.Pause `json:"pause"`
	Minutes  int64         `json:"minutes"`
	Duration string        `json:"duration"` // "Xh Ym", or running
}

// ScheduleConflict is an open work order overlapping a candidate slot
type ScheduleConflict struct {
	WorkOrder      *domain.WorkOrder `json:"work_order"`
	OverlapMinutes int64             `json:"overlap_minutes"`
	Overlap        string            `json:"overlap"`
}

// ScheduleCheck is the outcome of checking a candidate slot
type ScheduleCheck struct {
	Start     time.Time           `json:"start"`
	End       time.Time           `json:"end"`
	Hours     float64             `json:"hours"`
	Conflicts []*ScheduleConflict `json:"conflicts"`
}

// PauseStatistics summarises stopped pause lengths in working minutes
type PauseStatistics struct {
	Count         int     `json:"count"`
	TotalMinutes  int64   `json:"total_minutes"`
	MeanMinutes   float64 `json:"mean_minutes"`
	MedianMinutes float64 `json:"median_minutes"`
	P90Minutes    float64 `json:"p90_minutes"`
	MaxMinutes    float64 `json:"max_minutes"`
}

// Report is a summary across work orders
type Report struct {
	GeneratedAt     time.Time            `json:"generated_at"`
	Total           int                  `json:"total"`
	Open            int                  `json:"open"`
	Completed       int                  `json:"completed"`
	Overdue         int                  `json:"overdue"`
	EstimatedHours  float64              `json:"estimated_hours"`
	WorkedHours     float64              `json:"worked_hours"`
	PausedHours     float64              `json:"paused_hours"`
	PauseStatistics PauseStatistics      `json:"pause_statistics"`
	Rows            []*WorkOrderProgress `json:"rows"`
}

// WorkOrderService handles the work order lifecycle and ETA calculations
type WorkOrderService interface {
	CreateWorkOrder(ctx context.Context, plate, description string, createdAt time.Time, estimatedHours float64) (*domain.WorkOrder, error)
	GetWorkOrder(ctx context.Context, id int64) (*domain.WorkOrder, error)
	GetWorkOrderByReference(ctx context.Context, reference string) (*domain.WorkOrder, error)
	ListWorkOrders(ctx context.Context, filter domain.WorkOrderFilter) ([]*domain.WorkOrder, error)
	UpdateEstimate(ctx context.Context, id int64, estimatedHours float64) (*domain.WorkOrder, error)
	CompleteWorkOrder(ctx context.Context, id int64, at time.Time) (*domain.WorkOrder, error)
	DeleteWorkOrder(ctx context.Context, id int64) error

	GetProgress(ctx context.Context, id int64) (*WorkOrderProgress, error)
	ListOverdue(ctx context.Context) ([]*domain.WorkOrder, error)
}

// PauseService handles pauses on work orders
type PauseService interface {
	StartPause(ctx context.Context, workOrderID int64, reason string, at time.Time) (*domain.Pause, error)
	StopPause(ctx context.Context, workOrderID int64, at time.Time) (*PauseSession, error)
	GetActivePause(ctx context.Context, workOrderID int64) (*PauseSession, error)
	ListPauses(ctx context.Context, workOrderID int64) ([]*PauseSession, error)

	// Session resolves a pause's working minutes, measuring an active one up to now
	Session(p *domain.Pause) *PauseSession
}

// ScheduleService detects overlaps between a planned job and open work orders
type ScheduleService interface {
	CheckSlot(ctx context.Context, start time.Time, hours float64) (*ScheduleCheck, error)
	OverlapMinutes(aStart, aEnd, bStart, bEnd time.Time) int64
}

// ReportingService handles analytics and reporting operations
type ReportingService interface {
	BuildReport(ctx context.Context, filter domain.WorkOrderFilter) (*Report, error)
	CalculatePauseStatistics(pauses []*domain.Pause) PauseStatistics
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	WorkOrderService WorkOrderService
	PauseService     PauseService
	ScheduleService  ScheduleService
	ReportingService ReportingService
}
