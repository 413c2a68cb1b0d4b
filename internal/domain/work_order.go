package domain

import (
	"time"

	"github.com/google/uuid"
)

// WorkOrder is a job on a vehicle whose completion is estimated in working
// hours from the moment it is opened.
// This is a pure domain model without database-specific concerns.
type WorkOrder struct {
	ID                  int64
	Reference           string
	Plate               string
	Description         string
	CreatedAt           time.Time
	EstimatedHours      float64
	EstimatedCompletion time.Time
	ActualCompletion    *time.Time
}

// NewWorkOrder creates an open work order with a fresh public reference.
// The estimated completion is filled in by the caller.
func NewWorkOrder(plate, description string, createdAt time.Time, estimatedHours float64) WorkOrder {
	return WorkOrder{
		Reference:      uuid.NewString(),
		Plate:          plate,
		Description:    description,
		CreatedAt:      createdAt,
		EstimatedHours: estimatedHours,
	}
}

// IsOpen returns true until the work order is completed.
func (w WorkOrder) IsOpen() bool {
	return w.ActualCompletion == nil
}

// Complete records the actual completion time.
func (w WorkOrder) Complete(at time.Time) WorkOrder {
	w.ActualCompletion = &at
	return w
}

// IsOverdue reports whether the work order finished after its estimate, or is
// still open past it at now.
func (w WorkOrder) IsOverdue(now time.Time) bool {
	if w.ActualCompletion != nil {
		return w.ActualCompletion.After(w.EstimatedCompletion)
	}
	return now.After(w.EstimatedCompletion)
}

// IsValid checks if the work order has valid data.
func (w WorkOrder) IsValid() bool {
	if w.Plate == "" || w.Reference == "" {
		return false
	}
	if w.CreatedAt.IsZero() || w.EstimatedHours <= 0 {
		return false
	}
	if w.ActualCompletion != nil && w.ActualCompletion.Before(w.CreatedAt) {
		return false
	}
	return true
}

// String returns the plate and reference for display purposes.
func (w WorkOrder) String() string {
	return w.Plate + " (" + w.ShortReference() + ")"
}

// ShortReference returns the first block of the reference.
func (w WorkOrder) ShortReference() string {
	if len(w.Reference) < 8 {
		return w.Reference
	}
	return w.Reference[:8]
}
