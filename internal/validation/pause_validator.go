package validation

import (
	"time"

	"fleet-workhours/internal/domain"
)

// PauseValidator provides validation for pause operations
type PauseValidator struct {
	validator *Validator
}

// NewPauseValidator creates a new pause validator
func NewPauseValidator(v *Validator) *PauseValidator {
	if v == nil {
		v = NewValidator()
	}
	return &PauseValidator{validator: v}
}

// ValidateForStart validates a pause about to be opened on w
func (pv *PauseValidator) ValidateForStart(w domain.WorkOrder, reason string, start time.Time) error {
	ve := NewValidationError()

	if !w.IsOpen() {
		ve.AddInvalidValueError("work_order", w.Reference, "is already completed")
	}
	if !pv.validator.IsValidStringLength(reason, maxReasonLength) {
		ve.AddInvalidLengthError("reason", reason, maxReasonLength)
	}
	if start.IsZero() {
		ve.AddRequiredError("start_time")
	} else if !pv.validator.IsValidTimeRange(w.CreatedAt, &start) {
		ve.AddInvalidRangeError("start_time", start, "pause cannot start before the work order was created")
	}

	return ve.orNil()
}

// ValidateStop validates closing pause p at end
func (pv *PauseValidator) ValidateStop(p domain.Pause, end time.Time) error {
	ve := NewValidationError()

	if !p.IsValid() {
		ve.AddInvalidValueError("pause", p.ID, "fails basic validation")
	}
	if !p.IsActive() {
		ve.AddInvalidValueError("pause", p.ID, "is already stopped")
	}
	if end.IsZero() {
		ve.AddRequiredError("end_time")
	} else if !pv.validator.IsValidTimeRange(p.StartTime, &end) {
		ve.AddInvalidRangeError("end_time", end, "end time must not be before start time")
	}

	return ve.orNil()
}
