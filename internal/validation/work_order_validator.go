package validation

import (
	"fmt"
	"strings"
	"time"

	"fleet-workhours/internal/domain"

	"github.com/google/uuid"
)

// WorkOrderValidator provides validation for work order operations
type WorkOrderValidator struct {
	validator *Validator
}

// NewWorkOrderValidator creates a new work order validator
func NewWorkOrderValidator(v *Validator) *WorkOrderValidator {
	if v == nil {
		v = NewValidator()
	}
	return &WorkOrderValidator{validator: v}
}

// ValidateForCreation validates the inputs of a new work order. The plate is
// expected in normalised form.
func (wv *WorkOrderValidator) ValidateForCreation(plate, description string, createdAt time.Time, estimatedHours float64) error {
	ve := NewValidationError()

	if !wv.validator.IsNonEmptyString(plate) {
		ve.AddRequiredError("plate")
	} else if !wv.validator.IsValidPlate(plate) {
		ve.AddInvalidFormatError("plate", plate, "letters, digits, spaces and hyphens, at most 15 characters")
	}

	if !wv.validator.IsValidStringLength(description, maxDescriptionLength) {
		ve.AddInvalidLengthError("description", description, maxDescriptionLength)
	}

	if createdAt.IsZero() {
		ve.AddRequiredError("created_at")
	} else if !wv.validator.IsReasonableDate(createdAt) {
		ve.AddInvalidValueError("created_at", createdAt, "must be within reasonable date range")
	}

	if !wv.validator.IsValidEstimate(estimatedHours) {
		ve.AddInvalidValueError("estimated_hours", estimatedHours,
			fmt.Sprintf("must be greater than 0 and at most %g", wv.validator.MaxEstimateHours()))
	}

	return ve.orNil()
}

// ValidateCompletion checks that a work order can be completed at the given time
func (wv *WorkOrderValidator) ValidateCompletion(w domain.WorkOrder, at time.Time) error {
	ve := NewValidationError()

	if !w.IsValid() {
		ve.AddInvalidValueError("work_order", w.Reference, "fails basic validation")
	}
	if !w.IsOpen() {
		ve.AddInvalidValueError("work_order", w.Reference, "is already completed")
	}
	if at.IsZero() {
		ve.AddRequiredError("completed_at")
	} else if !wv.validator.IsValidTimeRange(w.CreatedAt, &at) {
		ve.AddInvalidRangeError("completed_at", at, "completion cannot be earlier than creation")
	}

	return ve.orNil()
}

// ValidateWorkOrderID validates a work order ID
func (wv *WorkOrderValidator) ValidateWorkOrderID(id int64) error {
	if !wv.validator.IsValidID(id) {
		ve := NewValidationError()
		ve.AddInvalidValueError("work_order_id", id, "must be a positive integer")
		return ve.orNil()
	}
	return nil
}

// ValidateReference validates a public work order reference
func (wv *WorkOrderValidator) ValidateReference(reference string) error {
	if _, err := uuid.Parse(strings.TrimSpace(reference)); err != nil {
		ve := NewValidationError()
		ve.AddInvalidFormatError("reference", reference, "UUID")
		return ve.orNil()
	}
	return nil
}

// ValidateFilter validates work order listing options
func (wv *WorkOrderValidator) ValidateFilter(f domain.WorkOrderFilter) error {
	ve := NewValidationError()

	if f.Limit < 0 {
		ve.AddInvalidValueError("limit", f.Limit, "must not be negative")
	}
	if f.Plate != nil && !wv.validator.IsNonEmptyString(*f.Plate) {
		ve.AddInvalidValueError("plate", *f.Plate, "must not be empty")
	}

	return ve.orNil()
}
