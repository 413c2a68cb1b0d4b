package validation

import (
	stderrors "errors"
	"math"
	"testing"
	"time"

	"fleet-workhours/internal/domain"
	"fleet-workhours/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var ve *ValidationError
	require.True(t, stderrors.As(err, &ve), "expected field errors in %v", err)
	var fields []string
	for _, fe := range ve.Errors {
		fields = append(fields, fe.Field)
	}
	return fields
}

func TestWorkOrderValidator_ValidateForCreation(t *testing.T) {
	now := time.Now()
	wv := NewWorkOrderValidator(nil)

	tests := []struct {
		name        string
		plate       string
		description string
		createdAt   time.Time
		hours       float64
		fields      []string
	}{
		{name: "valid", plate: "AB-123-CD", description: "brakes", createdAt: now, hours: 4},
		{name: "missing plate", plate: "", createdAt: now, hours: 4, fields: []string{"plate"}},
		{name: "bad plate", plate: "AB/12", createdAt: now, hours: 4, fields: []string{"plate"}},
		{name: "long description", plate: "AB", description: string(make([]byte, 501)), createdAt: now, hours: 4, fields: []string{"description"}},
		{name: "zero created", plate: "AB", hours: 4, fields: []string{"created_at"}},
		{name: "ancient created", plate: "AB", createdAt: now.AddDate(-20, 0, 0), hours: 4, fields: []string{"created_at"}},
		{name: "zero hours", plate: "AB", createdAt: now, hours: 0, fields: []string{"estimated_hours"}},
		{name: "nan hours", plate: "AB", createdAt: now, hours: math.NaN(), fields: []string{"estimated_hours"}},
		{name: "everything wrong", plate: "", createdAt: time.Time{}, hours: -1, fields: []string{"plate", "created_at", "estimated_hours"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wv.ValidateForCreation(tt.plate, tt.description, tt.createdAt, tt.hours)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
			assert.Equal(t, tt.fields, fieldsOf(t, err))
		})
	}
}

func TestWorkOrderValidator_ValidateCompletion(t *testing.T) {
	created := time.Date(2025, 11, 7, 9, 0, 0, 0, time.UTC)
	open := domain.WorkOrder{Reference: "r", Plate: "AB", CreatedAt: created, EstimatedHours: 4}
	done := open.Complete(created.Add(time.Hour))
	wv := NewWorkOrderValidator(NewValidator())

	assert.NoError(t, wv.ValidateCompletion(open, created))
	assert.NoError(t, wv.ValidateCompletion(open, created.Add(5*time.Hour)))
	assert.Equal(t, []string{"completed_at"}, fieldsOf(t, wv.ValidateCompletion(open, created.Add(-time.Minute))))
	assert.Equal(t, []string{"completed_at"}, fieldsOf(t, wv.ValidateCompletion(open, time.Time{})))
	assert.Equal(t, []string{"work_order"}, fieldsOf(t, wv.ValidateCompletion(done, created.Add(2*time.Hour))))
}

func TestWorkOrderValidator_ValidateCompletion_CorruptRow(t *testing.T) {
	created := time.Date(2025, 11, 7, 9, 0, 0, 0, time.UTC)
	wv := NewWorkOrderValidator(NewValidator())

	noPlate := domain.WorkOrder{Reference: "r", CreatedAt: created, EstimatedHours: 4}
	assert.Equal(t, []string{"work_order"}, fieldsOf(t, wv.ValidateCompletion(noPlate, created.Add(time.Hour))))

	noEstimate := domain.WorkOrder{Reference: "r", Plate: "AB", CreatedAt: created}
	assert.Equal(t, []string{"work_order"}, fieldsOf(t, wv.ValidateCompletion(noEstimate, created.Add(time.Hour))))
}

func TestWorkOrderValidator_IDsAndReferences(t *testing.T) {
	wv := NewWorkOrderValidator(nil)

	assert.NoError(t, wv.ValidateWorkOrderID(1))
	assert.Error(t, wv.ValidateWorkOrderID(0))
	assert.Error(t, wv.ValidateWorkOrderID(-3))

	assert.NoError(t, wv.ValidateReference("0f8fad5b-d9cb-469f-a165-70867728950e"))
	assert.NoError(t, wv.ValidateReference(" 0f8fad5b-d9cb-469f-a165-70867728950e "))
	assert.Equal(t, []string{"reference"}, fieldsOf(t, wv.ValidateReference("WO-12")))
}

func TestWorkOrderValidator_ValidateFilter(t *testing.T) {
	wv := NewWorkOrderValidator(nil)
	blank := "  "
	plate := "AB"

	assert.NoError(t, wv.ValidateFilter(domain.WorkOrderFilter{}))
	assert.NoError(t, wv.ValidateFilter(domain.WorkOrderFilter{Plate: &plate, Limit: 10, OpenOnly: true}))
	assert.Equal(t, []string{"limit", "plate"}, fieldsOf(t, wv.ValidateFilter(domain.WorkOrderFilter{Plate: &blank, Limit: -1})))
}
