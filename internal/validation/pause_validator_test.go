package validation

import (
	"strings"
	"testing"
	"time"

	"fleet-workhours/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestPauseValidator_ValidateForStart(t *testing.T) {
	created := time.Date(2025, 11, 7, 9, 0, 0, 0, time.UTC)
	open := domain.WorkOrder{ID: 1, Reference: "r", CreatedAt: created}
	done := open.Complete(created.Add(time.Hour))
	pv := NewPauseValidator(nil)

	assert.NoError(t, pv.ValidateForStart(open, "parts", created))
	assert.NoError(t, pv.ValidateForStart(open, "", created.Add(time.Hour)))
	assert.Equal(t, []string{"work_order"}, fieldsOf(t, pv.ValidateForStart(done, "", created.Add(2*time.Hour))))
	assert.Equal(t, []string{"start_time"}, fieldsOf(t, pv.ValidateForStart(open, "", created.Add(-time.Hour))))
	assert.Equal(t, []string{"start_time"}, fieldsOf(t, pv.ValidateForStart(open, "", time.Time{})))
	assert.Equal(t, []string{"reason"}, fieldsOf(t, pv.ValidateForStart(open, strings.Repeat("x", 256), created)))
}

func TestPauseValidator_ValidateStop(t *testing.T) {
	start := time.Date(2025, 11, 7, 10, 0, 0, 0, time.UTC)
	active := domain.NewPause(1, "", start)
	active.ID = 4
	stopped := active.Stop(start.Add(time.Hour), 60)
	pv := NewPauseValidator(NewValidator())

	assert.NoError(t, pv.ValidateStop(active, start))
	assert.NoError(t, pv.ValidateStop(active, start.Add(30*time.Minute)))
	assert.Equal(t, []string{"end_time"}, fieldsOf(t, pv.ValidateStop(active, start.Add(-time.Second))))
	assert.Equal(t, []string{"end_time"}, fieldsOf(t, pv.ValidateStop(active, time.Time{})))
	assert.Equal(t, []string{"pause"}, fieldsOf(t, pv.ValidateStop(stopped, start.Add(2*time.Hour))))
}

func TestPauseValidator_ValidateStop_CorruptRow(t *testing.T) {
	start := time.Date(2025, 11, 7, 10, 0, 0, 0, time.UTC)
	pv := NewPauseValidator(NewValidator())

	orphan := domain.NewPause(0, "", start)
	orphan.ID = 5
	assert.Equal(t, []string{"pause"}, fieldsOf(t, pv.ValidateStop(orphan, start.Add(time.Hour))))

	negative := domain.NewPause(1, "", start)
	minutes := int64(-10)
	negative.DurationMinutes = &minutes
	assert.Equal(t, []string{"pause"}, fieldsOf(t, pv.ValidateStop(negative, start.Add(time.Hour))))
}
