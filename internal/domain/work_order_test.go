package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkOrder(t *testing.T) {
	created := time.Date(2025, 11, 7, 9, 0, 0, 0, time.UTC)

	w := NewWorkOrder("AB-123-CD", "brake pads", created, 4)

	assert.Equal(t, int64(0), w.ID)
	assert.Equal(t, "AB-123-CD", w.Plate)
	assert.Equal(t, "brake pads", w.Description)
	assert.Equal(t, created, w.CreatedAt)
	assert.Equal(t, 4.0, w.EstimatedHours)
	assert.True(t, w.IsOpen())
	_, err := uuid.Parse(w.Reference)
	require.NoError(t, err)
	assert.NotEqual(t, w.Reference, NewWorkOrder("AB-123-CD", "", created, 4).Reference)
}

func TestWorkOrder_Complete(t *testing.T) {
	created := time.Date(2025, 11, 7, 9, 0, 0, 0, time.UTC)
	done := created.Add(3 * time.Hour)
	w := NewWorkOrder("X", "", created, 4)

	completed := w.Complete(done)

	assert.True(t, w.IsOpen(), "Complete returns a copy")
	assert.False(t, completed.IsOpen())
	assert.Equal(t, done, *completed.ActualCompletion)
}

func TestWorkOrder_IsOverdue(t *testing.T) {
	created := time.Date(2025, 11, 7, 9, 0, 0, 0, time.UTC)
	eta := time.Date(2025, 11, 7, 13, 0, 0, 0, time.UTC)
	early := eta.Add(-time.Minute)
	late := eta.Add(time.Minute)

	tests := []struct {
		name     string
		actual   *time.Time
		now      time.Time
		expected bool
	}{
		{name: "open before eta", now: early, expected: false},
		{name: "open exactly at eta", now: eta, expected: false},
		{name: "open after eta", now: late, expected: true},
		{name: "completed on time", actual: &early, now: late, expected: false},
		{name: "completed exactly at eta", actual: &eta, now: late, expected: false},
		{name: "completed late", actual: &late, now: early, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := WorkOrder{CreatedAt: created, EstimatedCompletion: eta, ActualCompletion: tt.actual}
			assert.Equal(t, tt.expected, w.IsOverdue(tt.now))
		})
	}
}

func TestWorkOrder_IsValid(t *testing.T) {
	created := time.Date(2025, 11, 7, 9, 0, 0, 0, time.UTC)
	before := created.Add(-time.Hour)
	valid := NewWorkOrder("AB-123-CD", "", created, 2)

	tests := []struct {
		name     string
		modify   func(*WorkOrder)
		expected bool
	}{
		{name: "valid", modify: func(*WorkOrder) {}, expected: true},
		{name: "empty plate", modify: func(w *WorkOrder) { w.Plate = "" }, expected: false},
		{name: "empty reference", modify: func(w *WorkOrder) { w.Reference = "" }, expected: false},
		{name: "zero created", modify: func(w *WorkOrder) { w.CreatedAt = time.Time{} }, expected: false},
		{name: "zero estimate", modify: func(w *WorkOrder) { w.EstimatedHours = 0 }, expected: false},
		{name: "completed before creation", modify: func(w *WorkOrder) { w.ActualCompletion = &before }, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := valid
			tt.modify(&w)
			assert.Equal(t, tt.expected, w.IsValid())
		})
	}
}

func TestWorkOrder_String(t *testing.T) {
	w := WorkOrder{Plate: "AB-123-CD", Reference: "0f8fad5b-d9cb-469f-a165-70867728950e"}
	assert.Equal(t, "AB-123-CD (0f8fad5b)", w.String())
	assert.Equal(t, "abc", WorkOrder{Reference: "abc"}.ShortReference())
}
