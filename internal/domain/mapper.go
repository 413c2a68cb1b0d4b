package domain

import (
	"fleet-workhours/internal/repository/sqlstore"
)

// WorkOrderMapper handles conversion between domain and stored WorkOrder models.
type WorkOrderMapper struct{}

// NewWorkOrderMapper creates a new WorkOrderMapper instance.
func NewWorkOrderMapper() *WorkOrderMapper {
	return &WorkOrderMapper{}
}

// ToDatabase converts a domain WorkOrder to a stored WorkOrder.
func (m *WorkOrderMapper) ToDatabase(w WorkOrder) sqlstore.WorkOrder {
	return sqlstore.WorkOrder{
		ID:                  w.ID,
		Reference:           w.Reference,
		Plate:               w.Plate,
		Description:         w.Description,
		CreatedAt:           w.CreatedAt,
		EstimatedHours:      w.EstimatedHours,
		EstimatedCompletion: w.EstimatedCompletion,
		ActualCompletion:    w.ActualCompletion,
	}
}

// FromDatabase converts a stored WorkOrder to a domain WorkOrder.
func (m *WorkOrderMapper) FromDatabase(w sqlstore.WorkOrder) WorkOrder {
	return WorkOrder{
		ID:                  w.ID,
		Reference:           w.Reference,
		Plate:               w.Plate,
		Description:         w.Description,
		CreatedAt:           w.CreatedAt,
		EstimatedHours:      w.EstimatedHours,
		EstimatedCompletion: w.EstimatedCompletion,
		ActualCompletion:    w.ActualCompletion,
	}
}

// FromDatabaseSlice converts stored WorkOrders to domain WorkOrders.
func (m *WorkOrderMapper) FromDatabaseSlice(rows []*sqlstore.WorkOrder) []*WorkOrder {
	out := make([]*WorkOrder, len(rows))
	for i, row := range rows {
		w := m.FromDatabase(*row)
		out[i] = &w
	}
	return out
}

// PauseMapper handles conversion between domain and stored Pause models.
type PauseMapper struct{}

// NewPauseMapper creates a new PauseMapper instance.
func NewPauseMapper() *PauseMapper {
	return &PauseMapper{}
}

// ToDatabase converts a domain Pause to a stored Pause.
func (m *PauseMapper) ToDatabase(p Pause) sqlstore.Pause {
	return sqlstore.Pause{
		ID:              p.ID,
		WorkOrderID:     p.WorkOrderID,
		Reason:          p.Reason,
		StartTime:       p.StartTime,
		EndTime:         p.EndTime,
		DurationMinutes: p.DurationMinutes,
	}
}

// FromDatabase converts a stored Pause to a domain Pause.
func (m *PauseMapper) FromDatabase(p sqlstore.Pause) Pause {
	return Pause{
		ID:              p.ID,
		WorkOrderID:     p.WorkOrderID,
		Reason:          p.Reason,
		StartTime:       p.StartTime,
		EndTime:         p.EndTime,
		DurationMinutes: p.DurationMinutes,
	}
}

// FromDatabaseSlice converts stored Pauses to domain Pauses.
func (m *PauseMapper) FromDatabaseSlice(rows []*sqlstore.Pause) []*Pause {
	out := make([]*Pause, len(rows))
	for i, row := range rows {
		p := m.FromDatabase(*row)
		out[i] = &p
	}
	return out
}

// FilterMapper converts domain filters to store list options.
type FilterMapper struct{}

// ToDatabase converts a WorkOrderFilter to store ListOptions.
func (m *FilterMapper) ToDatabase(f WorkOrderFilter) sqlstore.ListOptions {
	return sqlstore.ListOptions{
		Plate:    f.Plate,
		OpenOnly: f.OpenOnly,
		Limit:    f.Limit,
	}
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	WorkOrder *WorkOrderMapper
	Pause     *PauseMapper
	Filter    *FilterMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		WorkOrder: NewWorkOrderMapper(),
		Pause:     NewPauseMapper(),
		Filter:    &FilterMapper{},
	}
}
