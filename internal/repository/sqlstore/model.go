package sqlstore

import (
	"database/sql"
	"time"
)

// WorkOrder is a stored work order
type WorkOrder struct {
	ID                  int64
	Reference           string
	Plate               string
	Description         string
	CreatedAt           time.Time
	EstimatedHours      float64
	EstimatedCompletion time.Time
	ActualCompletion    *time.Time // nil while the order is open
}

// Pause is a stored pause on a work order
type Pause struct {
	ID              int64
	WorkOrderID     int64
	Reason          string
	StartTime       time.Time
	EndTime         *time.Time // nil while the pause is active
	DurationMinutes *int64
}

// ListOptions contains the supported work order list filters
type ListOptions struct {
	Plate    *string
	OpenOnly bool
	Limit    int
}

// workOrderRow is the column layout of work_orders. Timestamps are RFC3339
// text so both drivers store them the same way.
type workOrderRow struct {
	ID                  int64          `db:"id"`
	Reference           string         `db:"reference"`
	Plate               string         `db:"plate"`
	Description         string         `db:"description"`
	CreatedAt           string         `db:"created_at"`
	EstimatedHours      float64        `db:"estimated_hours"`
	EstimatedCompletion string         `db:"estimated_completion"`
	ActualCompletion    sql.NullString `db:"actual_completion"`
}

type pauseRow struct {
	ID              int64          `db:"id"`
	WorkOrderID     int64          `db:"work_order_id"`
	Reason          string         `db:"reason"`
	StartTime       string         `db:"start_time"`
	EndTime         sql.NullString `db:"end_time"`
	DurationMinutes sql.NullInt64  `db:"duration_minutes"`
}

func (r workOrderRow) toModel() (*WorkOrder, error) {
	created, err := ParseTimeFromDB(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	eta, err := ParseTimeFromDB(r.EstimatedCompletion)
	if err != nil {
		return nil, err
	}
	actual, err := ParseNullTimeFromDB(r.ActualCompletion)
	if err != nil {
		return nil, err
	}

	return &WorkOrder{
		ID:                  r.ID,
		Reference:           r.Reference,
		Plate:               r.Plate,
		Description:         r.Description,
		CreatedAt:           created,
		EstimatedHours:      r.EstimatedHours,
		EstimatedCompletion: eta,
		ActualCompletion:    actual,
	}, nil
}

func (r pauseRow) toModel() (*Pause, error) {
	start, err := ParseTimeFromDB(r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseNullTimeFromDB(r.EndTime)
	if err != nil {
		return nil, err
	}

	p := &Pause{
		ID:          r.ID,
		WorkOrderID: r.WorkOrderID,
		Reason:      r.Reason,
		StartTime:   start,
		EndTime:     end,
	}
	if r.DurationMinutes.Valid {
		m := r.DurationMinutes.Int64
		p.DurationMinutes = &m
	}
	return p, nil
}

func workOrdersFromRows(rows []workOrderRow) ([]*WorkOrder, error) {
	out := make([]*WorkOrder, 0, len(rows))
	for _, r := range rows {
		w, err := r.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

func pausesFromRows(rows []pauseRow) ([]*Pause, error) {
	out := make([]*Pause, 0, len(rows))
	for _, r := range rows {
		p, err := r.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
