package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fleet-workhours/internal/errors"
	"fleet-workhours/internal/logging"
	"fleet-workhours/internal/repository/sqlstore/migrations"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Repository defines the interface for database operations
type Repository interface {
	// Work orders
	CreateWorkOrder(ctx context.Context, w *WorkOrder) error
	GetWorkOrder(ctx context.Context, id int64) (*WorkOrder, error)
	GetWorkOrderByReference(ctx context.Context, reference string) (*WorkOrder, error)
	ListWorkOrders(ctx context.Context, opts ListOptions) ([]*WorkOrder, error)
	UpdateWorkOrder(ctx context.Context, w *WorkOrder) error
	CompleteWorkOrder(ctx context.Context, w *WorkOrder, stopped *Pause) error
	DeleteWorkOrder(ctx context.Context, id int64) error

	// Pauses
	CreatePause(ctx context.Context, p *Pause) error
	GetPause(ctx context.Context, id int64) (*Pause, error)
	GetActivePause(ctx context.Context, workOrderID int64) (*Pause, error)
	ListPauses(ctx context.Context, workOrderID int64) ([]*Pause, error)
	UpdatePause(ctx context.Context, p *Pause) error

	// Utility
	Close() error
}

// Store implements Repository over sqlx
type Store struct {
	db      *sqlx.DB
	timeout time.Duration
}

// Option configures a Store
type Option func(*Store)

// WithQueryTimeout bounds every statement issued by the store
func WithQueryTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.timeout = d
	}
}

// Open connects with driver ("sqlite" or "postgres") and runs migrations
func Open(driver, dsn string, opts ...Option) (*Store, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	if driver == "sqlite" {
		// One connection keeps ":memory:" databases shared and serialises writers.
		db.SetMaxOpenConns(1)
	}

	store, err := New(db, opts...)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// New wraps an open database and runs migrations
func New(db *sqlx.DB, opts ...Option) (*Store, error) {
	if err := migrations.RunMigrations(db); err != nil {
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	s := &Store{db: db}
	for _, opt := range opts {
		opt(s)
	}
	logging.Debugf("store ready (driver %s)\n", db.DriverName())
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

const workOrderColumns = `id, reference, plate, description, created_at, estimated_hours, estimated_completion, actual_completion`

// CreateWorkOrder creates a new work order
func (s *Store) CreateWorkOrder(ctx context.Context, w *WorkOrder) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
	INSERT INTO work_orders (reference, plate, description, created_at, estimated_hours, estimated_completion, actual_completion)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	RETURNING id`

	id, err := InsertReturningID(ctx, s.db, query,
		w.Reference, w.Plate, w.Description, FormatTimeForDB(w.CreatedAt),
		w.EstimatedHours, FormatTimeForDB(w.EstimatedCompletion), FormatTimePtrForDB(w.ActualCompletion))
	if err != nil {
		return err
	}

	w.ID = id
	return nil
}

// GetWorkOrder retrieves a work order by ID
func (s *Store) GetWorkOrder(ctx context.Context, id int64) (*WorkOrder, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE id = ?`
	return QuerySingle(ctx, s.db, query, workOrderRow.toModel, "work order", fmt.Sprintf("%d", id), id)
}

// GetWorkOrderByReference retrieves a work order by its public reference
func (s *Store) GetWorkOrderByReference(ctx context.Context, reference string) (*WorkOrder, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE reference = ?`
	return QuerySingle(ctx, s.db, query, workOrderRow.toModel, "work order", reference, reference)
}

// ListWorkOrders lists work orders in creation order
func (s *Store) ListWorkOrders(ctx context.Context, opts ListOptions) ([]*WorkOrder, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var conditions []string
	var args []interface{}

	if opts.OpenOnly {
		conditions = append(conditions, "actual_completion IS NULL")
	}
	if opts.Plate != nil && *opts.Plate != "" {
		conditions = append(conditions, "UPPER(plate) LIKE ?")
		args = append(args, "%"+strings.ToUpper(*opts.Plate)+"%")
	}

	query := `SELECT ` + workOrderColumns + ` FROM work_orders`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id ASC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	return QueryMultiple(ctx, s.db, query, workOrdersFromRows, "work orders", args...)
}

// UpdateWorkOrder updates an existing work order
func (s *Store) UpdateWorkOrder(ctx context.Context, w *WorkOrder) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return updateWorkOrder(ctx, s.db, w)
}

func updateWorkOrder(ctx context.Context, db sqlx.ExtContext, w *WorkOrder) error {
	query := `
	UPDATE work_orders
	SET plate = ?, description = ?, created_at = ?, estimated_hours = ?, estimated_completion = ?, actual_completion = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, db, query, "work order", fmt.Sprintf("%d", w.ID),
		w.Plate, w.Description, FormatTimeForDB(w.CreatedAt), w.EstimatedHours,
		FormatTimeForDB(w.EstimatedCompletion), FormatTimePtrForDB(w.ActualCompletion), w.ID)
}

// CompleteWorkOrder writes a completed work order together with the pause
// closed by the completion, if any. Either both writes land or neither does.
func (s *Store) CompleteWorkOrder(ctx context.Context, w *WorkOrder, stopped *Pause) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}
	defer tx.Rollback()

	if stopped != nil {
		if err := updatePause(ctx, tx, stopped); err != nil {
			return err
		}
	}
	if err := updateWorkOrder(ctx, tx, w); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit transaction", err)
	}
	return nil
}

// DeleteWorkOrder deletes a work order and its pauses
func (s *Store) DeleteWorkOrder(ctx context.Context, id int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM pauses WHERE work_order_id = ?`), id); err != nil {
		return HandleDatabaseError("delete pauses", err)
	}
	if err := ExecuteWithRowsAffected(ctx, tx, `DELETE FROM work_orders WHERE id = ?`, "work order", fmt.Sprintf("%d", id), id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit transaction", err)
	}
	return nil
}

const pauseColumns = `id, work_order_id, reason, start_time, end_time, duration_minutes`

// CreatePause creates a new pause
func (s *Store) CreatePause(ctx context.Context, p *Pause) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
	INSERT INTO pauses (work_order_id, reason, start_time, end_time, duration_minutes)
	VALUES (?, ?, ?, ?, ?)
	RETURNING id`

	id, err := InsertReturningID(ctx, s.db, query,
		p.WorkOrderID, p.Reason, FormatTimeForDB(p.StartTime), FormatTimePtrForDB(p.EndTime), int64PtrForDB(p.DurationMinutes))
	if err != nil {
		return err
	}

	p.ID = id
	return nil
}

// GetPause retrieves a pause by ID
func (s *Store) GetPause(ctx context.Context, id int64) (*Pause, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + pauseColumns + ` FROM pauses WHERE id = ?`
	return QuerySingle(ctx, s.db, query, pauseRow.toModel, "pause", fmt.Sprintf("%d", id), id)
}

// GetActivePause returns the open pause of a work order, or a not found error
func (s *Store) GetActivePause(ctx context.Context, workOrderID int64) (*Pause, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + pauseColumns + ` FROM pauses WHERE work_order_id = ? AND end_time IS NULL ORDER BY id DESC LIMIT 1`
	return QuerySingle(ctx, s.db, query, pauseRow.toModel, "active pause", fmt.Sprintf("work order %d", workOrderID), workOrderID)
}

// ListPauses lists the pauses of a work order in start order
func (s *Store) ListPauses(ctx context.Context, workOrderID int64) ([]*Pause, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + pauseColumns + ` FROM pauses WHERE work_order_id = ? ORDER BY id ASC`
	return QueryMultiple(ctx, s.db, query, pausesFromRows, "pauses", workOrderID)
}

// UpdatePause updates an existing pause
func (s *Store) UpdatePause(ctx context.Context, p *Pause) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return updatePause(ctx, s.db, p)
}

func updatePause(ctx context.Context, db sqlx.ExtContext, p *Pause) error {
	query := `
	UPDATE pauses
	SET reason = ?, start_time = ?, end_time = ?, duration_minutes = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, db, query, "pause", fmt.Sprintf("%d", p.ID),
		p.Reason, FormatTimeForDB(p.StartTime), FormatTimePtrForDB(p.EndTime), int64PtrForDB(p.DurationMinutes), p.ID)
}

var _ Repository = (*Store)(nil)
