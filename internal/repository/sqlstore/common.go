package sqlstore

import (
	"context"
	"database/sql"
	stderrors "errors"

	"fleet-workhours/internal/errors"

	"github.com/jmoiron/sqlx"
)

// HandleDatabaseError converts database errors to structured app errors
func HandleDatabaseError(operation string, err error) error {
	return errors.NewDatabaseError(operation, err)
}

// HandleNoRowsError handles sql.ErrNoRows errors consistently
func HandleNoRowsError(err error, entityType string, id string) error {
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.NewNotFoundError(entityType, id)
	}
	return err
}

// ValidateRowsAffected checks if a database operation affected the expected number of rows
func ValidateRowsAffected(result sql.Result, entityType string, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return HandleDatabaseError("get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError(entityType, id)
	}
	return nil
}

// InsertReturningID executes an INSERT ... RETURNING id statement. Both
// supported drivers accept RETURNING, unlike LastInsertId which lib/pq lacks.
func InsertReturningID(ctx context.Context, db sqlx.ExtContext, query string, args ...interface{}) (int64, error) {
	var id int64
	if err := db.QueryRowxContext(ctx, db.Rebind(query), args...).Scan(&id); err != nil {
		return 0, HandleDatabaseError("execute insert", err)
	}
	return id, nil
}

// ExecuteWithRowsAffected executes a query and validates that rows were affected
func ExecuteWithRowsAffected(ctx context.Context, db sqlx.ExtContext, query string, entityType string, id string, args ...interface{}) error {
	result, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return HandleDatabaseError("execute query", err)
	}

	return ValidateRowsAffected(result, entityType, id)
}

// QuerySingle executes a query that returns a single row and converts it
func QuerySingle[R any, T any](ctx context.Context, db sqlx.ExtContext, query string, convert func(R) (*T, error), entityType string, id string, args ...interface{}) (*T, error) {
	var row R
	if err := sqlx.GetContext(ctx, db, &row, db.Rebind(query), args...); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError(entityType, id)
		}
		return nil, HandleDatabaseError("scan "+entityType, err)
	}
	result, err := convert(row)
	if err != nil {
		return nil, HandleDatabaseError("decode "+entityType, err)
	}
	return result, nil
}

// QueryMultiple executes a query that returns multiple rows and converts them
func QueryMultiple[R any, T any](ctx context.Context, db sqlx.ExtContext, query string, convert func([]R) ([]*T, error), entityType string, args ...interface{}) ([]*T, error) {
	var rows []R
	if err := sqlx.SelectContext(ctx, db, &rows, db.Rebind(query), args...); err != nil {
		return nil, HandleDatabaseError("query "+entityType, err)
	}

	results, err := convert(rows)
	if err != nil {
		return nil, HandleDatabaseError("decode "+entityType, err)
	}
	return results, nil
}
