package migrations

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"fleet-workhours/internal/logging"

	"github.com/jmoiron/sqlx"
)

func init() {
	RegisterGoMigration(3, "normalise_timestamps", upNormaliseTimestamps, downNormaliseTimestamps)
}

// timestampColumns lists every column holding a stored timestamp.
var timestampColumns = []struct {
	table  string
	column string
}{
	{"work_orders", "created_at"},
	{"work_orders", "estimated_completion"},
	{"work_orders", "actual_completion"},
	{"pauses", "start_time"},
	{"pauses", "end_time"},
}

// upNormaliseTimestamps rewrites timestamps written by hand or by older tools
// ("2025-11-07 09:00", Go's default time.String form, ...) to RFC3339 so the
// store can parse every row. Values without an offset are taken as UTC.
func upNormaliseTimestamps(tx *sqlx.Tx) error {
	updated, skipped := 0, 0

	for _, tc := range timestampColumns {
		type row struct {
			ID    int64          `db:"id"`
			Value sql.NullString `db:"value"`
		}
		var rows []row
		query := fmt.Sprintf("SELECT id, %s AS value FROM %s", tc.column, tc.table)
		if err := tx.Select(&rows, query); err != nil {
			return fmt.Errorf("failed to read %s.%s: %w", tc.table, tc.column, err)
		}

		update := tx.Rebind(fmt.Sprintf("UPDATE %s SET %s = ? WHERE id = ?", tc.table, tc.column))
		for _, r := range rows {
			if !r.Value.Valid || r.Value.String == "" {
				continue
			}
			normalised, err := NormaliseTimestamp(r.Value.String)
			if err != nil {
				logging.Debugf("migration: leaving %s.%s id %d as %q: %v\n", tc.table, tc.column, r.ID, r.Value.String, err)
				skipped++
				continue
			}
			if normalised == r.Value.String {
				continue
			}
			if _, err := tx.Exec(update, normalised, r.ID); err != nil {
				return fmt.Errorf("failed to update %s.%s for id %d: %w", tc.table, tc.column, r.ID, err)
			}
			updated++
		}
	}

	logging.Debugf("migration: normalised %d timestamps, skipped %d\n", updated, skipped)
	return nil
}

// downNormaliseTimestamps is a no-op: RFC3339 is readable by every version.
func downNormaliseTimestamps(tx *sqlx.Tx) error {
	return nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05.999999999 -0700",
	"2006-01-02 15:04:05 -0700 MST",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// NormaliseTimestamp converts a stored timestamp in any known layout to
// RFC3339. Go monotonic clock suffixes ("m=+0.0012") are ignored.
func NormaliseTimestamp(value string) (string, error) {
	value = strings.TrimSpace(value)
	if idx := strings.Index(value, " m="); idx != -1 {
		value = value[:idx]
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(time.RFC3339), nil
		}
	}
	return "", fmt.Errorf("unrecognised timestamp %q", value)
}
