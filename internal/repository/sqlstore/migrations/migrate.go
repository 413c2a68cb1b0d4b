package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"fleet-workhours/internal/logging"

	"github.com/jmoiron/sqlx"
)

//go:embed sqlite/*.sql postgres/*.sql
var migrationsFS embed.FS

// GoMigrationFunc applies or reverts a migration that needs Go code.
type GoMigrationFunc func(tx *sqlx.Tx) error

// Migration represents a database migration
type Migration struct {
	Version  int
	Name     string
	Up       string
	Down     string
	UpFunc   GoMigrationFunc
	DownFunc GoMigrationFunc
}

type goMigration struct {
	name string
	up   GoMigrationFunc
	down GoMigrationFunc
}

var goMigrations = map[int]goMigration{}

// RegisterGoMigration registers a migration implemented in Go. Go migrations
// run for every dialect.
func RegisterGoMigration(version int, name string, up, down GoMigrationFunc) {
	goMigrations[version] = goMigration{name: name, up: up, down: down}
}

// Dialect returns the migration directory for a sqlx driver name.
func Dialect(driverName string) (string, error) {
	switch driverName {
	case "sqlite", "sqlite3":
		return "sqlite", nil
	case "postgres", "pgx":
		return "postgres", nil
	}
	return "", fmt.Errorf("no migrations for driver %q", driverName)
}

// RunMigrations executes all pending migrations. A migration that failed
// part way leaves its version marked dirty and blocks further runs.
func RunMigrations(db *sqlx.DB) error {
	dialect, err := Dialect(db.DriverName())
	if err != nil {
		return err
	}

	if err := createMigrationsTable(db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, dirty, err := getAppliedMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}
	if len(dirty) > 0 {
		return fmt.Errorf("database is in a dirty state; failed migration(s): %v", dirty)
	}

	migrations, err := LoadMigrations(dialect)
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	for _, migration := range migrations {
		if applied[migration.Version] {
			continue
		}
		logging.Debugf("applying migration %d (%s)\n", migration.Version, migration.Name)
		if err := applyMigration(db, migration); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

func createMigrationsTable(db *sqlx.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL,
		dirty BOOLEAN NOT NULL DEFAULT FALSE
	)`
	_, err := db.Exec(query)
	return err
}

// LoadMigrations returns the SQL migrations of dialect merged with the
// registered Go migrations, ordered by version.
func LoadMigrations(dialect string) ([]Migration, error) {
	entries, err := fs.ReadDir(migrationsFS, dialect)
	if err != nil {
		return nil, err
	}

	var migrations []Migration
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}

		version, name := parseFilename(entry.Name())
		if version == 0 {
			continue
		}

		upSQL, err := migrationsFS.ReadFile(path.Join(dialect, entry.Name()))
		if err != nil {
			return nil, err
		}

		downFile := strings.Replace(entry.Name(), ".up.sql", ".down.sql", 1)
		downSQL, err := migrationsFS.ReadFile(path.Join(dialect, downFile))
		if err != nil {
			return nil, err
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    name,
			Up:      string(upSQL),
			Down:    string(downSQL),
		})
	}

	for version, gm := range goMigrations {
		migrations = append(migrations, Migration{
			Version:  version,
			Name:     gm.name,
			UpFunc:   gm.up,
			DownFunc: gm.down,
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	for i := 1; i < len(migrations); i++ {
		if migrations[i].Version == migrations[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", migrations[i].Version)
		}
	}

	return migrations, nil
}

func getAppliedMigrations(db *sqlx.DB) (map[int]bool, []int, error) {
	var rows []struct {
		Version int  `db:"version"`
		Dirty   bool `db:"dirty"`
	}
	if err := db.Select(&rows, "SELECT version, dirty FROM schema_migrations ORDER BY version"); err != nil {
		return nil, nil, err
	}

	applied := make(map[int]bool, len(rows))
	var dirty []int
	for _, r := range rows {
		if r.Dirty {
			dirty = append(dirty, r.Version)
			continue
		}
		applied[r.Version] = true
	}
	return applied, dirty, nil
}

func applyMigration(db *sqlx.DB, migration Migration) error {
	mark := db.Rebind("INSERT INTO schema_migrations (version, applied_at, dirty) VALUES (?, ?, ?)")
	if _, err := db.Exec(mark, migration.Version, time.Now().UTC().Format(time.RFC3339), true); err != nil {
		return err
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}

	if migration.UpFunc != nil {
		err = migration.UpFunc(tx)
	} else {
		_, err = tx.Exec(migration.Up)
	}
	if err != nil {
		tx.Rollback()
		return err
	}

	if _, err := tx.Exec(tx.Rebind("UPDATE schema_migrations SET dirty = ? WHERE version = ?"), false, migration.Version); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// parseFilename splits "0001_create_work_orders.up.sql" into 1 and
// "create_work_orders".
func parseFilename(filename string) (int, string) {
	var version int
	if _, err := fmt.Sscanf(filename, "%d_", &version); err != nil {
		return 0, ""
	}
	name := strings.TrimSuffix(filename, ".up.sql")
	if idx := strings.Index(name, "_"); idx != -1 {
		name = name[idx+1:]
	}
	return version, name
}
