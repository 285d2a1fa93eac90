package iocache

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/huangsam/spacecap/schema"
	"github.com/rotisserie/eris"
)

//go:embed migrations
var migrationsFS embed.FS

// migrationDir returns the embedded migration directory of a backend.
func migrationDir(backend schema.DatabaseBackend) (fs.FS, error) {
	var dir string
	switch backend {
	case schema.SQLiteBackend:
		dir = "migrations/sqlite"
	case schema.MySQLBackend:
		dir = "migrations/mysql"
	case schema.PostgreSQLBackend:
		dir = "migrations/postgres"
	default:
		return nil, eris.Errorf("migrations are not supported for backend %q", backend)
	}
	sub, err := fs.Sub(migrationsFS, dir)
	if err != nil {
		return nil, eris.Wrap(err, "failed to access migrations directory")
	}
	return sub, nil
}

// createHistoryTables applies every up migration of the backend in order.
// Each statement is idempotent so existing tables are left alone.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	dir, err := migrationDir(backend)
	if err != nil {
		return err
	}
	files, err := fs.Glob(dir, "*.up.sql")
	if err != nil {
		return eris.Wrap(err, "failed to list migrations")
	}
	sort.Strings(files)

	for _, name := range files {
		data, err := fs.ReadFile(dir, name)
		if err != nil {
			return eris.Wrapf(err, "failed to read migration %s", name)
		}
		for stmt := range strings.SplitSeq(string(data), ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if _, err := db.Exec(stmt); err != nil {
				return eris.Wrapf(err, "failed to apply migration %s", name)
			}
		}
	}
	return nil
}

// MigrateHistory runs database migrations for the history store.
// - If targetVersion < 0, it migrates to the latest version.
// - If targetVersion == 0, it rolls back all migrations (to initial state).
// - If targetVersion > 0, it migrates to the specified version.
func MigrateHistory(w io.Writer, backend schema.DatabaseBackend, connStr string, targetVersion int) error {
	if backend == schema.NoneBackend {
		return eris.New("migrations are not supported for NoneBackend")
	}

	db, err := openDatabase(backend, connStr, GetHistoryDBFilePath())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	var driver database.Driver
	switch backend {
	case schema.SQLiteBackend:
		driver, err = sqlite.WithInstance(db, &sqlite.Config{})
	case schema.MySQLBackend:
		driver, err = mysql.WithInstance(db, &mysql.Config{})
	case schema.PostgreSQLBackend:
		driver, err = pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	}
	if err != nil {
		return eris.Wrapf(err, "failed to create %s migrate driver", backend)
	}

	dir, err := migrationDir(backend)
	if err != nil {
		return err
	}
	sourceDriver, err := iofs.New(dir, ".")
	if err != nil {
		return eris.Wrap(err, "failed to create migration source")
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "spacecap", driver)
	if err != nil {
		return eris.Wrap(err, "failed to create migrate instance")
	}

	currentVersion, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return eris.Wrap(err, "failed to get current migration version")
	}
	if dirty {
		return eris.Errorf("database is in a dirty state at version %d. Please fix manually or force version", currentVersion)
	}

	switch {
	case targetVersion < 0:
		err = m.Up()
	case targetVersion == 0:
		err = m.Down()
	default:
		err = m.Migrate(uint(targetVersion))
	}
	if errors.Is(err, migrate.ErrNoChange) {
		_, _ = fmt.Fprintf(w, "No migration needed. Database is already at version %d\n", currentVersion)
		return nil
	}
	if err != nil {
		return eris.Wrapf(err, "failed to migrate from version %d", currentVersion)
	}

	newVersion, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return eris.Wrap(err, "failed to read migrated version")
	}
	_, _ = fmt.Fprintf(w, "Successfully migrated from version %d to version %d\n", currentVersion, newVersion)
	return nil
}
