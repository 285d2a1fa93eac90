package iocache

import (
	"database/sql"
	"os"
	"sync"

	"github.com/huangsam/spacecap/internal/contract"
	"github.com/huangsam/spacecap/schema"
	"github.com/rotisserie/eris"
)

// breakdownTable is the name of the table for breakdown caching.
const breakdownTable = "sci_breakdown_cache"

// migrationsTable is where golang-migrate tracks the history schema version.
const migrationsTable = "schema_migrations"

// Global Manager instance for main logic.
var (
	Manager   = &CacheStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetDBFilePath returns the path to the SQLite DB file for cache storage.
func GetDBFilePath() string {
	return contract.GetCacheDBFilePath()
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for history storage.
func GetHistoryDBFilePath() string {
	return contract.GetHistoryDBFilePath()
}

// InitStores initializes the global manager with separate cache and history stores.
// cacheBackend can be empty to disable the breakdown cache.
// historyBackend can be empty to disable score history.
func InitStores(cacheBackend schema.DatabaseBackend, cacheConnStr string, historyBackend schema.DatabaseBackend, historyConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		var err error

		var breakdownStore contract.CacheStore
		if cacheBackend != "" {
			breakdownStore, err = NewCacheStore(breakdownTable, cacheBackend, cacheConnStr)
			if err != nil {
				initErr = eris.Wrap(err, "failed to initialize breakdown caching")
				return
			}
		}

		var historyStore contract.HistoryStore
		if historyBackend != "" {
			historyStore, err = NewHistoryStore(historyBackend, historyConnStr)
			if err != nil {
				if breakdownStore != nil {
					_ = breakdownStore.Close()
				}
				initErr = eris.Wrap(err, "failed to initialize history store")
				return
			}
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.breakdown = breakdownStore
		Manager.history = historyStore
	})

	return initErr
}

// CloseCaching should be called on application shutdown.
func CloseCaching() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.breakdown != nil {
			_ = Manager.breakdown.Close()
		}
		if Manager.history != nil {
			_ = Manager.history.Close()
		}
	})
}

// ClearCache clears the breakdown cache for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the table.
// For NoneBackend, it does nothing.
func ClearCache(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	return clearStorage(backend, dbFilePath, connStr, breakdownTable)
}

// ClearHistory clears all recorded runs and scores for the specified backend.
// The migration version table is dropped too so the schema can be rebuilt.
func ClearHistory(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	return clearStorage(backend, dbFilePath, connStr, countryScoresTable, scoringRunsTable, migrationsTable)
}

func clearStorage(backend schema.DatabaseBackend, dbFilePath, connStr string, tables ...string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return eris.New("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return eris.Wrapf(err, "failed to remove SQLite database file %s", dbFilePath)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		for _, table := range tables {
			if err := clearSQLTable(backend, connStr, table); err != nil {
				return err
			}
		}
		return nil

	case schema.NoneBackend:
		return nil

	default:
		return eris.Errorf("unsupported backend for clearing: %s", backend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(backend schema.DatabaseBackend, connStr, tableName string) error {
	if err := validateTableName(tableName); err != nil {
		return err
	}
	driverName, err := driverFor(backend)
	if err != nil {
		return err
	}

	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return eris.Wrapf(err, "failed to connect to %s database", driverName)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return eris.Wrapf(err, "failed to ping %s database", driverName)
	}

	query := "DROP TABLE IF EXISTS " + quoteTableName(tableName, backend)
	if _, err := db.Exec(query); err != nil {
		return eris.Wrapf(err, "failed to drop table %s", tableName)
	}
	return nil
}
