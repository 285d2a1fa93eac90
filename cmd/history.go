package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/spacecap/internal/contract"
	"github.com/huangsam/spacecap/internal/iocache"
	"github.com/huangsam/spacecap/schema"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyConfig reads and validates the history backend settings.
// An unset backend means history tracking is disabled.
func historyConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backend := schema.NoneBackend
	if s := viper.GetString("history-backend"); s != "" {
		backend = schema.DatabaseBackend(s)
	}
	connStr := viper.GetString("history-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// historySetup loads minimal configuration needed for history operations.
func historySetup() error {
	backend, connStr, err := historyConfig()
	if err != nil {
		return err
	}

	// No breakdown cache for history commands
	if err := iocache.InitStores("", "", backend, connStr); err != nil {
		return eris.Wrap(err, "failed to initialize history")
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup is a specialized setup that does NOT initialize stores
// or create tables, allowing migrations to run on a fresh database.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := historyConfig()
	if err != nil {
		return err
	}
	if backend == schema.SQLiteBackend {
		connStr = sqlitePath(connStr, iocache.GetHistoryDBFilePath())
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyCmd focused on score history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup used by scoring commands.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage score history and exports",
	Long: `Manage the score history used for trends and reporting.

When enabled, every rank run is stored with:
- Run metadata (UUID, profile, timestamps, duration, configuration)
- Each country's overall score, tier, ranks and seven category scores

The latest stored score of a country becomes its prior score on the next
run when the dataset does not provide one.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, default)

Subcommands:
  status  - Show history statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all history data
  migrate - Run database schema migrations

Examples:
  # Enable history for a ranking run
  spacecap rank --history-backend sqlite

  # Export for analysis in pandas/DuckDB
  spacecap history export --history-backend sqlite --output-file sci`,
}

// historyClearCmd clears the score history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored scoring runs and country scores",
	Long: `Delete all stored scoring runs and country score history.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  spacecap history export --output-file backup
  spacecap history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		iocache.CloseCaching()
		path := sqlitePath(cfg.HistoryDBConnect, iocache.GetHistoryDBFilePath())
		if err := iocache.ClearHistory(cfg.HistoryBackend, path, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear score history", err)
		}
		fmt.Println("Score history cleared successfully.")
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display score history statistics and connection details",
	Long: `Show detailed information about the score history.

Displays:
- Backend type and connection status
- Total number of scoring runs stored
- Last and oldest run timestamps
- Total country scores stored
- Database table sizes`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get score history status", err)
		}
		iocache.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyExportCmd exports score history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export score history to Parquet for BI tools and analytics",
	Long: `Export all stored score history to Parquet format.

Writes two files next to --output-file:
- <output-file>.scoring_runs.parquet
- <output-file>.country_scores.parquet

Requires: --output-file parameter

Examples:
  spacecap history export --output-file sci
  duckdb -c "SELECT country_id, overall FROM read_parquet('sci.country_scores.parquet')"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteHistoryExport(os.Stdout, iocache.Manager.GetHistoryStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export score history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the score history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  spacecap history migrate --history-backend postgresql

  # Rollback to the initial state
  spacecap history migrate --target-version 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateHistory(os.Stdout, cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
