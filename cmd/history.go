package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tenthdistrict/activity/internal/contract"
	"github.com/tenthdistrict/activity/internal/history"
	"github.com/tenthdistrict/activity/schema"
)

// historyConfig reads and validates the ledger settings only.
func historyConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, err := contract.ParseHistoryBackend(viper.GetString("history-backend"))
	if err != nil {
		return err
	}
	connStr := viper.GetString("history-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// historySetup loads minimal configuration needed for ledger operations.
// This is used by commands that need ledger access without reading the workbook.
func historySetup(_ *cobra.Command, _ []string) error {
	if err := historyConfig(); err != nil {
		return err
	}
	if err := history.InitHistory(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize run history: %w", err)
	}
	return nil
}

// historyMigrateSetup loads configuration for migrations without initializing
// the store, so migrations can run on a fresh database.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	if err := historyConfig(); err != nil {
		return err
	}
	// For SQLite backend with empty connection string, use default path
	if cfg.HistoryBackend == schema.SQLiteBackend && cfg.HistoryDBConnect == "" {
		cfg.HistoryDBConnect = contract.GetHistoryDBFilePath()
	}
	return nil
}

// sqliteHistoryPath returns the SQLite ledger file in use.
func sqliteHistoryPath() string {
	if cfg.HistoryDBConnect != "" {
		return cfg.HistoryDBConnect
	}
	return contract.GetHistoryDBFilePath()
}

// historyCmd focused on run ledger management.
//
// Note: history subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup, so they work without a readable workbook.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the ledger of recorded builds",
	Long: `Manage the ledger of builds recorded with --history-backend.

Each recorded build stores:
- Run metadata (timestamp, source workbook, configuration, duration)
- Every row of the built table

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, default)

Subcommands:
  status  - Show ledger statistics
  export  - Export the ledger to Parquet
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # Check the local ledger
  activity history status --history-backend sqlite

  # Export for analysis in pandas/DuckDB
  activity history export --history-backend sqlite --output-file activity`,
}

// historyStatusCmd shows ledger status.
var historyStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display ledger statistics and connection details",
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := history.Manager.GetRunStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		history.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyClearCmd clears the ledger.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs",
	Long: `Delete every recorded run and its table rows.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the ledger tables

WARNING: This action cannot be undone. Consider exporting first.`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ClearHistory(cfg.HistoryBackend, sqliteHistoryPath(), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// historyExportCmd exports the ledger to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger to Parquet for BI tools and analytics",
	Long: `Export all recorded runs to Parquet.

Writes two files next to --output-file:
- <output-file>.runs.parquet     - metadata about each build
- <output-file>.run_rows.parquet - every table row of every build

Requires: --output-file parameter

Examples:
  activity history export --history-backend sqlite --output-file activity
  duckdb -c "SELECT * FROM read_parquet('activity.run_rows.parquet') LIMIT 10"`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ExportHistory(history.Manager.GetRunStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the ledger.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run ledger.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  activity history migrate --history-backend postgresql --history-db-connect "host=... dbname=activity"

  # Rollback to initial state
  activity history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := history.Migrate(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
