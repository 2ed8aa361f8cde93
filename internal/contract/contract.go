// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/tenthdistrict/activity/schema"
)

// HistoryManager defines the interface for reaching the run ledger.
// This allows the ledger to be mocked for testing.
type HistoryManager interface {
	GetRunStore() RunStore
}

// RunStore defines the interface for tracking pipeline runs and the tables they produced.
type RunStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(startTime time.Time, sourcePath string, configParams map[string]any) (int64, error)

	// RecordRows stores every row of the table built by the run
	RecordRows(runID int64, table schema.ActivityTable) error

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, rowCount int) error

	// GetStatus returns status information about the ledger
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns retrieves every stored run
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllRows retrieves every stored row of every run
	GetAllRows() ([]schema.RunRowRecord, error)

	// Close closes the underlying connection
	Close() error
}
