package history

import (
	"errors"
	"fmt"

	"github.com/tenthdistrict/activity/internal/contract"
	"github.com/tenthdistrict/activity/internal/parquet"
)

// ExportHistory writes the ledger to two Parquet files next to outputFile:
// <outputFile>.runs.parquet and <outputFile>.run_rows.parquet.
func ExportHistory(store contract.RunStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("run history is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	contract.LogInfo("Exporting history from %s backend (%d runs, %d rows)...",
		status.Backend, status.TotalRuns, status.TableSizes[runRowsTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	rows, err := store.GetAllRows()
	if err != nil {
		return fmt.Errorf("failed to retrieve run rows: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquet.ConvertRunRecords(runs), runsFile); err != nil {
		return &contract.WriteError{Path: runsFile, Err: err}
	}
	contract.LogWrote(fmt.Sprintf("%d runs", len(runs)), runsFile)

	rowsFile := outputFile + ".run_rows.parquet"
	if err := parquet.WriteRunRowsParquet(parquet.ConvertRunRowRecords(rows), rowsFile); err != nil {
		return &contract.WriteError{Path: rowsFile, Err: err}
	}
	contract.LogWrote(fmt.Sprintf("%d run rows", len(rows)), rowsFile)

	return nil
}
