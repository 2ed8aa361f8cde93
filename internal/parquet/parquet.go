// Package parquet provides data structures and functions for exporting activity
// tables and run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/tenthdistrict/activity/schema"
)

// ActivityRecord represents one quarter of the activity table.
type ActivityRecord struct {
	// Position is the zero-based row index in the full table
	Position int32 `parquet:"position,snappy"`

	// Quarter is the quarter label, e.g. "2024 Q1"
	Quarter string `parquet:"quarter,snappy"`

	// VsQuarterAgo is the index versus a quarter ago (nullable when padded)
	VsQuarterAgo *float64 `parquet:"vs_quarter_ago,optional,snappy"`

	// VsYearAgo is the index versus a year ago (nullable when padded)
	VsYearAgo *float64 `parquet:"vs_year_ago,optional,snappy"`

	// Label describes the direction of the quarter-ago index
	Label string `parquet:"label,snappy"`
}

// Run represents a single pipeline run with metadata.
// This struct maps to the activity_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// DurationMs is the duration of the run in milliseconds (nullable)
	DurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// SourcePath is the workbook the run read
	SourcePath string `parquet:"source_path,snappy"`

	// RowCount is the number of table rows the run produced
	RowCount int32 `parquet:"row_count,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// RunRow represents one table row recorded by a run.
// This struct maps to the activity_run_rows database table.
type RunRow struct {
	RunID        int64    `parquet:"run_id,snappy"`
	Position     int32    `parquet:"position,snappy"`
	Quarter      string   `parquet:"quarter,snappy"`
	VsQuarterAgo *float64 `parquet:"vs_quarter_ago,optional,snappy"`
	VsYearAgo    *float64 `parquet:"vs_year_ago,optional,snappy"`
}

// writeRecords streams records to w with a schema inferred from T's struct tags.
func writeRecords[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// writeFile creates outputPath and writes records to it.
func writeFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeRecords(file, data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// WriteActivityParquet writes activity records to w.
func WriteActivityParquet(w io.Writer, data []ActivityRecord) error {
	return writeRecords(w, data)
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteRunRowsParquet writes a slice of RunRow structs to a Parquet file.
func WriteRunRowsParquet(data []RunRow, outputPath string) error {
	return writeFile(data, outputPath)
}

// ConvertEnrichedRows converts presentation rows to ActivityRecord for Parquet export.
func ConvertEnrichedRows(rows []schema.EnrichedRow) []ActivityRecord {
	result := make([]ActivityRecord, len(rows))
	for i, r := range rows {
		result[i] = ActivityRecord{
			Position:     int32(r.Position),
			Quarter:      r.Quarter,
			VsQuarterAgo: schema.OptionalValue(r.VsQuarterAgo),
			VsYearAgo:    schema.OptionalValue(r.VsYearAgo),
			Label:        r.Label,
		}
	}
	return result
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:        record.RunID,
			StartTime:    record.StartTime,
			EndTime:      record.EndTime,
			DurationMs:   record.DurationMs,
			SourcePath:   record.SourcePath,
			RowCount:     record.RowCount,
			ConfigParams: record.ConfigParams,
		}
	}
	return result
}

// ConvertRunRowRecords converts schema.RunRowRecord to RunRow for Parquet export.
func ConvertRunRowRecords(records []schema.RunRowRecord) []RunRow {
	result := make([]RunRow, len(records))
	for i, record := range records {
		result[i] = RunRow{
			RunID:        record.RunID,
			Position:     record.Position,
			Quarter:      record.Quarter,
			VsQuarterAgo: record.VsQuarterAgo,
			VsYearAgo:    record.VsYearAgo,
		}
	}
	return result
}
