package schema

import "time"

// RunRecord represents a row from the activity_runs table.
type RunRecord struct {
	RunID        int64
	StartTime    time.Time
	EndTime      *time.Time
	DurationMs   *int32
	SourcePath   string
	RowCount     int32
	ConfigParams *string
}

// RunRowRecord represents a row from the activity_run_rows table.
type RunRowRecord struct {
	RunID        int64
	Position     int32
	Quarter      string
	VsQuarterAgo *float64
	VsYearAgo    *float64
}

// HistoryStatus represents the status of the run ledger.
type HistoryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// BuildResult summarizes one pipeline run.
type BuildResult struct {
	Table         ActivityTable `json:"table"`
	Recent        ActivityTable `json:"recent"`
	QuarterAgo    CellSeries    `json:"quarter_ago"`
	YearAgo       CellSeries    `json:"year_ago"`
	TablePath     string        `json:"table_path"`
	LineChartPath string        `json:"line_chart_path"`
	BarChartPath  string        `json:"bar_chart_path"`
	SnapshotPath  string        `json:"snapshot_path,omitempty"`
	RunID         int64         `json:"run_id,omitempty"`
}
