// Package core has core logic for extraction, alignment and the build pipeline.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/tenthdistrict/activity/internal/chart"
	"github.com/tenthdistrict/activity/internal/contract"
	"github.com/tenthdistrict/activity/internal/outwriter"
	"github.com/tenthdistrict/activity/internal/sheet"
	"github.com/tenthdistrict/activity/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error

// ExecuteBuild runs the whole pipeline and reports every written artifact.
// It serves as the main entry point for the 'build' command.
func ExecuteBuild(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	start := time.Now()
	result, err := RunBuild(ctx, cfg, runStoreOf(mgr))
	if err != nil {
		return err
	}
	contract.LogInfo("✅ Built %d quarters (%d recent) from %s in %v",
		result.Table.Len(), result.Recent.Len(), cfg.InputPath, time.Since(start).Round(time.Millisecond))
	return nil
}

// ExecuteTable loads the table and prints it in the configured output format.
// It serves as the main entry point for the 'table' command.
func ExecuteTable(ctx context.Context, cfg *contract.Config, _ contract.HistoryManager) error {
	start := time.Now()
	result, err := LoadTable(ctx, cfg)
	if err != nil {
		return err
	}
	table, base := result.Table, 0
	if cfg.Recent {
		table, base = result.Recent, result.Table.Len()-result.Recent.Len()
	}
	return outwriter.PrintTable(table, base, cfg, time.Since(start))
}

// ExecuteInspect loads the table and prints the per-cell extraction report.
// With cfg.Recent only the cells behind the recent quarters are reported.
// It serves as the main entry point for the 'inspect' command.
func ExecuteInspect(ctx context.Context, cfg *contract.Config, _ contract.HistoryManager) error {
	start := time.Now()
	series, err := ExtractSeries(ctx, cfg)
	if err != nil {
		return err
	}
	if cfg.Recent {
		series[0] = series[0].Trailing(cfg.RecentRows, cfg.Layout.QuarterAgo.Length)
		series[1] = series[1].Trailing(cfg.RecentRows, cfg.Layout.YearAgo.Length)
	}
	return outwriter.PrintExtractionReport(series, cfg, time.Since(start))
}

// ExtractSeries reads the workbook and extracts the quarter-ago and year-ago
// rows without aligning them.
func ExtractSeries(ctx context.Context, cfg *contract.Config) ([]schema.CellSeries, error) {
	grid, err := sheet.ReadGrid(cfg.InputPath, cfg.Sheet)
	if err != nil {
		return nil, err
	}
	if err := cfg.Layout.CheckGrid(grid); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []schema.CellSeries{
		ExtractCells(grid, cfg.Layout.QuarterAgo),
		ExtractCells(grid, cfg.Layout.YearAgo),
	}, nil
}

// LoadTable reads the workbook, extracts both series and aligns them with the
// configured quarter labels. No files are written.
func LoadTable(ctx context.Context, cfg *contract.Config) (*schema.BuildResult, error) {
	series, err := ExtractSeries(ctx, cfg)
	if err != nil {
		return nil, err
	}
	qoq, yoy := series[0], series[1]

	table, err := BuildTable(cfg.Quarters,
		qoq.Values(cfg.Layout.QuarterAgo.Length),
		yoy.Values(cfg.Layout.YearAgo.Length),
		cfg.Align)
	if err != nil {
		return nil, err
	}

	return &schema.BuildResult{
		Table:      table,
		Recent:     table.Recent(cfg.RecentRows),
		QuarterAgo: qoq,
		YearAgo:    yoy,
	}, nil
}

// RunBuild performs the pipeline: read, extract, align, export the table, then
// render both chart documents and the optional snapshot. Any error aborts the run.
// When store is non-nil the run and its rows are recorded in the ledger.
func RunBuild(ctx context.Context, cfg *contract.Config, store contract.RunStore) (*schema.BuildResult, error) {
	start := time.Now()

	result, err := LoadTable(ctx, cfg)
	if err != nil {
		return nil, err
	}
	windows := chart.ResolveWindows(cfg.LineChart.Windows, result.Table.Quarters())
	if err := chart.ValidateWindows(windows, result.Table.Len()); err != nil {
		return nil, err
	}

	if err := outwriter.ExportTableCSV(cfg.TablePath, result.Table); err != nil {
		return nil, err
	}
	result.TablePath = cfg.TablePath
	contract.LogWrote("table", cfg.TablePath)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	docOpts := chart.DocumentOptions{PlotlySrc: cfg.PlotlySrc, PlotlyJSFile: cfg.PlotlyJSFile}

	lineFig, err := chart.BuildLineFigure(result.Table, cfg.LineChart)
	if err != nil {
		return nil, err
	}
	docOpts.Title = cfg.LineChart.Title
	if err := chart.WriteHTML(cfg.LineChartPath, lineFig, docOpts); err != nil {
		return nil, err
	}
	result.LineChartPath = cfg.LineChartPath
	contract.LogWrote("line chart", cfg.LineChartPath)

	barFig, err := chart.BuildBarFigure(result.Recent, cfg.BarChart)
	if err != nil {
		return nil, err
	}
	docOpts.Title = cfg.BarChart.Title
	if err := chart.WriteHTML(cfg.BarChartPath, barFig, docOpts); err != nil {
		return nil, err
	}
	result.BarChartPath = cfg.BarChartPath
	contract.LogWrote("bar chart", cfg.BarChartPath)

	if cfg.SnapshotPath != "" {
		if err := chart.WriteSnapshotPNG(cfg.SnapshotPath, result.Table, cfg.LineChart.Title); err != nil {
			return nil, err
		}
		result.SnapshotPath = cfg.SnapshotPath
		contract.LogWrote("snapshot", cfg.SnapshotPath)
	}

	if store != nil {
		runID, err := recordRun(store, cfg, result.Table, start)
		if err != nil {
			contract.LogWarn("Failed to record run history", err)
		} else {
			result.RunID = runID
		}
	}

	return result, nil
}

// recordRun stores run metadata and the built table in the ledger.
func recordRun(store contract.RunStore, cfg *contract.Config, table schema.ActivityTable, start time.Time) (int64, error) {
	runID, err := store.BeginRun(start, cfg.InputPath, runParams(cfg))
	if err != nil {
		return 0, fmt.Errorf("begin run: %w", err)
	}
	if err := store.RecordRows(runID, table); err != nil {
		return runID, fmt.Errorf("record rows for run %d: %w", runID, err)
	}
	if err := store.EndRun(runID, time.Now(), table.Len()); err != nil {
		return runID, fmt.Errorf("end run %d: %w", runID, err)
	}
	return runID, nil
}

// runParams returns the configuration that shapes the table, for the ledger.
func runParams(cfg *contract.Config) map[string]any {
	return map[string]any{
		"sheet":       cfg.Sheet,
		"align":       string(cfg.Align),
		"horizon":     cfg.Horizon,
		"recent_rows": cfg.RecentRows,
		"layout":      cfg.Layout,
	}
}

func runStoreOf(mgr contract.HistoryManager) contract.RunStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetRunStore()
}
