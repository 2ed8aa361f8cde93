package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/tenthdistrict/activity/core"
	"github.com/tenthdistrict/activity/internal/chart"
	"github.com/tenthdistrict/activity/internal/contract"
	"github.com/tenthdistrict/activity/internal/outwriter"
	"github.com/tenthdistrict/activity/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.HistoryManager
}

// windowSummary describes one range-filter button against the loaded table.
type windowSummary struct {
	schema.FilterWindow
	FirstQuarter string    `json:"first_quarter"`
	LastQuarter  string    `json:"last_quarter"`
	Quarters     int       `json:"quarters"`
	XRange       []float64 `json:"x_range"`
}

// runSummary is the JSON view of a ledger run.
type runSummary struct {
	RunID      int64      `json:"run_id"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    *time.Time `json:"end_time,omitempty"`
	DurationMs *int32     `json:"duration_ms,omitempty"`
	SourcePath string     `json:"source_path"`
	RowCount   int32      `json:"row_count"`
}

// requestConfig clones the base config and applies the workbook overrides
// shared by every table tool.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("input", ""); p != "" {
		cfg.InputPath = p
	}
	if s := request.GetString("sheet", ""); s != "" {
		cfg.Sheet = s
	}
	if a := request.GetString("align", ""); a != "" {
		align, err := contract.ParseAlignPolicy(a)
		if err != nil {
			return nil, err
		}
		cfg.Align = align
	}
	return cfg, nil
}

func (h *toolHandler) handleGetActivityTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid table parameters: %v", err)), nil
	}

	result, err := core.LoadTable(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading table failed: %v", err)), nil
	}

	table, base := result.Table, 0
	if request.GetBool("recent", false) {
		table, base = result.Recent, result.Table.Len()-result.Recent.Len()
	}

	jsonData, _ := json.MarshalIndent(schema.EnrichRows(table, base), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetExportedTable(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", h.baseCfg.TablePath)

	table, err := outwriter.ReadTableCSV(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading exported table failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(schema.EnrichRows(table, 0), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetExtractionReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid report parameters: %v", err)), nil
	}

	series, err := core.ExtractSeries(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("extraction failed: %v", err)), nil
	}

	reports := outwriter.BuildSeriesReports(series, cfg.Layout)
	jsonData, _ := json.MarshalIndent(reports, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetFilterWindows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid window parameters: %v", err)), nil
	}

	result, err := core.LoadTable(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading table failed: %v", err)), nil
	}
	quarters := result.Table.Quarters()
	windows := chart.ResolveWindows(cfg.LineChart.Windows, quarters)
	if err := chart.ValidateWindows(windows, result.Table.Len()); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	summaries := make([]windowSummary, len(windows))
	for i, w := range windows {
		summaries[i] = windowSummary{
			FilterWindow: w,
			FirstQuarter: quarters[w.From],
			LastQuarter:  quarters[w.To],
			Quarters:     w.Span(),
			XRange:       chart.WindowRange(w),
		}
	}

	jsonData, _ := json.MarshalIndent(summaries, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRunHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.mgr == nil || h.mgr.GetRunStore() == nil {
		return mcp.NewToolResultError("run history is not enabled; set --history-backend"), nil
	}

	runs, err := h.mgr.GetRunStore().GetAllRuns()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading run history failed: %v", err)), nil
	}

	summaries := make([]runSummary, 0, len(runs))
	for _, r := range slices.Backward(runs) {
		summaries = append(summaries, runSummary{
			RunID:      r.RunID,
			StartTime:  r.StartTime,
			EndTime:    r.EndTime,
			DurationMs: r.DurationMs,
			SourcePath: r.SourcePath,
			RowCount:   r.RowCount,
		})
	}
	if l := request.GetInt("limit", 0); l > 0 && l < len(summaries) {
		summaries = summaries[:l]
	}

	jsonData, _ := json.MarshalIndent(summaries, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
