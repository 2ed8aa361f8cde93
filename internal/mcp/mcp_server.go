// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/tenthdistrict/activity/internal/contract"
)

// NewMCPServer initializes and configures the activity MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Oil & Gas Activity Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_activity_table ---
	s.AddTool(mcp.NewTool("get_activity_table",
		mcp.WithDescription("Read the quarterly activity workbook and return the aligned table of both index series."),
		mcp.WithString("input", mcp.Description("Path to the .xlsx workbook (defaults to the configured input).")),
		mcp.WithString("sheet", mcp.Description("Worksheet name (defaults to the first sheet).")),
		mcp.WithString("align", mcp.Description("Alignment policy when a series length differs from the quarter labels."), mcp.Enum("strict", "pad", "truncate")),
		mcp.WithBoolean("recent", mcp.Description("Return only the trailing recent quarters.")),
	), h.handleGetActivityTable)

	// --- 2. Tool: get_extraction_report ---
	s.AddTool(mcp.NewTool("get_extraction_report",
		mcp.WithDescription("Report every cell read from both series rows, including cells dropped as non-numeric."),
		mcp.WithString("input", mcp.Description("Path to the .xlsx workbook.")),
		mcp.WithString("sheet", mcp.Description("Worksheet name.")),
	), h.handleGetExtractionReport)

	// --- 3. Tool: get_filter_windows ---
	s.AddTool(mcp.NewTool("get_filter_windows",
		mcp.WithDescription("List the line chart's range-filter windows with their quarters and x-axis ranges."),
		mcp.WithString("input", mcp.Description("Path to the .xlsx workbook.")),
		mcp.WithString("sheet", mcp.Description("Worksheet name.")),
		mcp.WithString("align", mcp.Description("Alignment policy when a series length differs from the quarter labels."), mcp.Enum("strict", "pad", "truncate")),
	), h.handleGetFilterWindows)

	// --- 4. Tool: get_run_history ---
	s.AddTool(mcp.NewTool("get_run_history",
		mcp.WithDescription("List recorded pipeline runs from the history ledger, newest first."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of runs returned.")),
	), h.handleGetRunHistory)

	// --- 5. Tool: get_exported_table ---
	s.AddTool(mcp.NewTool("get_exported_table",
		mcp.WithDescription("Read back the table CSV written by the last build, without opening the workbook."),
		mcp.WithString("path", mcp.Description("Path to the exported CSV (defaults to the configured table file).")),
	), h.handleGetExportedTable)

	return s
}

// StartMCPServer starts the activity MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
