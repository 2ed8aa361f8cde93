package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tenthdistrict/activity/core"
	"github.com/tenthdistrict/activity/internal/contract"
	"github.com/tenthdistrict/activity/internal/history"
)

// buildCmd runs the whole pipeline.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the activity table and render both charts.",
	Long: `Read the workbook, extract both index rows, align them with the quarter
labels and write every artifact:

- the processed CSV table (--table-file)
- the full-history line chart with range-filter buttons (--line-chart-file)
- the grouped bar chart of the recent quarters (--bar-chart-file)
- optionally a static PNG of the line chart (--snapshot-file)

Destination directories must already exist. Any error aborts the run.

Examples:
  # Build with the default paths
  activity build

  # Pad a short series instead of failing
  activity build --align pad

  # Record the run in a local SQLite ledger
  activity build --history-backend sqlite`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBuild(rootCtx, cfg, history.Manager); err != nil {
			contract.LogFatal("Cannot build activity charts", err)
		}
	},
}

// tableCmd prints the aligned table without writing any artifact.
var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the aligned activity table.",
	Long: `Read the workbook and print the aligned table with a direction label per quarter.

Examples:
  # Show all quarters
  activity table

  # Show the quarters used by the bar chart as JSON
  activity table --recent --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTable(rootCtx, cfg, history.Manager); err != nil {
			contract.LogFatal("Cannot print activity table", err)
		}
	},
}

// inspectCmd prints what was read from every cell of both series rows.
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show how each cell of the series rows was parsed.",
	Long: `Report every cell of the quarter-ago and year-ago rows: its address, raw text,
whether it parsed as a number, and how many values are kept for the table.

Use this when a build fails with a length mismatch to find the cells that
were dropped as non-numeric.

Examples:
  activity inspect
  activity inspect --output csv --output-file cells.csv

  # Only the cells behind the bar chart quarters
  activity inspect --recent`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteInspect(rootCtx, cfg, history.Manager); err != nil {
			contract.LogFatal("Cannot inspect workbook", err)
		}
	},
}
