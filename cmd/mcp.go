package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tenthdistrict/activity/internal/history"
	"github.com/tenthdistrict/activity/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the activity MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents read the activity table,
the per-cell extraction report, the chart filter windows and the run ledger.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, history.Manager)
	},
}
