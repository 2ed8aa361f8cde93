// Package cmd defines the command-line interface for activity.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tenthdistrict/activity/internal/contract"
	"github.com/tenthdistrict/activity/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("input", "i", schema.DefaultInputPath, "Path to the activity workbook (.xlsx)")
	rootCmd.PersistentFlags().String("sheet", "", "Worksheet to read (default: first sheet)")
	rootCmd.PersistentFlags().String("table-file", schema.DefaultTablePath, "Destination of the processed CSV table")
	rootCmd.PersistentFlags().String("line-chart-file", schema.DefaultLineChartPath, "Destination of the line chart HTML document")
	rootCmd.PersistentFlags().String("bar-chart-file", schema.DefaultBarChartPath, "Destination of the bar chart HTML document")
	rootCmd.PersistentFlags().String("snapshot-file", "", "Optional destination of a static PNG of the line chart")
	rootCmd.PersistentFlags().String("align", string(schema.AlignStrict), "Series alignment policy: strict or pad or truncate")
	rootCmd.PersistentFlags().Int("horizon", schema.DefaultHorizon, "Number of quarters in the table")
	rootCmd.PersistentFlags().Int("recent-rows", schema.DefaultRecentRows, "Number of trailing quarters in the bar chart")
	rootCmd.PersistentFlags().String("plotly-src", schema.DefaultPlotlySrc, "URL of the plotly.js bundle referenced by the chart documents")
	rootCmd.PersistentFlags().String("plotly-js-file", "", "Local plotly.js bundle to inline instead of --plotly-src")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for run history (mysql needs parseTime=true)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// tableCmd and inspectCmd share one --recent flag behind one viper key
	recentFlags := pflag.NewFlagSet("recent", pflag.ContinueOnError)
	recentFlags.Bool("recent", false, "Limit output to the trailing recent quarters")
	tableCmd.Flags().AddFlagSet(recentFlags)
	inspectCmd.Flags().AddFlagSet(recentFlags)
	if err := viper.BindPFlags(recentFlags); err != nil {
		contract.LogFatal("Error binding recent flag", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
