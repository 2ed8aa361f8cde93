package contract

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tenthdistrict/activity/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 1
	MaxPrecision     = 4
)

// Config holds the runtime configuration for a pipeline run.
// This struct is the "final, validated" config.
type Config struct {
	InputPath string
	Sheet     string // empty selects the first sheet
	Layout    schema.SheetLayout

	Quarters   []string
	Horizon    int
	RecentRows int
	Align      schema.AlignPolicy

	TablePath     string
	LineChartPath string
	BarChartPath  string
	SnapshotPath  string // empty disables the PNG snapshot

	PlotlySrc    string
	PlotlyJSFile string // when set, plotly.js is inlined from this file

	LineChart schema.LineChartConfig
	BarChart  schema.BarChartConfig

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool
	Recent     bool // table/inspect commands operate on RecentTable

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Input            string `mapstructure:"input"`
	Sheet            string `mapstructure:"sheet"`
	TableFile        string `mapstructure:"table-file"`
	LineChartFile    string `mapstructure:"line-chart-file"`
	BarChartFile     string `mapstructure:"bar-chart-file"`
	SnapshotFile     string `mapstructure:"snapshot-file"`
	Align            string `mapstructure:"align"`
	Horizon          int    `mapstructure:"horizon"`
	RecentRows       int    `mapstructure:"recent-rows"`
	PlotlySrc        string `mapstructure:"plotly-src"`
	PlotlyJSFile     string `mapstructure:"plotly-js-file"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields from tableCmd.Flags() / inspectCmd.Flags() ---
	Recent bool `mapstructure:"recent"`

	// --- Sections only available from the config file ---
	Quarters   []string                `mapstructure:"quarters"`
	Layout     *schema.SheetLayout     `mapstructure:"layout"`
	Windows    []schema.FilterWindow   `mapstructure:"windows"`
	Annotation *schema.Annotation      `mapstructure:"annotation"`
	BarChart   *schema.BarChartConfig  `mapstructure:"bar_chart"`
	LineChart  *schema.LineChartConfig `mapstructure:"line_chart"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Quarters = slices.Clone(c.Quarters)
	clone.LineChart.Windows = slices.Clone(c.LineChart.Windows)
	if c.LineChart.Annotation.Y != nil {
		y := *c.LineChart.Annotation.Y
		clone.LineChart.Annotation.Y = &y
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processHorizon(cfg, input); err != nil {
		return err
	}
	if err := processLayout(cfg, input); err != nil {
		return err
	}
	processCharts(cfg, input)
	if err := validateHistoryConfig(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all path and format fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.Sheet = input.Sheet
	cfg.SnapshotPath = input.SnapshotFile
	cfg.PlotlyJSFile = input.PlotlyJSFile
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Recent = input.Recent

	// --- 1. Paths ---
	paths := []struct {
		flag  string
		value string
		dst   *string
	}{
		{"input", input.Input, &cfg.InputPath},
		{"table-file", input.TableFile, &cfg.TablePath},
		{"line-chart-file", input.LineChartFile, &cfg.LineChartPath},
		{"bar-chart-file", input.BarChartFile, &cfg.BarChartPath},
	}
	for _, p := range paths {
		v := strings.TrimSpace(p.value)
		if v == "" {
			return fmt.Errorf("--%s cannot be empty", p.flag)
		}
		*p.dst = v
	}

	cfg.PlotlySrc = input.PlotlySrc
	if cfg.PlotlySrc == "" && cfg.PlotlyJSFile == "" {
		cfg.PlotlySrc = schema.DefaultPlotlySrc
	}

	// --- 2. Alignment policy ---
	align, err := ParseAlignPolicy(input.Align)
	if err != nil {
		return err
	}
	cfg.Align = align

	// --- 3. Precision and Output Validation ---
	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}

	// --- 4. Color flag ---
	colorStr := input.Color
	if colorStr == "" {
		colorStr = "yes"
	}
	colors, err := ParseBoolString(colorStr)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	return nil
}

// processHorizon resolves the quarter labels and the table shape.
func processHorizon(cfg *Config, input *ConfigRawInput) error {
	cfg.Horizon = input.Horizon
	if cfg.Horizon == 0 {
		cfg.Horizon = schema.DefaultHorizon
	}
	if cfg.Horizon < 0 {
		return fmt.Errorf("horizon must be greater than 0 (received %d)", input.Horizon)
	}

	cfg.Quarters = slices.Clone(schema.QuarterLabels)
	if len(input.Quarters) > 0 {
		cfg.Quarters = slices.Clone(input.Quarters)
	}
	if len(cfg.Quarters) != cfg.Horizon {
		return fmt.Errorf("quarter labels must match the horizon: %d labels for %d data points", len(cfg.Quarters), cfg.Horizon)
	}
	seen := make(map[string]struct{}, len(cfg.Quarters))
	for _, q := range cfg.Quarters {
		if _, dup := seen[q]; dup {
			return fmt.Errorf("duplicate quarter label %q", q)
		}
		seen[q] = struct{}{}
	}

	cfg.RecentRows = input.RecentRows
	if cfg.RecentRows == 0 {
		cfg.RecentRows = schema.DefaultRecentRows
	}
	if cfg.RecentRows < 0 || cfg.RecentRows > cfg.Horizon {
		return fmt.Errorf("recent-rows must be between 1 and %d (received %d)", cfg.Horizon, input.RecentRows)
	}
	return nil
}

// processLayout merges the configured sheet layout over the default one.
func processLayout(cfg *Config, input *ConfigRawInput) error {
	cfg.Layout = schema.DefaultSheetLayout()
	if input.Layout != nil {
		mergeSeriesSpec(&cfg.Layout.QuarterAgo, input.Layout.QuarterAgo)
		mergeSeriesSpec(&cfg.Layout.YearAgo, input.Layout.YearAgo)
	}
	// Series lengths follow the horizon unless set explicitly.
	if input.Layout == nil || input.Layout.QuarterAgo.Length == 0 {
		cfg.Layout.QuarterAgo.Length = cfg.Horizon
	}
	if input.Layout == nil || input.Layout.YearAgo.Length == 0 {
		cfg.Layout.YearAgo.Length = cfg.Horizon
	}
	if err := cfg.Layout.Validate(); err != nil {
		return fmt.Errorf("invalid sheet layout: %w", err)
	}
	return nil
}

// mergeSeriesSpec copies the non-zero fields of override onto dst.
// Row and column indices of zero are meaningful, so they are taken when the
// override names the series or sets any other field.
func mergeSeriesSpec(dst *schema.SeriesSpec, override schema.SeriesSpec) {
	if override == (schema.SeriesSpec{}) {
		return
	}
	dst.Row = override.Row
	dst.StartCol = override.StartCol
	if override.Length != 0 {
		dst.Length = override.Length
	}
	if override.Name != "" {
		dst.Name = override.Name
	}
}

// processCharts resolves chart configuration from defaults and the config file.
func processCharts(cfg *Config, input *ConfigRawInput) {
	cfg.LineChart = schema.DefaultLineChartConfig()
	if input.LineChart != nil {
		if input.LineChart.Title != "" {
			cfg.LineChart.Title = input.LineChart.Title
		}
		if input.LineChart.Subtitle != "" {
			cfg.LineChart.Subtitle = input.LineChart.Subtitle
		}
	}
	if len(input.Windows) > 0 {
		cfg.LineChart.Windows = slices.Clone(input.Windows)
	}
	if input.Annotation != nil {
		a := *input.Annotation
		if a.Text == "" {
			a.Text = cfg.LineChart.Annotation.Text
		}
		if a.AX == 0 && a.AY == 0 {
			a.AX, a.AY = cfg.LineChart.Annotation.AX, cfg.LineChart.Annotation.AY
		}
		cfg.LineChart.Annotation = a
	}

	cfg.BarChart = schema.DefaultBarChartConfig()
	if input.BarChart != nil {
		b := *input.BarChart
		if b.Title != "" {
			cfg.BarChart.Title = b.Title
		}
		if b.Subtitle != "" {
			cfg.BarChart.Subtitle = b.Subtitle
		}
		if b.YMin < b.YMax {
			cfg.BarChart.YMin, cfg.BarChart.YMax = b.YMin, b.YMax
		}
	}
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ParseAlignPolicy normalizes an align policy string; empty means AlignStrict.
func ParseAlignPolicy(s string) (schema.AlignPolicy, error) {
	if s == "" {
		return schema.AlignStrict, nil
	}
	policy := schema.AlignPolicy(strings.ToLower(s))
	if _, ok := schema.ValidAlignPolicies[policy]; !ok {
		return "", fmt.Errorf("invalid align policy '%s'. must be strict, pad, truncate", s)
	}
	return policy, nil
}

// ParseHistoryBackend normalizes a backend string; empty means NoneBackend.
func ParseHistoryBackend(s string) (schema.DatabaseBackend, error) {
	if s == "" {
		return schema.NoneBackend, nil
	}
	backend := schema.DatabaseBackend(strings.ToLower(s))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", s)
	}
	return backend, nil
}

// validateHistoryConfig validates the run ledger backend.
func validateHistoryConfig(cfg *Config, input *ConfigRawInput) error {
	backend, err := ParseHistoryBackend(input.HistoryBackend)
	if err != nil {
		return err
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}
