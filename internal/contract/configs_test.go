package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tenthdistrict/activity/schema"
)

func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		Input:         schema.DefaultInputPath,
		TableFile:     schema.DefaultTablePath,
		LineChartFile: schema.DefaultLineChartPath,
		BarChartFile:  schema.DefaultBarChartPath,
		Align:         "strict",
		Output:        "text",
		Precision:     1,
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validRawInput()))

	assert.Equal(t, schema.DefaultInputPath, cfg.InputPath)
	assert.Equal(t, schema.AlignStrict, cfg.Align)
	assert.Equal(t, schema.DefaultHorizon, cfg.Horizon)
	assert.Equal(t, schema.DefaultRecentRows, cfg.RecentRows)
	assert.Equal(t, schema.QuarterLabels, cfg.Quarters)
	assert.Equal(t, schema.DefaultSheetLayout(), cfg.Layout)
	assert.Equal(t, schema.DefaultPlotlySrc, cfg.PlotlySrc)
	assert.Equal(t, schema.NoneBackend, cfg.HistoryBackend)
	assert.True(t, cfg.UseColors)
	assert.Empty(t, cfg.LineChart.Windows, "default windows are derived from the built table")
	assert.Equal(t, -60.0, cfg.BarChart.YMin)
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError string
	}{
		{
			name:        "empty input path",
			mutate:      func(in *ConfigRawInput) { in.Input = "  " },
			expectError: "--input cannot be empty",
		},
		{
			name:        "invalid align policy",
			mutate:      func(in *ConfigRawInput) { in.Align = "zip" },
			expectError: "invalid align policy",
		},
		{
			name:        "invalid output",
			mutate:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: "invalid output format",
		},
		{
			name:        "parquet without file",
			mutate:      func(in *ConfigRawInput) { in.Output = "parquet" },
			expectError: "--output-file is required",
		},
		{
			name:        "precision too high",
			mutate:      func(in *ConfigRawInput) { in.Precision = 9 },
			expectError: "precision must be between 0 and 4",
		},
		{
			name:        "invalid color",
			mutate:      func(in *ConfigRawInput) { in.Color = "maybe" },
			expectError: "invalid --color value",
		},
		{
			name:        "horizon without matching labels",
			mutate:      func(in *ConfigRawInput) { in.Horizon = 12 },
			expectError: "12 data points",
		},
		{
			name: "duplicate quarter labels",
			mutate: func(in *ConfigRawInput) {
				in.Horizon = 2
				in.Quarters = []string{"2025 Q4", "2025 Q4"}
			},
			expectError: "duplicate quarter label",
		},
		{
			name:        "recent rows beyond horizon",
			mutate:      func(in *ConfigRawInput) { in.RecentRows = 21 },
			expectError: "recent-rows must be between 1 and 20",
		},
		{
			name: "layout rows collide",
			mutate: func(in *ConfigRawInput) {
				in.Layout = &schema.SheetLayout{
					QuarterAgo: schema.SeriesSpec{Row: 4, StartCol: 1},
					YearAgo:    schema.SeriesSpec{Row: 4, StartCol: 1},
				}
			},
			expectError: "cannot share a row",
		},
		{
			name:        "invalid history backend",
			mutate:      func(in *ConfigRawInput) { in.HistoryBackend = "redis" },
			expectError: "invalid history backend",
		},
		{
			name:        "mysql without connection string",
			mutate:      func(in *ConfigRawInput) { in.HistoryBackend = "mysql" },
			expectError: "history-db-connect is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRawInput()
			tt.mutate(input)
			err := ProcessAndValidate(&Config{}, input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestProcessAndValidateCustomShape(t *testing.T) {
	input := validRawInput()
	input.Horizon = 4
	input.RecentRows = 2
	input.Quarters = []string{"2025 Q1", "2025 Q2", "2025 Q3", "2025 Q4"}
	input.Layout = &schema.SheetLayout{
		QuarterAgo: schema.SeriesSpec{Row: 2, StartCol: 0},
		YearAgo:    schema.SeriesSpec{Row: 3, StartCol: 0},
	}
	input.Windows = []schema.FilterWindow{{Label: "All", From: 0, To: 3}}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, 4, cfg.Horizon)
	assert.Equal(t, 2, cfg.RecentRows)
	assert.Equal(t, 2, cfg.Layout.QuarterAgo.Row)
	assert.Equal(t, 0, cfg.Layout.QuarterAgo.StartCol)
	assert.Equal(t, 4, cfg.Layout.QuarterAgo.Length)
	assert.Equal(t, schema.QuarterAgoKey, cfg.Layout.QuarterAgo.Key)
	assert.Equal(t, input.Windows, cfg.LineChart.Windows)
}

func TestProcessAndValidateAnnotationOverride(t *testing.T) {
	y := -39.0
	input := validRawInput()
	input.Annotation = &schema.Annotation{Quarter: "2025 Q4", Y: &y}
	input.BarChart = &schema.BarChartConfig{YMin: -80, YMax: 40}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, "Business activity saw a sharp contraction in Q4 2025", cfg.LineChart.Annotation.Text)
	assert.Equal(t, -130, cfg.LineChart.Annotation.AY)
	require.NotNil(t, cfg.LineChart.Annotation.Y)
	assert.Equal(t, -39.0, *cfg.LineChart.Annotation.Y)
	assert.Equal(t, -80.0, cfg.BarChart.YMin)
	assert.Equal(t, 40.0, cfg.BarChart.YMax)
	assert.Equal(t, "Recent Quarter Comparison", cfg.BarChart.Title)
}

func TestConfigClone(t *testing.T) {
	input := validRawInput()
	input.Windows = []schema.FilterWindow{{Label: "All", From: 0, To: 19}}
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	clone := cfg.Clone()
	clone.Quarters[0] = "changed"
	clone.LineChart.Windows[0].To = 1
	assert.Equal(t, "2021 Q1", cfg.Quarters[0])
	assert.Equal(t, 19, cfg.LineChart.Windows[0].To)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		conn    string
		wantErr bool
	}{
		{"sqlite needs nothing", schema.SQLiteBackend, "", false},
		{"none needs nothing", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/activity", false},
		{"mysql without tcp", schema.MySQLBackend, "user:pass@localhost/activity", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost port=5432 dbname=activity", false},
		{"postgres without dbname", schema.PostgreSQLBackend, "host=localhost", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseAlignPolicy(t *testing.T) {
	policy, err := ParseAlignPolicy("")
	require.NoError(t, err)
	assert.Equal(t, schema.AlignStrict, policy)

	policy, err = ParseAlignPolicy("PAD")
	require.NoError(t, err)
	assert.Equal(t, schema.AlignPad, policy)

	_, err = ParseAlignPolicy("zip")
	assert.ErrorContains(t, err, "invalid align policy 'zip'")
}
