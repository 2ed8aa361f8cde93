package outwriter

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tenthdistrict/activity/internal/contract"
	"github.com/tenthdistrict/activity/schema"
)

func testConfig(t *testing.T, output schema.OutputMode) *contract.Config {
	t.Helper()
	return &contract.Config{
		InputPath:  "report.xlsx",
		Layout:     schema.DefaultSheetLayout(),
		Align:      schema.AlignStrict,
		Output:     output,
		OutputFile: filepath.Join(t.TempDir(), "out."+string(output)),
		Precision:  1,
		Width:      120,
	}
}

func recentTable() schema.ActivityTable {
	return fullTable().Recent(schema.DefaultRecentRows)
}

func TestPrintTableJSON(t *testing.T) {
	cfg := testConfig(t, schema.JSONOut)
	require.NoError(t, PrintTable(recentTable(), 12, cfg, time.Second))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 8)
	assert.Equal(t, float64(12), rows[0]["position"])
	assert.Equal(t, "2024 Q1", rows[0]["quarter"])
	assert.Equal(t, schema.ExpansionLabel, rows[0]["label"])
}

func TestPrintTableCSV(t *testing.T) {
	cfg := testConfig(t, schema.CSVOut)
	table := schema.ActivityTable{Rows: []schema.ActivityRow{
		{Quarter: "2025 Q4", VsQuarterAgo: -39.04, VsYearAgo: math.NaN()},
	}}
	require.NoError(t, PrintTable(table, 19, cfg, time.Second))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, "position,quarter,vs_quarter_ago,vs_year_ago,label\n19,2025 Q4,-39.0,,Contraction\n", string(data))
}

func TestPrintTableText(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)
	require.NoError(t, PrintTable(fullTable(), 0, cfg, 1500*time.Millisecond))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "2021 Q1")
	assert.Contains(t, out, "2025 Q4")
	assert.Contains(t, out, "Showing 20 quarters (2 contracting vs. a quarter ago)")
	assert.Contains(t, out, "Align policy: strict")
}

func TestPrintTableParquet(t *testing.T) {
	cfg := testConfig(t, schema.ParquetOut)
	require.NoError(t, PrintTable(recentTable(), 12, cfg, time.Second))

	info, err := os.Stat(cfg.OutputFile)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	cfg.OutputFile = ""
	assert.Error(t, PrintTable(recentTable(), 12, cfg, time.Second))
}

func TestPrintExtractionReport(t *testing.T) {
	series := []schema.CellSeries{
		{Key: schema.QuarterAgoKey, Row: 8, Cells: []schema.CellResult{
			{Column: 1, Raw: "-10", Status: schema.CellParsed, Value: -10},
			{Column: 2, Raw: "Note: survey revised in 2024 to include additional respondents", Status: schema.CellUnparseable},
		}},
		{Key: schema.YearAgoKey, Row: 9, Cells: []schema.CellResult{
			{Column: 1, Raw: "-20", Status: schema.CellParsed, Value: -20},
		}},
	}

	t.Run("text", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut)
		cfg.Width = 70
		require.NoError(t, PrintExtractionReport(series, cfg, time.Second))
		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		out := string(data)
		assert.Contains(t, out, "vs_quarter_ago (row 8)")
		assert.Contains(t, out, "B9")
		assert.Contains(t, out, "C9")
		assert.Contains(t, out, "1 parsed, 1 dropped, 1 kept")
		assert.NotContains(t, out, "additional respondents")
	})

	t.Run("csv", func(t *testing.T) {
		cfg := testConfig(t, schema.CSVOut)
		require.NoError(t, PrintExtractionReport(series, cfg, time.Second))
		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "vs_quarter_ago,8,1,B9,-10,parsed,-10", lines[1])
		assert.Equal(t, "vs_year_ago,9,1,B10,-20,parsed,-20", lines[3])
	})

	t.Run("json", func(t *testing.T) {
		cfg := testConfig(t, schema.JSONOut)
		require.NoError(t, PrintExtractionReport(series, cfg, time.Second))
		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		var reports []SeriesReport
		require.NoError(t, json.Unmarshal(data, &reports))
		require.Len(t, reports, 2)
		assert.Equal(t, 1, reports[0].Dropped)
		assert.Equal(t, schema.CellUnparseable, reports[0].Cells[1].Status)
	})

	t.Run("parquet", func(t *testing.T) {
		cfg := testConfig(t, schema.ParquetOut)
		assert.Error(t, PrintExtractionReport(series, cfg, time.Second))
	})
}

func TestCellName(t *testing.T) {
	assert.Equal(t, "A1", cellName(0, 0))
	assert.Equal(t, "U10", cellName(9, 20))
}
