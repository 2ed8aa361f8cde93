package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tenthdistrict/activity/schema"
)

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"-10", -10, true},
		{" 3.5 ", 3.5, true},
		{"+4", 4, true},
		{"1e2", 100, true},
		{"", 0, false},
		{"   ", 0, false},
		{"n/a", 0, false},
		{"Note: preliminary", 0, false},
		{"NaN", 0, false},
		{"inf", 0, false},
		{"1,234", 0, false},
		{"-12,345.5", 0, false},
		{"1_000", 0, false},
		{"0x1p4", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseNumeric(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestExtractCellsFullRow(t *testing.T) {
	row := []string{"Vs. a quarter ago"}
	want := make([]float64, 20)
	for i := range 20 {
		want[i] = float64(i*5 - 10)
		row = append(row, formatInt(i*5-10))
	}
	grid := schema.RawGrid{Rows: make([][]string, 10)}
	grid.Rows[8] = row

	series := ExtractCells(grid, schema.DefaultSheetLayout().QuarterAgo)
	assert.Equal(t, schema.QuarterAgoKey, series.Key)
	assert.Equal(t, 8, series.Row)
	require.Len(t, series.Cells, 20)
	assert.Equal(t, 1, series.Cells[0].Column)
	assert.Equal(t, want, series.Values(20))
	assert.Empty(t, series.Dropped())
}

func TestExtractCellsDropsNonNumeric(t *testing.T) {
	grid := schema.RawGrid{Rows: make([][]string, 10)}
	grid.Rows[9] = []string{"Vs. a year ago", "-20", "", "-15", "pending", "7", "see note"}

	series := ExtractCells(grid, schema.DefaultSheetLayout().YearAgo)
	assert.Equal(t, []float64{-20, -15, 7}, series.Values(20))

	dropped := series.Dropped()
	require.Len(t, dropped, 3)
	assert.Equal(t, 2, dropped[0].Column)
	assert.Equal(t, "pending", dropped[1].Raw)
	assert.Equal(t, 6, dropped[2].Column)
}

func TestExtractCellsCapsAndMissingRow(t *testing.T) {
	row := []string{"label"}
	for i := range 25 {
		row = append(row, formatInt(i))
	}
	grid := schema.RawGrid{Rows: [][]string{row}}
	spec := schema.SeriesSpec{Key: schema.QuarterAgoKey, Row: 0, StartCol: 1, Length: 20}

	series := ExtractCells(grid, spec)
	assert.Equal(t, 25, series.ParsedCount())
	values := series.Values(spec.Length)
	require.Len(t, values, 20)
	assert.Equal(t, 19.0, values[19])

	missing := ExtractCells(grid, schema.SeriesSpec{Row: 5, StartCol: 1})
	assert.Empty(t, missing.Cells)
}
