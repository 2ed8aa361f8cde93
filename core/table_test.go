package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tenthdistrict/activity/schema"
)

func series(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range n {
		out[i] = start + float64(i)*step
	}
	return out
}

func TestBuildTableStrict(t *testing.T) {
	table, err := BuildTable(schema.QuarterLabels, series(20, -10, 5), series(20, -20, 5), schema.AlignStrict)
	require.NoError(t, err)
	require.Equal(t, 20, table.Len())
	assert.Equal(t, schema.ActivityRow{Quarter: "2021 Q1", VsQuarterAgo: -10, VsYearAgo: -20}, table.Rows[0])
	assert.Equal(t, "2025 Q4", table.Rows[19].Quarter)

	recent := table.Recent(schema.DefaultRecentRows)
	require.Equal(t, 8, recent.Len())
	assert.Equal(t, table.Rows[12], recent.Rows[0])
	assert.Equal(t, "2024 Q1", recent.Rows[0].Quarter)
	assert.Equal(t, table.Rows[12:], recent.Rows)
}

func TestBuildTableStrictShortSeries(t *testing.T) {
	_, err := BuildTable(schema.QuarterLabels, series(18, -10, 5), series(20, -20, 5), schema.AlignStrict)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLengthMismatch)
	assert.Contains(t, err.Error(), "vs_quarter_ago has 18 values for 20 quarters")

	_, err = BuildTable(schema.QuarterLabels, series(20, 0, 1), series(21, 0, 1), "")
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestBuildTablePad(t *testing.T) {
	table, err := BuildTable(schema.QuarterLabels, series(18, -10, 5), series(20, -20, 5), schema.AlignPad)
	require.NoError(t, err)
	require.Equal(t, 20, table.Len())
	assert.Equal(t, 75.0, table.Rows[17].VsQuarterAgo)
	assert.True(t, schema.IsMissing(table.Rows[18].VsQuarterAgo))
	assert.True(t, schema.IsMissing(table.Rows[19].VsQuarterAgo))
	assert.Equal(t, 75.0, table.Rows[19].VsYearAgo)

	_, err = BuildTable(schema.QuarterLabels, series(22, 0, 1), series(20, 0, 1), schema.AlignPad)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestBuildTableTruncate(t *testing.T) {
	table, err := BuildTable(schema.QuarterLabels, series(18, -10, 5), series(20, -20, 5), schema.AlignTruncate)
	require.NoError(t, err)
	require.Equal(t, 18, table.Len())
	assert.Equal(t, "2025 Q2", table.Rows[17].Quarter)
	assert.Equal(t, 75.0, table.Rows[17].VsQuarterAgo)
}

func TestBuildTableInvalid(t *testing.T) {
	_, err := BuildTable(nil, nil, nil, schema.AlignStrict)
	assert.Error(t, err)

	_, err = BuildTable(schema.QuarterLabels, series(20, 0, 1), series(20, 0, 1), "zip")
	assert.Error(t, err)
}
