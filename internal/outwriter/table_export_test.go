package outwriter

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tenthdistrict/activity/internal/contract"
	"github.com/tenthdistrict/activity/schema"
)

func fullTable() schema.ActivityTable {
	rows := make([]schema.ActivityRow, len(schema.QuarterLabels))
	for i, q := range schema.QuarterLabels {
		rows[i] = schema.ActivityRow{
			Quarter:      q,
			VsQuarterAgo: float64(i*5-10) + 0.5*float64(i%2),
			VsYearAgo:    float64(i*5 - 20),
		}
	}
	return schema.ActivityTable{Rows: rows}
}

func TestExportTableCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oil_gas_activity.csv")
	table := fullTable()

	require.NoError(t, ExportTableCSV(path, table))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 21)
	assert.Equal(t, "Quarter,Vs Quarter Ago,Vs Year Ago", lines[0])
	assert.Equal(t, "2021 Q1,-10,-20", lines[1])
	assert.Equal(t, "2021 Q2,-4.5,-15", lines[2])

	got, err := ReadTableCSV(path)
	require.NoError(t, err)
	assert.Equal(t, table, got)
}

func TestExportTableCSVMissingValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "padded.csv")
	table := schema.ActivityTable{Rows: []schema.ActivityRow{
		{Quarter: "2025 Q3", VsQuarterAgo: 0.30000000000000004, VsYearAgo: -6},
		{Quarter: "2025 Q4", VsQuarterAgo: math.NaN(), VsYearAgo: -39},
	}}
	require.NoError(t, ExportTableCSV(path, table))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2025 Q4,,-39\n")

	got, err := ReadTableCSV(path)
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, 0.30000000000000004, got.Rows[0].VsQuarterAgo)
	assert.True(t, schema.IsMissing(got.Rows[1].VsQuarterAgo))
}

func TestExportTableCSVOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than the table\n"), 0o644))

	table := schema.ActivityTable{Rows: []schema.ActivityRow{{Quarter: "2025 Q4", VsQuarterAgo: -39, VsYearAgo: -30}}}
	require.NoError(t, ExportTableCSV(path, table))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Quarter,Vs Quarter Ago,Vs Year Ago\n2025 Q4,-39,-30\n", string(data))
}

func TestExportTableCSVMissingDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "processed", "table.csv")

	err := ExportTableCSV(path, fullTable())
	var writeErr *contract.WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, path, writeErr.Path)

	_, statErr := os.Stat(filepath.Join(dir, "processed"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestReadTableCSVErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadTableCSV(filepath.Join(dir, "absent.csv"))
	var readErr *contract.ReadError
	require.ErrorAs(t, err, &readErr)

	badHeader := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(badHeader, []byte("a,b,c\n"), 0o644))
	_, err = ReadTableCSV(badHeader)
	assert.ErrorContains(t, err, "unexpected header")

	badValue := filepath.Join(dir, "value.csv")
	require.NoError(t, os.WriteFile(badValue, []byte("Quarter,Vs Quarter Ago,Vs Year Ago\n2021 Q1,abc,1\n"), 0o644))
	_, err = ReadTableCSV(badValue)
	assert.ErrorContains(t, err, "2021 Q1")
}
