//go:build basic

package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildDefaults runs activity with no arguments against the default layout.
func TestBuildDefaults(t *testing.T) {
	dir := newWorkspace(t)

	out, err := runActivityCommand(t, dir, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "Built 20 quarters")

	csvData, err := os.ReadFile(filepath.Join(dir, "data", "processed", "oil_gas_activity.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csvData)), "\n")
	require.Len(t, lines, 21)
	assert.Equal(t, "Quarter,Vs Quarter Ago,Vs Year Ago", lines[0])
	assert.Equal(t, "2021 Q1,-60,-30", lines[1])
	assert.Equal(t, "2025 Q4,-39,27", lines[20])

	for _, name := range []string{"plotly_chart.html", "plotly_bar_chart.html"} {
		html, err := os.ReadFile(filepath.Join(dir, "web", name))
		require.NoError(t, err, name)
		assert.Contains(t, string(html), "Plotly.newPlot(")
	}
}

// TestBuildFailures checks that configuration and IO errors exit non-zero.
func TestBuildFailures(t *testing.T) {
	dir := newWorkspace(t)

	out, err := runActivityCommand(t, dir, nil, "build", "--align", "zip")
	require.Error(t, err)
	assert.Contains(t, out, "invalid align policy")

	require.NoError(t, os.RemoveAll(filepath.Join(dir, "web")))
	out, err = runActivityCommand(t, dir, nil, "build")
	require.Error(t, err)
	assert.Contains(t, out, "cannot write")

	out, err = runActivityCommand(t, dir, nil, "build", "--input", "missing.xlsx")
	require.Error(t, err)
	assert.Contains(t, out, "cannot read missing.xlsx")
}

// TestTableAndInspect checks the read-only commands and environment overrides.
func TestTableAndInspect(t *testing.T) {
	dir := newWorkspace(t)

	out, err := runActivityCommand(t, dir, []string{"ACTIVITY_OUTPUT=csv"}, "table", "--recent")
	require.NoError(t, err)
	assert.Contains(t, out, "position,quarter,vs_quarter_ago,vs_year_ago,label")
	assert.Contains(t, out, "12,2024 Q1,0.0,6.0,Flat")
	assert.NoFileExists(t, filepath.Join(dir, "data", "processed", "oil_gas_activity.csv"))

	out, err = runActivityCommand(t, dir, nil, "inspect", "--color", "no")
	require.NoError(t, err)
	assert.Contains(t, out, "20 parsed, 0 dropped, 20 kept")

	out, err = runActivityCommand(t, dir, nil, "inspect", "--recent", "--color", "no")
	require.NoError(t, err)
	assert.Contains(t, out, "8 parsed, 0 dropped, 8 kept")
}

// TestConfigFile checks that .activity in the working directory is honored.
func TestConfigFile(t *testing.T) {
	dir := newWorkspace(t)
	config := `table-file: data/processed/custom.csv
recent-rows: 4
bar_chart:
  title: Last Year
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".activity.yaml"), []byte(config), 0o644))

	_, err := runActivityCommand(t, dir, nil, "build")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "data", "processed", "custom.csv"))

	bar, err := os.ReadFile(filepath.Join(dir, "web", "plotly_bar_chart.html"))
	require.NoError(t, err)
	assert.Contains(t, string(bar), "<title>Last Year</title>")
}

// TestSQLiteHistory records builds in a SQLite ledger and exports it.
func TestSQLiteHistory(t *testing.T) {
	dir := newWorkspace(t)
	env := []string{
		"ACTIVITY_HISTORY_BACKEND=sqlite",
		"ACTIVITY_HISTORY_DB_CONNECT=" + filepath.Join(dir, "history.db"),
	}

	_, err := runActivityCommand(t, dir, env, "history", "migrate")
	require.NoError(t, err)
	for range 2 {
		_, err = runActivityCommand(t, dir, env, "build")
		require.NoError(t, err)
	}

	out, err := runActivityCommand(t, dir, env, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlite")
	assert.Contains(t, out, "2")

	_, err = runActivityCommand(t, dir, env, "history", "export", "--output-file", filepath.Join(dir, "ledger"))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "ledger.runs.parquet"))
	assert.FileExists(t, filepath.Join(dir, "ledger.run_rows.parquet"))

	_, err = runActivityCommand(t, dir, env, "history", "clear")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "history.db"))
}
