package chart

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tenthdistrict/activity/internal/contract"
	"github.com/tenthdistrict/activity/schema"
)

var figurePattern = regexp.MustCompile(`var figure = (.*);\n`)

func TestRenderHTMLFromCDN(t *testing.T) {
	fig, err := BuildBarFigure(fullTable().Recent(8), schema.DefaultBarChartConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, fig, DocumentOptions{Title: "Recent Quarter Comparison", PlotlySrc: schema.DefaultPlotlySrc}))
	out := buf.String()

	assert.Contains(t, out, "<title>Recent Quarter Comparison</title>")
	assert.Contains(t, out, `<script src="https://cdn.plot.ly/plotly-2.34.0.min.js"`)
	assert.Contains(t, out, `<div id="activity-chart"`)
	assert.Contains(t, out, "Plotly.newPlot(")

	match := figurePattern.FindStringSubmatch(out)
	require.Len(t, match, 2)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(match[1]), &decoded))
	assert.Equal(t, figureJSON(t, fig), decoded)
	assert.Equal(t, "group", obj(t, decoded["layout"])["barmode"])
}

func TestRenderHTMLDefaultsToSchemaCDN(t *testing.T) {
	fig, err := BuildBarFigure(fullTable().Recent(8), schema.DefaultBarChartConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, fig, DocumentOptions{}))
	assert.Contains(t, buf.String(), `<script src="`+fig.Info().Cdn+`"`)
	assert.Equal(t, schema.DefaultPlotlySrc, fig.Info().Cdn)
}

func TestRenderHTMLInlinesPlotly(t *testing.T) {
	jsPath := filepath.Join(t.TempDir(), "plotly.min.js")
	require.NoError(t, os.WriteFile(jsPath, []byte(`window.Plotly={newPlot:function(){}};"</script>";`), 0o644))

	fig, err := BuildLineFigure(fullTable(), schema.DefaultLineChartConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, fig, DocumentOptions{PlotlyJSFile: jsPath, PlotlySrc: schema.DefaultPlotlySrc}))
	out := buf.String()
	assert.Contains(t, out, "window.Plotly={newPlot:function(){}};")
	assert.Contains(t, out, `"<\/script>"`)
	assert.NotContains(t, out, "cdn.plot.ly")
}

func TestRenderHTMLErrors(t *testing.T) {
	fig, err := BuildBarFigure(fullTable().Recent(8), schema.DefaultBarChartConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.Error(t, RenderHTML(&buf, nil, DocumentOptions{PlotlySrc: schema.DefaultPlotlySrc}))

	err = RenderHTML(&buf, fig, DocumentOptions{PlotlyJSFile: filepath.Join(t.TempDir(), "absent.js")})
	var readErr *contract.ReadError
	assert.ErrorAs(t, err, &readErr)
}

func TestWriteHTML(t *testing.T) {
	dir := t.TempDir()
	fig, err := BuildLineFigure(fullTable(), schema.DefaultLineChartConfig())
	require.NoError(t, err)
	opts := DocumentOptions{Title: "line", PlotlySrc: schema.DefaultPlotlySrc}

	path := filepath.Join(dir, "plotly_chart.html")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))
	require.NoError(t, WriteHTML(path, fig, opts))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<!DOCTYPE html>")

	missing := filepath.Join(dir, "web", "plotly_chart.html")
	err = WriteHTML(missing, fig, opts)
	var writeErr *contract.WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, missing, writeErr.Path)
}
