package chart

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/tenthdistrict/activity/internal/contract"
	"github.com/tenthdistrict/activity/schema"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Snapshot dimensions in pixels.
const (
	SnapshotWidth  = 1200
	SnapshotHeight = 600
)

// WriteSnapshotPNG renders a static PNG of the line chart to path.
func WriteSnapshotPNG(path string, table schema.ActivityTable, title string) error {
	var buf bytes.Buffer
	if err := RenderSnapshot(&buf, table, title); err != nil {
		return fmt.Errorf("render snapshot: %w", err)
	}

	file, err := contract.CreateOutputFile(path)
	if err != nil {
		return err
	}
	if _, err := file.Write(buf.Bytes()); err != nil {
		_ = file.Close()
		return &contract.WriteError{Path: path, Err: err}
	}
	if err := file.Close(); err != nil {
		return &contract.WriteError{Path: path, Err: err}
	}
	return nil
}

// RenderSnapshot draws both series as PNG into buf.
// Missing values are left out of the lines.
func RenderSnapshot(buf *bytes.Buffer, table schema.ActivityTable, title string) error {
	if table.Len() < 2 {
		return errors.New("snapshot needs at least two quarters")
	}

	qoq := snapshotSeries(schema.QuarterAgoTrace, table.QuarterAgo(), gochart.Style{
		StrokeColor: drawing.ColorFromHex(QuarterAgoColor),
		StrokeWidth: 3,
		DotColor:    drawing.ColorFromHex(QuarterAgoColor),
		DotWidth:    3,
	})
	yoy := snapshotSeries(schema.YearAgoTrace, table.YearAgo(), gochart.Style{
		StrokeColor:     drawing.ColorFromHex(YearAgoColor),
		StrokeWidth:     3,
		StrokeDashArray: []float64{8, 4},
		DotColor:        drawing.ColorFromHex(YearAgoColor),
		DotWidth:        3,
	})

	graph := gochart.Chart{
		Title:  title,
		Width:  SnapshotWidth,
		Height: SnapshotHeight,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: gochart.XAxis{
			Name:  schema.QuarterColumn,
			Style: gochart.Shown(),
			Ticks: snapshotTicks(table.Quarters()),
		},
		YAxis: gochart.YAxis{
			Name:           "Index Score",
			Style:          gochart.Shown(),
			GridMajorStyle: gochart.Hidden(),
			GridMinorStyle: gochart.Hidden(),
			Zero: gochart.GridLine{
				Value: 0,
				Style: gochart.Style{
					StrokeColor:     drawing.ColorBlack,
					StrokeWidth:     1,
					StrokeDashArray: []float64{2, 3},
				},
			},
		},
		Series: []gochart.Series{qoq, yoy},
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}

	return graph.Render(gochart.PNG, buf)
}

func snapshotSeries(name string, values []float64, style gochart.Style) gochart.ContinuousSeries {
	s := gochart.ContinuousSeries{Name: name, Style: style}
	for i, v := range values {
		if schema.IsMissing(v) {
			continue
		}
		s.XValues = append(s.XValues, float64(i))
		s.YValues = append(s.YValues, v)
	}
	return s
}

// snapshotTicks labels the first quarter of each year, or every quarter for short tables.
func snapshotTicks(quarters []string) []gochart.Tick {
	var ticks []gochart.Tick
	for i, q := range quarters {
		if len(quarters) <= 8 || i == 0 || strings.HasSuffix(q, "Q1") {
			ticks = append(ticks, gochart.Tick{Value: float64(i), Label: q})
		}
	}
	return ticks
}
