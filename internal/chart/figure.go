// Package chart builds plotly figures for the activity table and writes them
// as standalone HTML documents.
package chart

import (
	"html"

	grob "github.com/MetalBlueberry/go-plotly/generated/v2.34.0/graph_objects"
	"github.com/MetalBlueberry/go-plotly/pkg/types"
	"github.com/tenthdistrict/activity/schema"
)

// Series colors shared by both charts.
const (
	QuarterAgoColor = "#1f4e79"
	YearAgoColor    = "#7f7f7f"
)

const indexAxisTitle = "Index Score"

// WindowRange returns the x-axis range, in category positions, that shows
// exactly the rows of w.
func WindowRange(w schema.FilterWindow) []float64 {
	return []float64{float64(w.From) - 0.5, float64(w.To) + 0.5}
}

func titleText(title, subtitle string) types.StringType {
	text := html.EscapeString(title)
	if subtitle != "" {
		text += "<br><span style='font-size:14px;color:#555'>" + html.EscapeString(subtitle) + "</span>"
	}
	return types.S(text)
}

func zeroBaseline() grob.LayoutShape {
	return grob.LayoutShape{
		Type: grob.LayoutShapeTypeLine,
		Xref: grob.LayoutShapeXrefPaper,
		Yref: "y",
		X0:   0,
		X1:   1,
		Y0:   0,
		Y1:   0,
		Line: &grob.LayoutShapeLine{Color: "black", Dash: "dot", Width: types.N(1)},
	}
}

// whiteXAxis and whiteYAxis mirror plotly's simple_white axis styling.
func whiteXAxis(title string) *grob.LayoutXaxis {
	return &grob.LayoutXaxis{
		Title:     &grob.LayoutXaxisTitle{Text: types.S(title)},
		Showline:  types.True,
		Showgrid:  types.False,
		Linecolor: "black",
		Ticks:     grob.LayoutXaxisTicksOutside,
	}
}

func whiteYAxis(title string) *grob.LayoutYaxis {
	return &grob.LayoutYaxis{
		Title:     &grob.LayoutYaxisTitle{Text: types.S(title)},
		Showline:  types.True,
		Showgrid:  types.False,
		Linecolor: "black",
		Ticks:     grob.LayoutYaxisTicksOutside,
	}
}

func plotConfig() *grob.Config {
	return &grob.Config{Responsive: types.True, Displaylogo: types.False}
}

func optionalValues(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i, v := range values {
		out[i] = schema.OptionalValue(v)
	}
	return out
}
