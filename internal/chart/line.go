package chart

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	grob "github.com/MetalBlueberry/go-plotly/generated/v2.34.0/graph_objects"
	"github.com/MetalBlueberry/go-plotly/pkg/types"
	"github.com/tenthdistrict/activity/internal/contract"
	"github.com/tenthdistrict/activity/schema"
)

// BuildLineFigure builds the full-history line chart with range-filter buttons.
func BuildLineFigure(table schema.ActivityTable, cfg schema.LineChartConfig) (*grob.Fig, error) {
	if table.Len() == 0 {
		return nil, errors.New("line chart needs at least one quarter")
	}
	quarters := table.Quarters()
	windows := ResolveWindows(cfg.Windows, quarters)
	if err := ValidateWindows(windows, table.Len()); err != nil {
		return nil, err
	}

	tickText := make([]string, len(quarters))
	for i, q := range quarters {
		tickText[i] = strings.Replace(q, " ", "<br>", 1)
	}

	xAxis := whiteXAxis(schema.QuarterColumn)
	xAxis.Tickmode = grob.LayoutXaxisTickmodeArray
	xAxis.Tickvals = types.DataArray(quarters)
	xAxis.Ticktext = types.DataArray(tickText)
	xAxis.Tickfont = &grob.LayoutXaxisTickfont{Size: types.N(11)}

	mode := grob.ScatterModeLines + "+" + grob.ScatterModeMarkers
	fig := &grob.Fig{
		Data: []types.Trace{
			&grob.Scatter{
				Name: types.S(schema.QuarterAgoTrace),
				Mode: mode,
				X:    types.DataArray(quarters),
				Y:    types.DataArray(optionalValues(table.QuarterAgo())),
				Line: &grob.ScatterLine{Color: QuarterAgoColor, Width: types.N(3)},
			},
			&grob.Scatter{
				Name: types.S(schema.YearAgoTrace),
				Mode: mode,
				X:    types.DataArray(quarters),
				Y:    types.DataArray(optionalValues(table.YearAgo())),
				Line: &grob.ScatterLine{Color: YearAgoColor, Width: types.N(3), Dash: "dash"},
			},
		},
		Layout: &grob.Layout{
			Title: &grob.LayoutTitle{
				Text:    titleText(cfg.Title, cfg.Subtitle),
				X:       types.N(0.01),
				Y:       types.N(0.96),
				Xanchor: grob.LayoutTitleXanchorLeft,
				Yanchor: grob.LayoutTitleYanchorTop,
			},
			Margin:    &grob.LayoutMargin{T: types.N(120), L: types.N(60), R: types.N(40), B: types.N(80)},
			Xaxis:     xAxis,
			Yaxis:     whiteYAxis(indexAxisTitle),
			Hovermode: grob.LayoutHovermodeXUnified,
			Legend: &grob.LayoutLegend{
				Orientation: grob.LayoutLegendOrientationH,
				X:           types.N(0),
				Y:           types.N(1.02),
				Xanchor:     grob.LayoutLegendXanchorLeft,
				Yanchor:     grob.LayoutLegendYanchorBottom,
			},
			Shapes:       []grob.LayoutShape{zeroBaseline()},
			PaperBgcolor: "white",
			PlotBgcolor:  "white",
		},
		Config: plotConfig(),
	}

	if len(windows) > 0 {
		fig.Layout.Updatemenus = []grob.LayoutUpdatemenu{{
			Type:        grob.LayoutUpdatemenuTypeButtons,
			Direction:   grob.LayoutUpdatemenuDirectionRight,
			X:           types.N(0.98),
			Y:           types.N(0.98),
			Xanchor:     grob.LayoutUpdatemenuXanchorRight,
			Yanchor:     grob.LayoutUpdatemenuYanchorTop,
			Bgcolor:     "rgba(255,255,255,0.8)",
			Bordercolor: "#ccc",
			Borderwidth: types.N(1),
			Buttons:     filterButtons(windows),
		}}
	}

	note, ok, err := resolveAnnotation(table, cfg.Annotation)
	if err != nil {
		return nil, err
	}
	if ok {
		fig.Layout.Annotations = []grob.LayoutAnnotation{note}
	}
	return fig, nil
}

// resolveAnnotation anchors the callout. An empty quarter means the final
// quarter and a nil y means the quarter-ago value at that quarter.
func resolveAnnotation(table schema.ActivityTable, a schema.Annotation) (grob.LayoutAnnotation, bool, error) {
	if a.Text == "" {
		return grob.LayoutAnnotation{}, false, nil
	}

	quarters := table.Quarters()
	idx := len(quarters) - 1
	if a.Quarter != "" {
		idx = slices.Index(quarters, a.Quarter)
		if idx < 0 {
			return grob.LayoutAnnotation{}, false, fmt.Errorf("annotation quarter %q is not in the table", a.Quarter)
		}
	}

	y := table.Rows[idx].VsQuarterAgo
	if a.Y != nil {
		y = *a.Y
	}
	if schema.IsMissing(y) {
		contract.LogWarn(fmt.Sprintf("Skipping annotation: no value at %s", quarters[idx]), nil)
		return grob.LayoutAnnotation{}, false, nil
	}

	return grob.LayoutAnnotation{
		X:           quarters[idx],
		Y:           y,
		Text:        types.S(a.Text),
		Showarrow:   types.True,
		Arrowhead:   types.I(2),
		Arrowsize:   types.N(1),
		Arrowwidth:  types.N(1),
		Arrowcolor:  "#999",
		Ax:          a.AX,
		Ay:          a.AY,
		Bgcolor:     "rgba(255,255,255,0.95)",
		Bordercolor: "#ddd",
		Borderwidth: types.N(1),
		Font:        &grob.LayoutAnnotationFont{Size: types.N(12), Color: "#333"},
	}, true, nil
}
