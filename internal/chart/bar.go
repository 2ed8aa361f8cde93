package chart

import (
	"errors"
	"fmt"

	grob "github.com/MetalBlueberry/go-plotly/generated/v2.34.0/graph_objects"
	"github.com/MetalBlueberry/go-plotly/pkg/types"
	"github.com/tenthdistrict/activity/schema"
)

// BuildBarFigure builds the grouped bar chart over the recent quarters.
func BuildBarFigure(recent schema.ActivityTable, cfg schema.BarChartConfig) (*grob.Fig, error) {
	if recent.Len() == 0 {
		return nil, errors.New("bar chart needs at least one quarter")
	}
	if cfg.YMin >= cfg.YMax {
		return nil, fmt.Errorf("bar chart y range [%g, %g] is empty", cfg.YMin, cfg.YMax)
	}

	quarters := recent.Quarters()
	yAxis := whiteYAxis(indexAxisTitle)
	yAxis.Range = []float64{cfg.YMin, cfg.YMax}
	yAxis.Zeroline = types.True
	yAxis.Zerolinecolor = "black"

	return &grob.Fig{
		Data: []types.Trace{
			&grob.Bar{
				Name:   types.S(schema.QuarterAgoTrace),
				X:      types.DataArray(quarters),
				Y:      types.DataArray(optionalValues(recent.QuarterAgo())),
				Marker: &grob.BarMarker{Color: types.ArrayOKValue(types.UseColor(QuarterAgoColor))},
			},
			&grob.Bar{
				Name:   types.S(schema.YearAgoTrace),
				X:      types.DataArray(quarters),
				Y:      types.DataArray(optionalValues(recent.YearAgo())),
				Marker: &grob.BarMarker{Color: types.ArrayOKValue(types.UseColor(YearAgoColor))},
			},
		},
		Layout: &grob.Layout{
			Title: &grob.LayoutTitle{
				Text:    titleText(cfg.Title, cfg.Subtitle),
				X:       types.N(0),
				Xanchor: grob.LayoutTitleXanchorLeft,
				Pad:     &grob.LayoutTitlePad{B: types.N(20)},
			},
			Margin:  &grob.LayoutMargin{T: types.N(70), L: types.N(60), R: types.N(40), B: types.N(60)},
			Xaxis:   whiteXAxis(schema.QuarterColumn),
			Yaxis:   yAxis,
			Barmode: grob.BarBarmodeGroup,
			Legend: &grob.LayoutLegend{
				Orientation: grob.LayoutLegendOrientationH,
				X:           types.N(0.80),
				Y:           types.N(0.98),
				Xanchor:     grob.LayoutLegendXanchorLeft,
				Yanchor:     grob.LayoutLegendYanchorBottom,
				Font:        &grob.LayoutLegendFont{Size: types.N(12)},
			},
			Shapes:       []grob.LayoutShape{zeroBaseline()},
			PaperBgcolor: "white",
			PlotBgcolor:  "white",
		},
		Config: plotConfig(),
	}, nil
}
