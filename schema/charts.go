package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// FilterWindow is a range-filter button over row positions [From, To], inclusive.
type FilterWindow struct {
	Label string `mapstructure:"label" json:"label"`
	From  int    `mapstructure:"from" json:"from"`
	To    int    `mapstructure:"to" json:"to"`
}

// Span returns the number of rows the window covers.
func (w FilterWindow) Span() int {
	return w.To - w.From + 1
}

// Contains reports whether row index i falls inside the window.
func (w FilterWindow) Contains(i int) bool {
	return i >= w.From && i <= w.To
}

// AllWindowLabel is the label of the window spanning the whole table.
const AllWindowLabel = "All"

// Annotation is the editorial callout on the line chart.
// Empty Quarter means the final quarter; nil Y means the final quarter-ago value.
type Annotation struct {
	Text    string   `mapstructure:"text" json:"text"`
	Quarter string   `mapstructure:"quarter" json:"quarter"`
	Y       *float64 `mapstructure:"y" json:"y,omitempty"`
	AX      int      `mapstructure:"ax" json:"ax"`
	AY      int      `mapstructure:"ay" json:"ay"`
}

// LineChartConfig declares the full-history line chart.
type LineChartConfig struct {
	Title      string         `mapstructure:"title" json:"title"`
	Subtitle   string         `mapstructure:"subtitle" json:"subtitle"`
	Windows    []FilterWindow `mapstructure:"windows" json:"windows"` // empty derives them from the table
	Annotation Annotation     `mapstructure:"annotation" json:"annotation"`
}

// BarChartConfig declares the recent-quarters grouped bar chart.
type BarChartConfig struct {
	Title    string  `mapstructure:"title" json:"title"`
	Subtitle string  `mapstructure:"subtitle" json:"subtitle"`
	YMin     float64 `mapstructure:"y_min" json:"y_min"`
	YMax     float64 `mapstructure:"y_max" json:"y_max"`
}

// yearsPerWindow is the width of each default range-filter bucket.
const yearsPerWindow = 2

// DefaultFilterWindows derives the range-filter buttons from the quarter
// labels of a built table: "All", then one button per two calendar years
// counted from the first label's year, e.g. 2021–2022, 2023–2024, 2025.
// Labels that are not "YYYY Qn" in ascending order yield only "All".
func DefaultFilterWindows(quarters []string) []FilterWindow {
	if len(quarters) == 0 {
		return nil
	}
	windows := []FilterWindow{{Label: AllWindowLabel, From: 0, To: len(quarters) - 1}}

	years := make([]int, len(quarters))
	for i, q := range quarters {
		year, ok := quarterYear(q)
		if !ok || (i > 0 && year < years[i-1]) {
			return windows
		}
		years[i] = year
	}

	first := years[0]
	for i := 0; i < len(years); {
		bucket := (years[i] - first) / yearsPerWindow
		j := i
		for j+1 < len(years) && (years[j+1]-first)/yearsPerWindow == bucket {
			j++
		}
		label := strconv.Itoa(years[i])
		if years[j] != years[i] {
			label = fmt.Sprintf("%d–%d", years[i], years[j])
		}
		windows = append(windows, FilterWindow{Label: label, From: i, To: j})
		i = j + 1
	}
	return windows
}

// quarterYear returns the year of a "YYYY Qn" label.
func quarterYear(label string) (int, bool) {
	year, quarter, ok := strings.Cut(label, " ")
	if !ok || len(quarter) != 2 || quarter[0] != 'Q' || quarter[1] < '1' || quarter[1] > '4' {
		return 0, false
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return 0, false
	}
	return y, true
}

// DefaultLineChartConfig returns the line chart as published.
func DefaultLineChartConfig() LineChartConfig {
	return LineChartConfig{
		Title:    "10th District Oil & Gas Business Activity",
		Subtitle: "Index score · Quarterly comparison",
		Annotation: Annotation{
			Text: "Business activity saw a sharp contraction in Q4 2025",
			AX:   0,
			AY:   -130,
		},
	}
}

// DefaultBarChartConfig returns the bar chart as published.
func DefaultBarChartConfig() BarChartConfig {
	return BarChartConfig{
		Title:    "Recent Quarter Comparison",
		Subtitle: "Last 8 quarters",
		YMin:     -60,
		YMax:     20,
	}
}
