package schema

import (
	"encoding/json"
	"math"
)

// ActivityRow is one quarter of the activity table.
// Missing values (padding) are stored as NaN.
type ActivityRow struct {
	Quarter      string
	VsQuarterAgo float64
	VsYearAgo    float64
}

type activityRowJSON struct {
	Quarter      string   `json:"quarter"`
	VsQuarterAgo *float64 `json:"vs_quarter_ago"`
	VsYearAgo    *float64 `json:"vs_year_ago"`
}

// MarshalJSON encodes missing values as null.
func (r ActivityRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(activityRowJSON{
		Quarter:      r.Quarter,
		VsQuarterAgo: OptionalValue(r.VsQuarterAgo),
		VsYearAgo:    OptionalValue(r.VsYearAgo),
	})
}

// UnmarshalJSON decodes null values as NaN.
func (r *ActivityRow) UnmarshalJSON(data []byte) error {
	var raw activityRowJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Quarter = raw.Quarter
	r.VsQuarterAgo = FromOptional(raw.VsQuarterAgo)
	r.VsYearAgo = FromOptional(raw.VsYearAgo)
	return nil
}

// ActivityTable is the row-aligned table of quarters and both series.
type ActivityTable struct {
	Rows []ActivityRow `json:"rows"`
}

// Len returns the number of rows.
func (t ActivityTable) Len() int {
	return len(t.Rows)
}

// Quarters returns the quarter column.
func (t ActivityTable) Quarters() []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Quarter
	}
	return out
}

// QuarterAgo returns the "vs. a quarter ago" column.
func (t ActivityTable) QuarterAgo() []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.VsQuarterAgo
	}
	return out
}

// YearAgo returns the "vs. a year ago" column.
func (t ActivityTable) YearAgo() []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.VsYearAgo
	}
	return out
}

// Recent returns a copy of the trailing n rows in table order.
// The whole table is returned when it has fewer than n rows.
func (t ActivityTable) Recent(n int) ActivityTable {
	if n < 0 {
		n = 0
	}
	start := max(len(t.Rows)-n, 0)
	rows := make([]ActivityRow, len(t.Rows)-start)
	copy(rows, t.Rows[start:])
	return ActivityTable{Rows: rows}
}

// Last returns the final row and whether the table is non-empty.
func (t ActivityTable) Last() (ActivityRow, bool) {
	if len(t.Rows) == 0 {
		return ActivityRow{}, false
	}
	return t.Rows[len(t.Rows)-1], true
}

// IsMissing reports whether v marks a padded value.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// OptionalValue converts a possibly-missing value to a nullable pointer.
func OptionalValue(v float64) *float64 {
	if IsMissing(v) {
		return nil
	}
	return &v
}

// FromOptional converts a nullable pointer back to a value, NaN when nil.
func FromOptional(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
