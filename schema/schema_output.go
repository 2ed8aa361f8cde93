package schema

import "encoding/json"

// Activity labels derived from the sign of an index score.
const (
	ExpansionLabel   = "Expansion"
	FlatLabel        = "Flat"
	ContractionLabel = "Contraction"
	MissingLabel     = "Missing"
)

// EnrichedRow adds presentation data to an ActivityRow.
type EnrichedRow struct {
	Position int    `json:"position"`
	Label    string `json:"label"`
	ActivityRow
}

// GetPlainLabel returns a plain text label describing the direction of an index score.
func GetPlainLabel(score float64) string {
	switch {
	case IsMissing(score):
		return MissingLabel
	case score > 0:
		return ExpansionLabel
	case score < 0:
		return ContractionLabel
	default:
		return FlatLabel
	}
}

// EnrichRows adds position and label to every row of a table.
// Positions are zero-based indices into the full table, offset by base.
func EnrichRows(t ActivityTable, base int) []EnrichedRow {
	output := make([]EnrichedRow, len(t.Rows))
	for i, r := range t.Rows {
		output[i] = EnrichedRow{
			Position:    base + i,
			Label:       GetPlainLabel(r.VsQuarterAgo),
			ActivityRow: r,
		}
	}
	return output
}

// MarshalJSON keeps position and label next to the row values.
func (e EnrichedRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Position int    `json:"position"`
		Label    string `json:"label"`
		activityRowJSON
	}{
		Position: e.Position,
		Label:    e.Label,
		activityRowJSON: activityRowJSON{
			Quarter:      e.Quarter,
			VsQuarterAgo: OptionalValue(e.VsQuarterAgo),
			VsYearAgo:    OptionalValue(e.VsYearAgo),
		},
	})
}
