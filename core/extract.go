package core

import (
	"math"
	"strconv"
	"strings"

	"github.com/tenthdistrict/activity/schema"
)

// ExtractCells coerces every cell of the row declared by spec, from spec.StartCol
// to the end of the row. Each result keeps its column index and raw text so
// dropped cells can be reported. A row outside the grid yields an empty series.
func ExtractCells(grid schema.RawGrid, spec schema.SeriesSpec) schema.CellSeries {
	series := schema.CellSeries{Key: spec.Key, Row: spec.Row}
	row := grid.Row(spec.Row)
	for col := spec.StartCol; col < len(row); col++ {
		raw := row[col]
		result := schema.CellResult{Column: col, Raw: raw, Status: schema.CellUnparseable}
		if v, ok := ParseNumeric(raw); ok {
			result.Status = schema.CellParsed
			result.Value = v
		}
		series.Cells = append(series.Cells, result)
	}
	return series
}

// ParseNumeric coerces a spreadsheet cell to a finite number.
// Surrounding whitespace is ignored. Empty text, words, comma-grouped text
// such as "1,234", hex literals and NaN/Inf spellings are not numbers.
func ParseNumeric(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.ContainsAny(s, ",xX_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
