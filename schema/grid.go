package schema

// RawGrid is a spreadsheet loaded without header interpretation.
// Rows may be ragged; row 0 is data, not column names.
type RawGrid struct {
	Source string
	Sheet  string
	Rows   [][]string
}

// NumRows returns the number of rows in the grid.
func (g RawGrid) NumRows() int {
	return len(g.Rows)
}

// Cell returns the raw text at (row, col) and whether the coordinate exists.
func (g RawGrid) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(g.Rows) || col < 0 || col >= len(g.Rows[row]) {
		return "", false
	}
	return g.Rows[row][col], true
}

// Row returns a copy of the cells in the given row, or nil when out of range.
func (g RawGrid) Row(row int) []string {
	if row < 0 || row >= len(g.Rows) {
		return nil
	}
	out := make([]string, len(g.Rows[row]))
	copy(out, g.Rows[row])
	return out
}

// CellStatus tags the outcome of numeric coercion for one cell.
type CellStatus string

// Cell statuses.
const (
	CellParsed      CellStatus = "parsed"
	CellUnparseable CellStatus = "unparseable"
)

// CellResult is the coercion result of one cell with its provenance.
type CellResult struct {
	Column int        `json:"column"`
	Raw    string     `json:"raw"`
	Status CellStatus `json:"status"`
	Value  float64    `json:"value,omitempty"`
}

// OK reports whether the cell held a numeric value.
func (c CellResult) OK() bool {
	return c.Status == CellParsed
}

// CellSeries holds every coerced cell of one extracted row, in column order.
type CellSeries struct {
	Key   SeriesKey    `json:"key"`
	Row   int          `json:"row"`
	Cells []CellResult `json:"cells"`
}

// Values returns the parsed values in original order, dropping unparseable
// cells, capped to the first limit values. A non-positive limit means no cap.
func (s CellSeries) Values(limit int) []float64 {
	var out []float64
	for _, c := range s.Cells {
		if !c.OK() {
			continue
		}
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, c.Value)
	}
	return out
}

// Trailing narrows s to the cells from the first of its last n kept values
// (the first limit parsed cells) to the end of the row. A series with n or
// fewer kept values is returned whole.
func (s CellSeries) Trailing(n, limit int) CellSeries {
	var kept []int
	for i, c := range s.Cells {
		if !c.OK() {
			continue
		}
		if limit > 0 && len(kept) == limit {
			break
		}
		kept = append(kept, i)
	}
	if n <= 0 || len(kept) <= n {
		return s
	}
	out := s
	out.Cells = s.Cells[kept[len(kept)-n]:]
	return out
}

// Dropped returns the cells that failed coercion.
func (s CellSeries) Dropped() []CellResult {
	var out []CellResult
	for _, c := range s.Cells {
		if !c.OK() {
			out = append(out, c)
		}
	}
	return out
}

// ParsedCount returns how many cells coerced to a number.
func (s CellSeries) ParsedCount() int {
	n := 0
	for _, c := range s.Cells {
		if c.OK() {
			n++
		}
	}
	return n
}
