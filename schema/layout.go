package schema

import (
	"errors"
	"fmt"
)

// SeriesSpec declares where one series lives in the spreadsheet.
type SeriesSpec struct {
	Key      SeriesKey `mapstructure:"key" json:"key"`
	Name     string    `mapstructure:"name" json:"name"`
	Row      int       `mapstructure:"row" json:"row"`             // zero-based row index
	StartCol int       `mapstructure:"start_col" json:"start_col"` // zero-based; column 0 holds the row label
	Length   int       `mapstructure:"length" json:"length"`       // expected number of values
}

// SheetLayout is the named schema of the hand-maintained report.
type SheetLayout struct {
	QuarterAgo SeriesSpec `mapstructure:"quarter_ago" json:"quarter_ago"`
	YearAgo    SeriesSpec `mapstructure:"year_ago" json:"year_ago"`
}

// DefaultSheetLayout returns the layout of the quarterly activity report:
// quarter-ago values in row 8, year-ago values in row 9, data from column 1.
func DefaultSheetLayout() SheetLayout {
	return SheetLayout{
		QuarterAgo: SeriesSpec{Key: QuarterAgoKey, Name: QuarterAgoColumn, Row: 8, StartCol: 1, Length: DefaultHorizon},
		YearAgo:    SeriesSpec{Key: YearAgoKey, Name: YearAgoColumn, Row: 9, StartCol: 1, Length: DefaultHorizon},
	}
}

// Specs returns the series specs in extraction order.
func (l SheetLayout) Specs() []SeriesSpec {
	return []SeriesSpec{l.QuarterAgo, l.YearAgo}
}

// Validate checks the layout is addressable and unambiguous.
func (l SheetLayout) Validate() error {
	for _, s := range l.Specs() {
		if s.Row < 0 {
			return fmt.Errorf("layout %s: row must be >= 0 (received %d)", s.Key, s.Row)
		}
		if s.StartCol < 0 {
			return fmt.Errorf("layout %s: start column must be >= 0 (received %d)", s.Key, s.StartCol)
		}
		if s.Length <= 0 {
			return fmt.Errorf("layout %s: length must be > 0 (received %d)", s.Key, s.Length)
		}
	}
	if l.QuarterAgo.Row == l.YearAgo.Row {
		return errors.New("layout: quarter-ago and year-ago series cannot share a row")
	}
	return nil
}

// CheckGrid verifies that every declared row exists in the grid.
func (l SheetLayout) CheckGrid(g RawGrid) error {
	for _, s := range l.Specs() {
		if s.Row >= g.NumRows() {
			return fmt.Errorf("layout %s: row %d not found, sheet %q has %d rows", s.Key, s.Row, g.Sheet, g.NumRows())
		}
	}
	return nil
}
