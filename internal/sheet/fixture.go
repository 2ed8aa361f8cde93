package sheet

import (
	"github.com/xuri/excelize/v2"
)

// WriteGrid saves rows as a new single-sheet workbook at path.
// Nil cells are left empty. It backs the report fixtures used in tests.
func WriteGrid(path, sheet string, rows [][]any) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if sheet != "" && sheet != f.GetSheetName(0) {
		if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
			return err
		}
	} else {
		sheet = f.GetSheetName(0)
	}

	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}

// ReportRows returns a grid shaped like the quarterly activity report:
// eight preamble rows, then the quarter-ago and year-ago rows with a label
// in column 0 followed by the given values.
func ReportRows(qoq, yoy []any) [][]any {
	rows := make([][]any, 10)
	rows[0] = []any{"Tenth District Energy Survey"}
	rows[2] = []any{"Business activity index"}
	rows[8] = append([]any{"Vs. a quarter ago"}, qoq...)
	rows[9] = append([]any{"Vs. a year ago"}, yoy...)
	return rows
}
