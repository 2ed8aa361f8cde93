// Package sheet loads quarterly report workbooks into untyped cell grids.
package sheet

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/tenthdistrict/activity/internal/contract"
	"github.com/tenthdistrict/activity/schema"
	"github.com/xuri/excelize/v2"
)

// ReadGrid loads one sheet of the workbook at path with no header interpretation.
// An empty sheet name selects the first sheet. Cells are returned as their
// stored values, before number formats are applied.
func ReadGrid(path, sheet string) (schema.RawGrid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return schema.RawGrid{}, &contract.ReadError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return schema.RawGrid{}, &contract.ReadError{Path: path, Err: errors.New("workbook has no sheets")}
		}
	} else if names := f.GetSheetList(); !slices.Contains(names, sheet) {
		return schema.RawGrid{}, &contract.ReadError{
			Path: path,
			Err:  fmt.Errorf("sheet %q not found (have %s)", sheet, strings.Join(names, ", ")),
		}
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return schema.RawGrid{}, &contract.ReadError{Path: path, Err: err}
	}

	return schema.RawGrid{Source: path, Sheet: sheet, Rows: rows}, nil
}
