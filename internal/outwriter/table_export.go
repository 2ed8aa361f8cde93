package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/tenthdistrict/activity/internal/contract"
	"github.com/tenthdistrict/activity/schema"
)

// ExportTableCSV writes the table to path with the header
// "Quarter,Vs Quarter Ago,Vs Year Ago" and no index column, replacing any
// existing file. Values use the shortest text that parses back to the same
// number; missing values are empty. The destination directory must exist.
func ExportTableCSV(path string, table schema.ActivityTable) error {
	file, err := contract.CreateOutputFile(path)
	if err != nil {
		return err
	}

	err = writeCSVWithHeader(file, schema.TableHeader, func(w *csv.Writer) error {
		for _, r := range table.Rows {
			if err := w.Write([]string{r.Quarter, formatExact(r.VsQuarterAgo), formatExact(r.VsYearAgo)}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = file.Close()
		return &contract.WriteError{Path: path, Err: err}
	}
	if err := file.Close(); err != nil {
		return &contract.WriteError{Path: path, Err: err}
	}
	return nil
}

// ReadTableCSV reads a table written by ExportTableCSV.
func ReadTableCSV(path string) (schema.ActivityTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return schema.ActivityTable{}, &contract.ReadError{Path: path, Err: err}
	}
	defer func() { _ = file.Close() }()

	table, err := decodeTableCSV(file)
	if err != nil {
		return schema.ActivityTable{}, &contract.ReadError{Path: path, Err: err}
	}
	return table, nil
}

func decodeTableCSV(r io.Reader) (schema.ActivityTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(schema.TableHeader)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return schema.ActivityTable{}, errors.New("empty table file")
	}
	if err != nil {
		return schema.ActivityTable{}, err
	}
	if !slices.Equal(header, schema.TableHeader) {
		return schema.ActivityTable{}, fmt.Errorf("unexpected header %q", header)
	}

	var table schema.ActivityTable
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return schema.ActivityTable{}, err
		}
		qoq, err := parseExact(rec[1])
		if err != nil {
			return schema.ActivityTable{}, fmt.Errorf("row %s: %w", rec[0], err)
		}
		yoy, err := parseExact(rec[2])
		if err != nil {
			return schema.ActivityTable{}, fmt.Errorf("row %s: %w", rec[0], err)
		}
		table.Rows = append(table.Rows, schema.ActivityRow{Quarter: rec[0], VsQuarterAgo: qoq, VsYearAgo: yoy})
	}
	return table, nil
}

func formatExact(v float64) string {
	if schema.IsMissing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseExact(s string) (float64, error) {
	if s == "" {
		return schema.FromOptional(nil), nil
	}
	return strconv.ParseFloat(s, 64)
}
