package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/tenthdistrict/activity/internal/contract"
	"github.com/tenthdistrict/activity/schema"
	"github.com/xuri/excelize/v2"
)

// SeriesReport summarizes the extraction of one series.
type SeriesReport struct {
	Key     schema.SeriesKey    `json:"key"`
	Row     int                 `json:"row"`
	Parsed  int                 `json:"parsed"`
	Dropped int                 `json:"dropped"`
	Kept    int                 `json:"kept"`
	Cells   []schema.CellResult `json:"cells"`
}

// BuildSeriesReports summarizes each series; Kept applies the layout's length cap.
func BuildSeriesReports(series []schema.CellSeries, layout schema.SheetLayout) []SeriesReport {
	limits := map[schema.SeriesKey]int{
		layout.QuarterAgo.Key: layout.QuarterAgo.Length,
		layout.YearAgo.Key:    layout.YearAgo.Length,
	}
	reports := make([]SeriesReport, len(series))
	for i, s := range series {
		reports[i] = SeriesReport{
			Key:     s.Key,
			Row:     s.Row,
			Parsed:  s.ParsedCount(),
			Dropped: len(s.Dropped()),
			Kept:    len(s.Values(limits[s.Key])),
			Cells:   s.Cells,
		}
	}
	return reports
}

// PrintExtractionReport outputs the per-cell extraction report for each series.
func PrintExtractionReport(series []schema.CellSeries, cfg *contract.Config, duration time.Duration) error {
	reports := BuildSeriesReports(series, cfg.Layout)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, reports)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, reports)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errors.New("parquet output is not supported for the extraction report")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportTable(w, reports, cfg, duration)
		}, "Wrote report")
	}
}

func writeReportCSV(w io.Writer, reports []SeriesReport) error {
	header := []string{"series", "row", "column", "cell", "raw", "status", "value"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, rep := range reports {
			for _, c := range rep.Cells {
				value := ""
				if c.OK() {
					value = strconv.FormatFloat(c.Value, 'f', -1, 64)
				}
				rec := []string{
					string(rep.Key),
					strconv.Itoa(rep.Row),
					strconv.Itoa(c.Column),
					cellName(rep.Row, c.Column),
					c.Raw,
					string(c.Status),
					value,
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func writeReportTable(w io.Writer, reports []SeriesReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)
	maxRaw := getMaxRawWidth(cfg)

	for _, rep := range reports {
		if _, err := fmt.Fprintf(w, "%s (row %d)\n", rep.Key, rep.Row); err != nil {
			return err
		}

		table := tablewriter.NewWriter(w)
		table.Header([]string{"Cell", "Column", "Raw", "Status", "Value"})
		var data [][]string
		for _, c := range rep.Cells {
			value, status := "", string(c.Status)
			if c.OK() {
				value = fmtFloat(c.Value)
			} else if cfg.UseColors {
				status = contract.ContractionColor.Sprint(status)
			}
			data = append(data, []string{
				cellName(rep.Row, c.Column),
				strconv.Itoa(c.Column),
				contract.TruncateText(c.Raw, maxRaw),
				status,
				value,
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%d parsed, %d dropped, %d kept\n\n", rep.Parsed, rep.Dropped, rep.Kept); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Inspected %s in %v\n", cfg.InputPath, duration.Round(time.Millisecond))
	return err
}

// cellName returns the spreadsheet reference, e.g. "B9", for zero-based indices.
func cellName(row, col int) string {
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return fmt.Sprintf("R%dC%d", row+1, col+1)
	}
	return name
}
