// Package outwriter has output and writer logic.
package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/tenthdistrict/activity/internal/contract"
	"github.com/tenthdistrict/activity/internal/parquet"
	"github.com/tenthdistrict/activity/schema"
)

// PrintTable outputs an activity table, dispatching based on the output format configured.
// base is the position of the first row within the full table.
func PrintTable(table schema.ActivityTable, base int, cfg *contract.Config, duration time.Duration) error {
	rows := schema.EnrichRows(table, base)
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTableCSV(w, rows, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errors.New("--output-file is required for parquet output")
		}
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteActivityParquet(w, parquet.ConvertEnrichedRows(rows))
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeActivityTable(w, rows, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
	return nil
}

// writeTableCSV writes enriched rows with the configured precision.
func writeTableCSV(w io.Writer, rows []schema.EnrichedRow, fmtFloat func(float64) string) error {
	header := []string{"position", "quarter", "vs_quarter_ago", "vs_year_ago", "label"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range rows {
			rec := []string{
				strconv.Itoa(r.Position),
				r.Quarter,
				fmtFloat(r.VsQuarterAgo),
				fmtFloat(r.VsYearAgo),
				r.Label,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeActivityTable generates and writes the human-readable table.
func writeActivityTable(w io.Writer, rows []schema.EnrichedRow, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", schema.QuarterColumn, schema.QuarterAgoColumn, schema.YearAgoColumn, "Label"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range rows {
		label := r.Label
		if cfg.UseColors {
			label = contract.GetColorLabel(r.VsQuarterAgo)
		}
		data = append(data, []string{
			strconv.Itoa(r.Position),
			r.Quarter,
			fmtFloat(r.VsQuarterAgo),
			fmtFloat(r.VsYearAgo),
			label,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	contractions := 0
	for _, r := range rows {
		if r.Label == schema.ContractionLabel {
			contractions++
		}
	}
	if _, err := fmt.Fprintf(w, "Showing %d quarters (%d contracting vs. a quarter ago)\n", len(rows), contractions); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Loaded %s in %v. Align policy: %s\n", cfg.InputPath, duration.Round(time.Millisecond), cfg.Align); err != nil {
		return err
	}
	return nil
}
