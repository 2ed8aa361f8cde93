package core

import (
	"errors"
	"fmt"
	"math"

	"github.com/tenthdistrict/activity/internal/contract"
	"github.com/tenthdistrict/activity/schema"
)

// ErrLengthMismatch is returned when a series cannot be aligned with the quarter labels.
var ErrLengthMismatch = errors.New("series length does not match quarter labels")

// BuildTable zips the quarter labels with both series into one row-aligned table.
// Rows follow label order. The policy decides what happens when a series does not
// have exactly one value per label:
//
//   - strict: any difference is ErrLengthMismatch
//   - pad: short series end with missing values, long series are ErrLengthMismatch
//   - truncate: the table is cut to the shortest input and a warning is logged
func BuildTable(labels []string, qoq, yoy []float64, policy schema.AlignPolicy) (schema.ActivityTable, error) {
	if len(labels) == 0 {
		return schema.ActivityTable{}, errors.New("no quarter labels to align with")
	}

	n := len(labels)
	switch policy {
	case schema.AlignStrict, "":
		if err := checkLength(schema.QuarterAgoKey, qoq, n, false); err != nil {
			return schema.ActivityTable{}, err
		}
		if err := checkLength(schema.YearAgoKey, yoy, n, false); err != nil {
			return schema.ActivityTable{}, err
		}
	case schema.AlignPad:
		if err := checkLength(schema.QuarterAgoKey, qoq, n, true); err != nil {
			return schema.ActivityTable{}, err
		}
		if err := checkLength(schema.YearAgoKey, yoy, n, true); err != nil {
			return schema.ActivityTable{}, err
		}
	case schema.AlignTruncate:
		n = min(len(labels), len(qoq), len(yoy))
		if n != len(labels) || n != len(qoq) || n != len(yoy) {
			contract.LogWarn(fmt.Sprintf(
				"Truncating table to %d rows (%d labels, %d quarter-ago values, %d year-ago values); rows may be misaligned",
				n, len(labels), len(qoq), len(yoy)), nil)
		}
	default:
		return schema.ActivityTable{}, fmt.Errorf("unknown align policy %q", policy)
	}

	rows := make([]schema.ActivityRow, n)
	for i := range n {
		rows[i] = schema.ActivityRow{
			Quarter:      labels[i],
			VsQuarterAgo: valueAt(qoq, i),
			VsYearAgo:    valueAt(yoy, i),
		}
	}
	return schema.ActivityTable{Rows: rows}, nil
}

func checkLength(key schema.SeriesKey, values []float64, want int, allowShort bool) error {
	if len(values) == want || (allowShort && len(values) < want) {
		return nil
	}
	return fmt.Errorf("%w: %s has %d values for %d quarters", ErrLengthMismatch, key, len(values), want)
}

func valueAt(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return math.NaN()
}
