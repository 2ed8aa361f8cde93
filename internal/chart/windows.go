package chart

import (
	"errors"
	"fmt"

	grob "github.com/MetalBlueberry/go-plotly/generated/v2.34.0/graph_objects"
	"github.com/MetalBlueberry/go-plotly/pkg/types"
	"github.com/tenthdistrict/activity/schema"
)

// ErrInvalidWindow is returned when the range-filter windows do not fit the table.
var ErrInvalidWindow = errors.New("invalid filter window")

// ResolveWindows returns the configured windows, or the defaults derived from
// the table's quarter labels when none are configured.
func ResolveWindows(configured []schema.FilterWindow, quarters []string) []schema.FilterWindow {
	if len(configured) > 0 {
		return configured
	}
	return schema.DefaultFilterWindows(quarters)
}

// ValidateWindows checks windows against a table of rows quarters.
// Every window must lie inside the table with From <= To. The "All" window
// must span the table, and the remaining windows, in order, must cover every
// row exactly once.
func ValidateWindows(windows []schema.FilterWindow, rows int) error {
	seen := make(map[string]struct{}, len(windows))
	next := 0
	buckets := 0

	for _, w := range windows {
		if w.Label == "" {
			return fmt.Errorf("%w: empty label", ErrInvalidWindow)
		}
		if _, dup := seen[w.Label]; dup {
			return fmt.Errorf("%w: duplicate label %q", ErrInvalidWindow, w.Label)
		}
		seen[w.Label] = struct{}{}

		if w.From < 0 || w.To >= rows || w.From > w.To {
			return fmt.Errorf("%w: %q covers [%d, %d] outside a table of %d rows", ErrInvalidWindow, w.Label, w.From, w.To, rows)
		}
		if w.Label == schema.AllWindowLabel {
			if w.From != 0 || w.To != rows-1 {
				return fmt.Errorf("%w: %q must span [0, %d], got [%d, %d]", ErrInvalidWindow, w.Label, rows-1, w.From, w.To)
			}
			continue
		}

		switch {
		case w.From < next:
			return fmt.Errorf("%w: %q overlaps the previous window at row %d", ErrInvalidWindow, w.Label, w.From)
		case w.From > next:
			return fmt.Errorf("%w: rows %d-%d are not covered before %q", ErrInvalidWindow, next, w.From-1, w.Label)
		}
		next = w.To + 1
		buckets++
	}

	if buckets > 0 && next != rows {
		return fmt.Errorf("%w: rows %d-%d are not covered", ErrInvalidWindow, next, rows-1)
	}
	return nil
}

// filterButtons converts windows into relayout buttons on the x-axis range.
func filterButtons(windows []schema.FilterWindow) []grob.LayoutUpdatemenuButton {
	buttons := make([]grob.LayoutUpdatemenuButton, len(windows))
	for i, w := range windows {
		buttons[i] = grob.LayoutUpdatemenuButton{
			Label:  types.S(w.Label),
			Method: grob.LayoutUpdatemenuButtonMethodRelayout,
			Args:   []any{map[string]any{"xaxis.range": WindowRange(w)}},
		}
	}
	return buttons
}
