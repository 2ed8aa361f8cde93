package outwriter

import (
	"os"

	"github.com/tenthdistrict/activity/internal/contract"
	"golang.org/x/term"
)

// getTerminalWidth returns the configured width override, the detected
// terminal width, or a conservative default.
func getTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// getMaxRawWidth calculates the maximum width for raw cell text in the
// extraction report, based on terminal width.
func getMaxRawWidth(cfg *contract.Config) int {
	// Cell + Column + Status + Value columns with borders and padding
	available := getTerminalWidth(cfg) - 50
	if available < 12 {
		return 12
	}
	if available > 60 {
		return 60
	}
	return available
}
