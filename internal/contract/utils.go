package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/tenthdistrict/activity/schema"
)

// Color variables for console output.
var (
	ContractionColor = color.New(color.FgRed, color.Bold) // ContractionColor marks falling activity.
	FlatColor        = color.New(color.FgYellow)          // FlatColor marks an unchanged index.
	ExpansionColor   = color.New(color.FgGreen)           // ExpansionColor marks rising activity.
	MissingColor     = color.New(color.FgCyan)            // MissingColor marks padded values.
)

// GetColorLabel returns a colored text label for console output (table).
// It uses schema.GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(score float64) string {
	text := schema.GetPlainLabel(score)

	switch text {
	case schema.ContractionLabel:
		return ContractionColor.Sprint(text)
	case schema.ExpansionLabel:
		return ExpansionColor.Sprint(text)
	case schema.FlatLabel:
		return FlatColor.Sprint(text)
	default:
		return MissingColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// CreateOutputFile creates (or truncates) a pipeline output file.
// The parent directory must already exist; failures are reported as *WriteError.
func CreateOutputFile(path string) (*os.File, error) {
	if path == "" {
		return nil, &WriteError{Path: path, Err: fmt.Errorf("empty output path")}
	}
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &WriteError{Path: path, Err: fmt.Errorf("destination directory %s: %w", dir, err)}
	}
	if !info.IsDir() {
		return nil, &WriteError{Path: path, Err: fmt.Errorf("destination %s is not a directory", dir)}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, &WriteError{Path: path, Err: err}
	}
	return file, nil
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "❌ %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	if err == nil {
		_, _ = fmt.Fprintf(os.Stderr, "⚠️  %s\n", msg)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "⚠️  %s: %v\n", msg, err)
}

// LogInfo logs an informational message to stderr.
func LogInfo(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// LogWrote reports a written artifact to stderr.
func LogWrote(what, path string) {
	_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote %s to %s\n", what, path)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for the run ledger.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".activity_history.db"
	}
	return filepath.Join(homeDir, ".activity_history.db")
}

// TruncateText shortens text to maxWidth runes, marking the cut with "...".
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
