//go:build basic || database

// Package integration contains end-to-end tests for the activity CLI.
// These tests are excluded from normal test runs due to build tags.
// To run them: go test -tags basic ./integration
// The database tests need Docker: go test -tags database ./integration
package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tenthdistrict/activity/internal/sheet"
)

var (
	// sharedActivityPath holds the path to a shared activity binary built once for all tests.
	sharedActivityPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getActivityBinary returns the path to the activity binary, building it once if needed.
func getActivityBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "activity-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		activityPath := filepath.Join(tempDir, "activity")
		buildCmd := exec.Command("go", "build", "-o", activityPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if err := buildCmd.Run(); err != nil {
			panic(fmt.Sprintf("failed to build activity: %v", err))
		}

		sharedActivityPath = activityPath
	})

	return sharedActivityPath
}

// newWorkspace lays out the default data/ and web/ tree with a 20-quarter workbook.
func newWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, sub := range []string{"data/raw", "data/processed", "web"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
	}

	var qoq, yoy []any
	for i := range 20 {
		qoq = append(qoq, 5*i-60)
		yoy = append(yoy, 3*i-30)
	}
	qoq[19] = -39
	input := filepath.Join(dir, "data", "raw", "Designer Developer Assessment General.xlsx")
	require.NoError(t, sheet.WriteGrid(input, "", sheet.ReportRows(qoq, yoy)))
	return dir
}

// runActivityCommand runs the binary in dir with extra environment variables.
func runActivityCommand(t *testing.T, dir string, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getActivityBinary(), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
	}
	return string(output), err
}
