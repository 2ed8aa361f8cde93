package history

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tenthdistrict/activity/schema"
)

func TestExportHistory(t *testing.T) {
	store := newMemoryStore(t)
	runID, err := store.BeginRun(time.Now(), "report.xlsx", map[string]any{"horizon": 20})
	require.NoError(t, err)
	require.NoError(t, store.RecordRows(runID, sampleTable()))
	require.NoError(t, store.EndRun(runID, time.Now(), 3))

	out := filepath.Join(t.TempDir(), "history")
	require.NoError(t, ExportHistory(store, out))

	for _, suffix := range []string{".runs.parquet", ".run_rows.parquet"} {
		info, err := os.Stat(out + suffix)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestExportHistoryErrors(t *testing.T) {
	assert.Error(t, ExportHistory(newMemoryStore(t), ""))
	assert.Error(t, ExportHistory(nil, "out"))

	empty := newMemoryStore(t)
	err := ExportHistory(empty, filepath.Join(t.TempDir(), "history"))
	assert.ErrorContains(t, err, "no run history")

	failing := &MockRunStore{}
	failing.On("GetStatus").Return(schema.HistoryStatus{}, errors.New("connection lost"))
	err = ExportHistory(failing, "out")
	assert.ErrorContains(t, err, "connection lost")
	failing.AssertExpectations(t)
}
