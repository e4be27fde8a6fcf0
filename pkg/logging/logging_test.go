package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "taskdeck.log")

	log, err := File(path, false)
	require.NoError(t, err)
	log.Debug("hidden")
	log.Warn("failed to fetch tasks", zap.Int("status", 500))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "failed to fetch tasks", entry["msg"])
	assert.Equal(t, "warn", entry["level"])
	assert.EqualValues(t, 500, entry["status"])
}

func TestFileDebugLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	log, err := File(path, true)
	require.NoError(t, err)
	log.Debug("visible")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible")
}
