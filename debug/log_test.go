package debug

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

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")

	logger, closeFn, err := New(Options{File: path})
	require.NoError(t, err)
	logger.Debug("sent", zap.String("event", "active-sensing"))
	closeFn()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "sent", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "active-sensing", entry["event"])
}

func TestNewTruncatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0644))

	_, closeFn, err := New(Options{File: path})
	require.NoError(t, err)
	closeFn()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestNewWithoutOutputsIsNop(t *testing.T) {
	logger, closeFn, err := New(Options{})
	require.NoError(t, err)
	defer closeFn()
	assert.False(t, logger.Core().Enabled(zap.ErrorLevel))
}

func TestLogPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := LogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "go-avril", "debug.log"), path)
}
