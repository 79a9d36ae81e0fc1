package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetOutput_Level(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "warn")

	Info("Finished tower", "tower", "N1")
	Warn("Skipping tower, file not found", "tower", "N3")

	out := buf.String()
	assert.NotContains(t, out, "Finished tower")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "tower=N3")
}

func TestSetup(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Setup(dir, "debug"))
	Debug("Loaded configuration", "fields", 4)
	Close()

	data, err := os.ReadFile(filepath.Join(dir, "dcrsummary.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Loaded configuration")
	assert.Contains(t, string(data), "fields=4")
}
