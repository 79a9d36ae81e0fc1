package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"dcrSummary/internal/config"
	"dcrSummary/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig saves the default tables with every path under dir.
func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	cfg := config.Default()
	cfg.Source.Directory = filepath.Join(dir, "towers")
	cfg.Target.File = filepath.Join(dir, "out", "Summary.xlsx")
	cfg.Target.ReportFile = filepath.Join(dir, "out", "report.json")
	cfg.Log.Directory = filepath.Join(dir, "logs")

	path := filepath.Join(dir, "config.toml")
	require.NoError(t, config.SaveConfig(path, cfg))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "config.yaml")

	out, err := execute(t, "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote default config")

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Fields, cfg.Fields)

	_, err = execute(t, "init", "--config", path)
	assert.ErrorContains(t, err, "already exists")
}

func TestLayout(t *testing.T) {
	path := writeConfig(t, t.TempDir())

	out, err := execute(t, "layout", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "sheet SummaryVDCR")
	assert.Contains(t, out, "DV1:GV1")
	assert.Contains(t, out, "last column 204, last row 231")
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(cfg.Source.Directory, 0755))
	require.NoError(t, os.WriteFile(cfg.SourcePath("N1"), []byte("x"), 0644))

	out, err := execute(t, "check", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 12 tower workbooks found")
}

func TestBuildAndUpdate_NoSources(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir)

	out, err := execute(t, "build", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "file not found for Tower N1")
	assert.Contains(t, out, "Missing: 48")
	assert.FileExists(t, filepath.Join(dir, "out", "Summary.xlsx"))
	assert.FileExists(t, filepath.Join(dir, "logs", "dcrsummary.log"))

	out, err = execute(t, "update", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Done.")

	rep, err := report.LoadFromFile(filepath.Join(dir, "out", "report.json"))
	require.NoError(t, err)
	assert.Equal(t, config.ModeUpdate, rep.Mode)
	assert.Len(t, rep.Entries, 48)
}

func TestBuild_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[target\nfile = 1"), 0644))

	_, err := execute(t, "build", "--config", path)
	assert.ErrorContains(t, err, "error loading config")
}
