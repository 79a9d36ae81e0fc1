package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanSources(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "N1.xlsm"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "N3.xlsm"), 0755))

	pathFor := func(tower string) string { return filepath.Join(dir, tower+".xlsm") }
	statuses, err := ScanSources([]string{"N1", "N2", "N3"}, pathFor)
	require.NoError(t, err)
	require.Len(t, statuses, 3)

	assert.True(t, statuses[0].Exists)
	assert.EqualValues(t, 1, statuses[0].Size)
	assert.False(t, statuses[1].Exists)
	assert.False(t, statuses[2].Exists, "directories are not workbooks")
	assert.Equal(t, pathFor("N2"), statuses[1].Path)

	assert.True(t, SourceExists(pathFor("N1")))
	assert.False(t, SourceExists(pathFor("N2")))
}
