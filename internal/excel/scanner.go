package excel

import (
	"fmt"
	"os"
	"time"
)

// SourceStatus describes the per-tower workbook found (or not) on disk.
type SourceStatus struct {
	Tower   string
	Path    string
	Exists  bool
	Size    int64
	ModTime time.Time
}

// ScanSources checks which tower workbooks exist. pathFor maps a tower id to
// its workbook path.
func ScanSources(towers []string, pathFor func(string) string) ([]SourceStatus, error) {
	statuses := make([]SourceStatus, 0, len(towers))
	for _, tower := range towers {
		status := SourceStatus{Tower: tower, Path: pathFor(tower)}

		info, err := os.Stat(status.Path)
		switch {
		case err == nil && !info.IsDir():
			status.Exists = true
			status.Size = info.Size()
			status.ModTime = info.ModTime()
		case err == nil, os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to check %s: %w", status.Path, err)
		}

		statuses = append(statuses, status)
	}
	return statuses, nil
}

// SourceExists reports whether path names a regular file.
func SourceExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
