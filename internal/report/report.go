package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type Status string

const (
	StatusWritten Status = "written"
	StatusMissing Status = "missing"
	StatusError   Status = "error"
)

// Entry records what happened to one tower block of one field.
type Entry struct {
	Field  string `json:"field"`
	Sheet  string `json:"sheet"`
	Group  string `json:"group"`
	Tower  string `json:"tower"`
	Source string `json:"source"`
	Block  string `json:"block"` // destination range, e.g. "B3:AE116"
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
	Rows   int    `json:"rows,omitempty"`
	Cols   int    `json:"cols,omitempty"`
}

// Report is the JSON summary of one run.
type Report struct {
	Mode     string    `json:"mode"`
	Target   string    `json:"target"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
	Entries  []Entry   `json:"entries"`
}

func New(mode, target string) *Report {
	return &Report{
		Mode:    mode,
		Target:  target,
		Started: time.Now(),
	}
}

func (r *Report) Add(e Entry) {
	r.Entries = append(r.Entries, e)
}

// Counts returns the number of written, missing and failed blocks.
func (r *Report) Counts() (written, missing, failed int) {
	for _, e := range r.Entries {
		switch e.Status {
		case StatusWritten:
			written++
		case StatusMissing:
			missing++
		case StatusError:
			failed++
		}
	}
	return written, missing, failed
}

// SaveToFile saves the report as indented JSON
func (r *Report) SaveToFile(filepath string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", filepath, err)
	}
	return nil
}

// LoadFromFile loads a report written by SaveToFile
func LoadFromFile(filepath string) (*Report, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", filepath, err)
	}
	return &r, nil
}
