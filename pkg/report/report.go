// Package report records what a pipeline run did: a JSON manifest of every
// block, plus optional archival of the result folder to S3.
package report

import (
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var jsonFast = jsoniter.ConfigFastest

// BlockResult is the outcome of one pipeline block.
type BlockResult struct {
	Module       string  `json:"module"`
	Status       string  `json:"status"` // ok, failed, skipped
	DurationSecs float64 `json:"duration_secs"`
	InputFolder  string  `json:"input_folder,omitempty"`
	OutputFolder string  `json:"output_folder,omitempty"`
	Error        string  `json:"error,omitempty"`
}

// Block statuses.
const (
	StatusOK      = "ok"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// RunManifest summarizes one interpreter run.
type RunManifest struct {
	PipelineFile string        `json:"pipeline_file"`
	InputFolder  string        `json:"input_folder,omitempty"`
	StartedAt    time.Time     `json:"started_at"`
	FinishedAt   time.Time     `json:"finished_at"`
	Blocks       []BlockResult `json:"blocks"`
}

// Append records one block outcome.
func (m *RunManifest) Append(r BlockResult) {
	m.Blocks = append(m.Blocks, r)
}

// Failed reports whether any block failed.
func (m *RunManifest) Failed() bool {
	for _, b := range m.Blocks {
		if b.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Write stores the manifest as indented JSON.
func (m *RunManifest) Write(path string) error {
	data, err := jsonFast.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
