package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestManifestAppendAndFailed(t *testing.T) {
	m := &RunManifest{PipelineFile: "chain.cfg", StartedAt: time.Now()}

	m.Append(BlockResult{Module: "CHECK_FOLDER", Status: StatusOK})
	m.Append(BlockResult{Module: "REORGANIZE", Status: StatusSkipped})
	if m.Failed() {
		t.Errorf("Expected no failure with ok and skipped blocks")
	}

	m.Append(BlockResult{Module: "DCM2NII", Status: StatusFailed, Error: "exit status 1"})
	if !m.Failed() {
		t.Errorf("Expected Failed to report the failing block")
	}
}

func TestManifestWrite(t *testing.T) {
	m := &RunManifest{
		PipelineFile: "chain.cfg",
		InputFolder:  "/drop/ds1",
		StartedAt:    time.Now(),
		FinishedAt:   time.Now(),
	}
	m.Append(BlockResult{
		Module:       "DCM2NII",
		Status:       StatusOK,
		DurationSecs: 1.25,
		InputFolder:  "/out/ready",
		OutputFolder: "/out/nii",
	})

	path := filepath.Join(t.TempDir(), "run.json")
	if err := m.Write(path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read manifest: %v", err)
	}

	var got RunManifest
	if err := jsonFast.Unmarshal(data, &got); err != nil {
		t.Fatalf("Failed to unmarshal manifest: %v", err)
	}
	if got.PipelineFile != "chain.cfg" {
		t.Errorf("Expected pipeline file 'chain.cfg', got %q", got.PipelineFile)
	}
	if len(got.Blocks) != 1 || got.Blocks[0].OutputFolder != "/out/nii" {
		t.Errorf("Expected one block with output '/out/nii', got %v", got.Blocks)
	}
}
