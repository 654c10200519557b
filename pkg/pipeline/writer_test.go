package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteRoundTrip(t *testing.T) {
	blocks := []Block{
		{Module: GlobalParameters, Params: Params{"verbose": true, "timer": false}},
		{Module: "DCM2NII", Params: Params{
			"inputFolder":     InputFromCLI,
			"multiprocessing": int64(8),
			"voxel_size":      1.5,
			"include":         []any{"CHUM", "CHUS"},
		}},
	}

	var buf bytes.Buffer
	if err := Write(&buf, " generated for tests", blocks); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	parsed, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Failed to re-parse written pipeline: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("Expected 2 blocks after round trip, got %d", len(parsed))
	}

	p := parsed[1].Params
	if p["inputFolder"] != InputFromCLI {
		t.Errorf("Expected inputFolder %q, got %v", InputFromCLI, p["inputFolder"])
	}
	if n, ok := p["multiprocessing"].(int64); !ok || n != 8 {
		t.Errorf("Expected multiprocessing 8, got %v", p["multiprocessing"])
	}
	if v, ok := parsed[0].Params["verbose"].(bool); !ok || !v {
		t.Errorf("Expected verbose to round trip as bool true, got %v", parsed[0].Params["verbose"])
	}
}

func TestWriteFileRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.cfg")
	if err := os.WriteFile(path, []byte("existing"), 0o600); err != nil {
		t.Fatalf("Failed to create existing file: %v", err)
	}

	err := WriteFile(path, "", []Block{{Module: "DELETE", Params: Params{"folder": "/tmp/x"}}})
	if err == nil {
		t.Errorf("Expected error when the target file exists")
	}
}
