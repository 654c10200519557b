package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/image2radiomics/i2r/pkg/config"
	"github.com/image2radiomics/i2r/pkg/scheduler"
	"github.com/image2radiomics/i2r/pkg/state"
)

func TestSignature(t *testing.T) {
	dir := t.TempDir()
	writeDatasetFile(t, dir, "p1/img.dcm", "aaa")
	writeDatasetFile(t, dir, "p1/msk.dcm", "bbb")

	sig1, err := Signature(dir)
	if err != nil {
		t.Fatalf("Signature failed: %v", err)
	}

	sig2, err := Signature(dir)
	if err != nil {
		t.Fatalf("Signature failed: %v", err)
	}
	if sig1 != sig2 {
		t.Errorf("Expected a stable signature for unchanged content")
	}

	writeDatasetFile(t, dir, "p2/img.dcm", "ccc")
	sig3, err := Signature(dir)
	if err != nil {
		t.Fatalf("Signature failed: %v", err)
	}
	if sig3 == sig1 {
		t.Errorf("Expected the signature to change when a file is added")
	}
}

func TestCopyTree(t *testing.T) {
	src := t.TempDir()
	writeDatasetFile(t, src, "p1/img.dcm", "image bytes")
	writeDatasetFile(t, src, "p1/sub/msk.dcm", "mask bytes")

	dest := filepath.Join(t.TempDir(), "copy")
	if err := copyTree(context.Background(), src, dest); err != nil {
		t.Fatalf("copyTree failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dest, "p1", "sub", "msk.dcm"))
	if err != nil {
		t.Fatalf("Failed to read copied file: %v", err)
	}
	if string(data) != "mask bytes" {
		t.Errorf("Expected 'mask bytes', got %q", string(data))
	}
}

func TestScanSubmitsStableDataset(t *testing.T) {
	input := t.TempDir()
	workdir := t.TempDir()
	writeDatasetFile(t, input, "ds1/img.dcm", "image bytes")

	marker := filepath.Join(t.TempDir(), "submitted")
	script := writeJobScript(t, marker)

	store := newWatchStore(t)
	w := New(Options{
		Input:     input,
		Workdir:   workdir,
		Interval:  time.Minute,
		Remove:    false,
		JobScript: script,
		Submitter: scheduler.NewSubmitter(scheduler.None),
	}, store)

	if err := w.Scan(context.Background()); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	// The job script ran and received the pool folder.
	poolArg, err := os.ReadFile(marker)
	if err != nil {
		t.Fatalf("Expected the job script to run: %v", err)
	}
	pool := string(poolArg)

	// The dataset was copied into the pool before submission.
	if _, err := os.Stat(filepath.Join(pool, "ds1", "img.dcm")); err != nil {
		t.Errorf("Expected the dataset inside the pool folder: %v", err)
	}

	// The dataset is marked processed and not resubmitted on the next scan.
	sig, err := Signature(filepath.Join(input, "ds1"))
	if err != nil {
		t.Fatalf("Signature failed: %v", err)
	}
	if !store.Seen("ds1", sig) {
		t.Errorf("Expected ds1 to be marked processed")
	}

	if err := os.Remove(marker); err != nil {
		t.Fatalf("Failed to reset marker: %v", err)
	}
	if err := w.Scan(context.Background()); err != nil {
		t.Fatalf("Second scan failed: %v", err)
	}
	if _, err := os.Stat(marker); !os.IsNotExist(err) {
		t.Errorf("Expected no resubmission of a processed dataset")
	}
}

func TestScanRemovesSourceWhenConfigured(t *testing.T) {
	input := t.TempDir()
	writeDatasetFile(t, input, "ds1/img.dcm", "image bytes")

	marker := filepath.Join(t.TempDir(), "submitted")
	w := New(Options{
		Input:     input,
		Workdir:   t.TempDir(),
		Interval:  time.Minute,
		Remove:    true,
		JobScript: writeJobScript(t, marker),
		Submitter: scheduler.NewSubmitter(scheduler.None),
	}, newWatchStore(t))

	if err := w.Scan(context.Background()); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(input, "ds1")); !os.IsNotExist(err) {
		t.Errorf("Expected the source dataset to be removed after submission")
	}
}

func TestScanWaitsForCreationDelay(t *testing.T) {
	input := t.TempDir()
	writeDatasetFile(t, input, "ds1/img.dcm", "image bytes")

	marker := filepath.Join(t.TempDir(), "submitted")
	w := New(Options{
		Input:         input,
		Workdir:       t.TempDir(),
		Interval:      time.Minute,
		CreationDelay: time.Hour,
		JobScript:     writeJobScript(t, marker),
		Submitter:     scheduler.NewSubmitter(scheduler.None),
	}, newWatchStore(t))

	if err := w.Scan(context.Background()); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if _, err := os.Stat(marker); !os.IsNotExist(err) {
		t.Errorf("Expected a freshly created dataset to be left alone")
	}
}

func writeDatasetFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create dataset dirs: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write dataset file: %v", err)
	}
}

// writeJobScript creates a job script that records its pool argument.
func writeJobScript(t *testing.T, marker string) string {
	t.Helper()
	script := filepath.Join(t.TempDir(), "job.sh")
	content := "#!/bin/sh\nprintf %s \"$1\" > " + marker + "\n"
	if err := os.WriteFile(script, []byte(content), 0o700); err != nil {
		t.Fatalf("Failed to write job script: %v", err)
	}
	return script
}

func newWatchStore(t *testing.T) *state.Store {
	t.Helper()
	cfg := config.Default()
	cfg.State.Badger.Path = t.TempDir()
	store, err := state.NewStore("watch-test", &cfg)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}
