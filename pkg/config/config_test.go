package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Tools.Python != "python3" {
		t.Errorf("Expected python 'python3', got %q", cfg.Tools.Python)
	}
	if cfg.Tools.ScriptDir != "src" {
		t.Errorf("Expected script dir 'src', got %q", cfg.Tools.ScriptDir)
	}
	if cfg.Events.Enabled {
		t.Errorf("Expected events to be disabled by default")
	}
	if cfg.Events.Format != "json" {
		t.Errorf("Expected event format 'json', got %q", cfg.Events.Format)
	}
	if cfg.State.Badger.Checkpoint.Interval != 15*time.Minute {
		t.Errorf("Expected checkpoint interval 15m, got %v", cfg.State.Badger.Checkpoint.Interval)
	}
}

func TestLoad(t *testing.T) {
	content := `
tools:
  python: /opt/venv/bin/python
  scriptDir: /opt/i2r/src

events:
  enabled: true
  brokers:
    - localhost:9092
  topic: i2r-runs
  format: avro

state:
  ttl: 720h
  badger:
    path: /var/lib/i2r/state
    checkpoint:
      enabled: true
      interval: 30m
      s3:
        enabled: true
        bucket: i2r-state
        region: us-east-1

results:
  s3:
    enabled: true
    bucket: i2r-results
`
	path := filepath.Join(t.TempDir(), "i2r.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg := Load(path)

	if cfg.Tools.Python != "/opt/venv/bin/python" {
		t.Errorf("Expected python '/opt/venv/bin/python', got %q", cfg.Tools.Python)
	}
	if !cfg.Events.Enabled || cfg.Events.Topic != "i2r-runs" {
		t.Errorf("Expected events on topic 'i2r-runs', got %+v", cfg.Events)
	}
	if cfg.Events.Format != "avro" {
		t.Errorf("Expected event format 'avro', got %q", cfg.Events.Format)
	}
	if cfg.State.TTL != 720*time.Hour {
		t.Errorf("Expected TTL 720h, got %v", cfg.State.TTL)
	}
	if cfg.State.Badger.Checkpoint.Interval != 30*time.Minute {
		t.Errorf("Expected checkpoint interval 30m, got %v", cfg.State.Badger.Checkpoint.Interval)
	}
	if !cfg.Results.S3.Enabled || cfg.Results.S3.Bucket != "i2r-results" {
		t.Errorf("Expected results bucket 'i2r-results', got %+v", cfg.Results.S3)
	}
}

func TestLoadKeepsDefaultsForMissingSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "i2r.yaml")
	if err := os.WriteFile(path, []byte("events:\n  enabled: false\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg := Load(path)
	if cfg.Tools.Python != "python3" {
		t.Errorf("Expected default python to survive a partial config, got %q", cfg.Tools.Python)
	}
}

func TestLoadIfPresent(t *testing.T) {
	cfg := LoadIfPresent(filepath.Join(t.TempDir(), "absent.yaml"))
	if cfg.Tools.Python != "python3" {
		t.Errorf("Expected defaults when the config file is absent, got %q", cfg.Tools.Python)
	}
}
