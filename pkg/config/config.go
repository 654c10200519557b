package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ToolsConfig locates the worker-tool environment the engine dispatches to.
type ToolsConfig struct {
	Python    string `yaml:"python"`    // python interpreter for the worker tools
	ScriptDir string `yaml:"scriptDir"` // directory holding the worker scripts
}

// S3Config is shared by checkpoint and result uploads.
type S3Config struct {
	Enabled   bool   `yaml:"enabled"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Endpoint  string `yaml:"endpoint"`
	Prefix    string `yaml:"prefix"`
}

// EventsConfig enables run-lifecycle event publishing.
type EventsConfig struct {
	Enabled bool     `yaml:"enabled"`
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	Format  string   `yaml:"format"` // "json" (default) or "avro"
}

type AppConfig struct {
	Tools ToolsConfig `yaml:"tools"`

	Events EventsConfig `yaml:"events"`

	State struct {
		TTL time.Duration `yaml:"ttl"` // retention of processed-dataset markers

		Badger struct {
			Path       string `yaml:"path"`
			Checkpoint struct {
				Enabled  bool          `yaml:"enabled"`
				Interval time.Duration `yaml:"interval"`
				S3       S3Config      `yaml:"s3"`
			} `yaml:"checkpoint"`
		} `yaml:"badger"`
	} `yaml:"state"`

	Results struct {
		S3 S3Config `yaml:"s3"`
	} `yaml:"results"`
}

// Default returns the configuration used when no config file is present.
func Default() AppConfig {
	var cfg AppConfig
	cfg.Tools.Python = "python3"
	cfg.Tools.ScriptDir = "src"
	cfg.Events.Format = "json"
	cfg.State.TTL = 0 // processed markers never expire by default
	cfg.State.Badger.Path = "state/badger"
	cfg.State.Badger.Checkpoint.Interval = 15 * time.Minute
	return cfg
}

// Load reads and parses a YAML config file into an AppConfig struct.
// It will terminate the program if the file is not found or invalid.
func Load(path string) AppConfig {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Fatalf("Config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("Error parsing config file: %v", err)
	}

	return cfg
}

// LoadIfPresent loads path when it exists and falls back to Default.
func LoadIfPresent(path string) AppConfig {
	if _, err := os.Stat(path); err != nil {
		return Default()
	}
	return Load(path)
}
