// Package app wires together all adapters and domain logic: configuration,
// the batch run pipeline, and the watch loop.
package app

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/corey/vesselmatch/internal/adapters/csvfile"
)

// LoggingConfig selects log verbosity and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Config is the top-level application configuration. Flag values override
// the file; the file overrides defaults.
type Config struct {
	RegistryPath string          `yaml:"registry"`
	CorpusDir    string          `yaml:"corpusDir"`
	OutputPath   string          `yaml:"output"`
	DBPath       string          `yaml:"db"`
	Threshold    int             `yaml:"threshold"`
	Workers      int             `yaml:"workers"`
	Columns      csvfile.Columns `yaml:"columns"`
	Logging      LoggingConfig   `yaml:"logging"`
}

// DefaultConfig returns the configuration used when no file or flag says
// otherwise. Paths mirror the upstream pipeline's directory convention.
func DefaultConfig() Config {
	return Config{
		RegistryPath: "input_data/fishing-vessels.csv",
		CorpusDir:    "translated_pdfs",
		OutputPath:   "output_data/fishing-vessels-updated.csv",
		DBPath:       ".vesselmatch/runs.db",
		Threshold:    80,
		Workers:      runtime.GOMAXPROCS(0),
		Columns:      csvfile.DefaultColumns(),
		Logging:      LoggingConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing path is
// not an error: the defaults apply unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configuration no run can proceed with. The threshold is
// rejected, not clamped: a value outside [0,100] is a typo worth surfacing.
func (c Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 100 {
		return fmt.Errorf("threshold %d outside [0,100]", c.Threshold)
	}
	if c.RegistryPath == "" {
		return fmt.Errorf("registry path is required")
	}
	if c.CorpusDir == "" {
		return fmt.Errorf("corpus directory is required")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}
