// Package config loads run configuration for entropy sweeps.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"lattice-entropy/internal/entropy"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all run configuration parameters.
type Config struct {
	Lattice LatticeConfig `yaml:"lattice"`
	Sweep   SweepConfig   `yaml:"sweep"`
	Entropy EntropyConfig `yaml:"entropy"`
	Output  OutputConfig  `yaml:"output"`
	Log     LogConfig     `yaml:"log"`
}

// LatticeConfig describes the automaton.
type LatticeConfig struct {
	Size int   `yaml:"size"`
	Seed int64 `yaml:"seed"` // run i uses Seed+i
}

// SweepConfig controls how many steps and independent runs are executed.
type SweepConfig struct {
	Steps        int     `yaml:"steps"`
	Runs         int     `yaml:"runs"`
	Workers      int     `yaml:"workers"`
	TailFraction float64 `yaml:"tail_fraction"`
}

// EntropyConfig selects the compressor and the cell encoding.
type EntropyConfig struct {
	Codec    string `yaml:"codec"`
	Encoding string `yaml:"encoding"`
}

// OutputConfig controls which artifacts are written.
type OutputConfig struct {
	Dir           string `yaml:"dir"`
	Chart         bool   `yaml:"chart"`
	Snapshots     bool   `yaml:"snapshots"`
	SnapshotScale int    `yaml:"snapshot_scale"`
	ChartWidth    int    `yaml:"chart_width"`
	ChartHeight   int    `yaml:"chart_height"`
}

// LogConfig controls logging verbosity.
type LogConfig struct {
	Level      string `yaml:"level"`
	ProgressHz int    `yaml:"progress_hz"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("embedded defaults: %v", err))
	}
	return cfg
}

// Load reads the embedded defaults and overlays the file at path, if any.
// Fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values no run could use.
func (c *Config) Validate() error {
	var errs []error
	if c.Lattice.Size <= 1 {
		errs = append(errs, fmt.Errorf("lattice.size must be greater than 1, got %d", c.Lattice.Size))
	}
	if c.Sweep.Steps < 0 {
		errs = append(errs, fmt.Errorf("sweep.steps must not be negative, got %d", c.Sweep.Steps))
	}
	if c.Sweep.Runs < 1 {
		errs = append(errs, fmt.Errorf("sweep.runs must be at least 1, got %d", c.Sweep.Runs))
	}
	if c.Sweep.Workers < 0 {
		errs = append(errs, fmt.Errorf("sweep.workers must not be negative, got %d", c.Sweep.Workers))
	}
	if c.Sweep.TailFraction <= 0 || c.Sweep.TailFraction > 1 {
		errs = append(errs, fmt.Errorf("sweep.tail_fraction must be in (0, 1], got %g", c.Sweep.TailFraction))
	}
	if _, err := entropy.New(c.Entropy.Codec); err != nil {
		errs = append(errs, fmt.Errorf("entropy.codec: %w", err))
	}
	if _, err := entropy.ParseEncoding(c.Entropy.Encoding); err != nil {
		errs = append(errs, fmt.Errorf("entropy.encoding: %w", err))
	}
	return errors.Join(errs...)
}

// WriteYAML saves the configuration to path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
