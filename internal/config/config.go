// Package config holds the settings of the read command and loads them from
// an optional YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/decaychain/internal/particle"
)

// Defaults.
const (
	DefaultVerboseEvents = 11
	DefaultProgressEvery = 1000
)

// Config controls event processing.
type Config struct {
	// RootTypes are the PDG codes whose decay chains are printed.
	RootTypes []int32 `yaml:"root_types"`

	// MaxDepth limits how many decay levels are listed; 0 lists all.
	MaxDepth int `yaml:"max_depth"`

	// VerboseEvents is how many leading events are printed in full.
	VerboseEvents int `yaml:"verbose_events"`

	// ProgressEvery logs a progress line every N events; 0 disables it.
	ProgressEvery int `yaml:"progress_every"`
}

// Default returns the settings used when no file or flag overrides them.
func Default() Config {
	return Config{
		RootTypes:     []int32{particle.TypeHiggs},
		VerboseEvents: DefaultVerboseEvents,
		ProgressEvery: DefaultProgressEvery,
	}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if len(c.RootTypes) == 0 {
		errs = append(errs, errors.New("root_types must name at least one particle type"))
	}
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth must be >= 0, got %d", c.MaxDepth))
	}
	if c.VerboseEvents < 0 {
		errs = append(errs, fmt.Errorf("verbose_events must be >= 0, got %d", c.VerboseEvents))
	}
	if c.ProgressEvery < 0 {
		errs = append(errs, fmt.Errorf("progress_every must be >= 0, got %d", c.ProgressEvery))
	}
	return errors.Join(errs...)
}

// Load reads a YAML config file on top of Default(). Keys missing from the
// file keep their defaults; unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
