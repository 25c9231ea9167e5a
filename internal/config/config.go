// Package config loads the optional .cmetrics.yml file that overrides the
// comparison engine's default thresholds and enforcement level, following
// the same "missing file means defaults" and yaml.v3 unmarshal pattern used
// throughout this module's configuration loading.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/brandon-arrendondo/knots/internal/knotserr"
)

// Config overrides the comparison engine's default thresholds. Any field
// left unset in the YAML file keeps its Default value.
type Config struct {
	Threshold         *float64 `yaml:"threshold"`
	BoundaryThreshold *float64 `yaml:"boundaryThreshold"`
	Level             string   `yaml:"level"`
	CheckBoundaries   *bool    `yaml:"checkBoundaries"`
	Exclude           []string `yaml:"exclude"`
}

// Defaults mirrors the CLI's built-in default flag values.
func Defaults() Config {
	threshold := 0.70
	boundaryThreshold := 0.80
	checkBoundaries := true
	return Config{
		Threshold:         &threshold,
		BoundaryThreshold: &boundaryThreshold,
		Level:             "warn",
		CheckBoundaries:   &checkBoundaries,
	}
}

// Load reads path and merges it over Defaults(). A missing file is not an
// error: it yields the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, knotserr.New(knotserr.KindIO, "config.Load", path, err)
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Config{}, knotserr.New(knotserr.KindValidation, "config.Load", path, err)
	}

	if override.Threshold != nil {
		cfg.Threshold = override.Threshold
	}
	if override.BoundaryThreshold != nil {
		cfg.BoundaryThreshold = override.BoundaryThreshold
	}
	if override.Level != "" {
		cfg.Level = override.Level
	}
	if override.CheckBoundaries != nil {
		cfg.CheckBoundaries = override.CheckBoundaries
	}
	if override.Exclude != nil {
		cfg.Exclude = override.Exclude
	}

	return cfg, Validate(cfg)
}

// Validate checks that the loaded thresholds and level fall within the
// ranges the CLI's flag parser enforces (-t 0.0..2.0, -b 0.0..1.0,
// -l warn|error).
func Validate(cfg Config) error {
	if cfg.Threshold == nil || *cfg.Threshold < 0.0 || *cfg.Threshold > 2.0 {
		return knotserr.New(knotserr.KindValidation, "config.Validate", "", errInvalidThreshold)
	}
	if cfg.BoundaryThreshold == nil || *cfg.BoundaryThreshold < 0.0 || *cfg.BoundaryThreshold > 1.0 {
		return knotserr.New(knotserr.KindValidation, "config.Validate", "", errInvalidBoundaryThreshold)
	}
	if cfg.Level != "warn" && cfg.Level != "error" {
		return knotserr.New(knotserr.KindValidation, "config.Validate", "", errInvalidLevel)
	}
	return nil
}

type simpleError string

func (e simpleError) Error() string { return string(e) }

const (
	errInvalidThreshold         simpleError = "threshold must be in 0.0..2.0"
	errInvalidBoundaryThreshold simpleError = "boundary-threshold must be in 0.0..1.0"
	errInvalidLevel             simpleError = "level must be \"warn\" or \"error\""
)
