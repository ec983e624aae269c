// Package config loads the optional YAML configuration file that
// overrides the engine's defaults: where exports land, how many
// candidates to generate per request, logging, and per-profile
// cost-weight overrides. DefaultTTLHours is loaded but nothing in the
// module applies it; bundle freshness comes from each grid file's own
// ttl_hours.
package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// Log configures the ambient logger.
type Log struct {
	Pretty bool   `yaml:"pretty"`
	Level  string `yaml:"level"`
}

// Config is the route planner's optional on-disk configuration. Every
// field has a sensible zero-value default applied by Default.
type Config struct {
	Log             Log                           `yaml:"log"`
	ExportRoot      string                        `yaml:"exportRoot"`
	DefaultTTLHours int                           `yaml:"defaultTTLHours"`
	MaxCandidates   int                           `yaml:"maxCandidates"`
	ProfileWeights  map[string]map[string]float64 `yaml:"profileWeights"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Log:             Log{Pretty: false, Level: "info"},
		ExportRoot:      "exports",
		DefaultTTLHours: 720,
		MaxCandidates:   3,
	}
}

// Load reads path (a YAML file) through koanf and overlays it onto the
// default configuration. A missing path is not an error; Default() is
// returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "config: statting %s", path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(filepath.Clean(path)), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "config: reading %s", path)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrapf(err, "config: unmarshaling %s", path)
	}
	return cfg, nil
}
