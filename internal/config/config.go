// Package config loads the optional datacompare.yaml settings file.
// Precedence is defaults, then file, then command-line flags (applied
// by the CLI after loading).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory
// when --config is not given.
const DefaultFile = "datacompare.yaml"

// Comparison mode names.
const (
	ModeValues = "values"
	ModeRows   = "rows"
)

type Config struct {
	// Mode selects the comparison strategy: values (value-set
	// difference) or rows (whole-row match).
	Mode string `yaml:"mode"`
	// Progress toggles the per-file progress bar.
	Progress bool `yaml:"progress"`
	// Debug enables [DEBUG] diagnostics.
	Debug bool `yaml:"debug"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Mode:     ModeValues,
		Progress: true,
	}
}

// Load reads path over the defaults. A missing file is not an error
// when path is the default lookup; an explicitly named file must exist.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the mode name.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeValues, ModeRows:
		return nil
	default:
		return fmt.Errorf("unknown mode %q (want %s or %s)", c.Mode, ModeValues, ModeRows)
	}
}
