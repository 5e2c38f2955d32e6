// Package cliconfig provides the optional YAML configuration file for the
// css-compare CLI (spec §6 "--config"). It carries only the ambient knobs
// the engine exposes (log verbosity, @import recursion bound, color
// comparison tolerance) — there is no persisted state beyond this file
// (spec §6 "Persisted state: None").
//
// Grounded on the teacher's config/cfg.go YAML+validate pattern, using
// go-playground/validator directly instead of the teacher's gencfg: gencfg
// bundles template expansion and ebook-specific sanitize directives
// (assure_file_access, oneof_or_tag, ...) this tool has no use for.
package cliconfig

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"csscompare/logging"
)

// Config is the optional on-disk configuration for the CLI.
type Config struct {
	LogLevel       logging.Level `yaml:"log_level" validate:"omitempty,oneof=none normal debug"`
	ImportDepth    int           `yaml:"import_depth" validate:"min=1,max=256"`
	ColorTolerance float64       `yaml:"color_tolerance" validate:"gte=0,lte=1"`
}

// Default returns the configuration used when no --config file is given.
func Default() Config {
	return Config{
		LogLevel:       logging.LevelNone,
		ImportDepth:    32,
		ColorTolerance: 0,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads and validates a configuration file, superimposing its values
// on top of Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config file: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
