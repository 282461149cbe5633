// Package config loads the optional mineview.yaml settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPath is looked up in the working directory when no --config flag
// is given.
const DefaultPath = "mineview.yaml"

var validate = validator.New()

// Config is the whole settings file.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Watch   WatchConfig   `yaml:"watch"`
	Plan    PlanConfig    `yaml:"plan"`
	Preview PreviewConfig `yaml:"preview"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" validate:"gte=0,lte=1m"`
}

type PlanConfig struct {
	// Width is the longer side of the plan drawing in inches.
	Width  float64 `yaml:"width" validate:"gt=0,lte=200"`
	Format string  `yaml:"format" validate:"oneof=dot svg png"`
}

type PreviewConfig struct {
	// Width is the sixel preview width in pixels.
	Width int `yaml:"width" validate:"gte=16,lte=4096"`
}

type MetricsConfig struct {
	// Addr is the listen address of the metrics endpoint; empty disables it.
	Addr string `yaml:"addr" validate:"omitempty,hostname_port"`
}

// Default returns the settings used when there is no file.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			File:  "mineview_debug.log",
			Level: "info",
		},
		Watch:   WatchConfig{Debounce: 250 * time.Millisecond},
		Plan:    PlanConfig{Width: 10, Format: "svg"},
		Preview: PreviewConfig{Width: 800},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	return formatValidationError(validate.Struct(c))
}

func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// report the first failure only
	for _, e := range validationErrs {
		field := e.Namespace()
		switch e.Tag() {
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s], got %v", field, e.Param(), e.Value())
		case "gt", "gte", "min":
			return fmt.Errorf("%s: must be at least %s", field, e.Param())
		case "lte", "max":
			return fmt.Errorf("%s: must not exceed %s", field, e.Param())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}
	return err
}
