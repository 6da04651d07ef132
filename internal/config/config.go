// Package config loads slicer settings from defaults, an optional YAML file
// and SLICER_* environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the environment variable prefix, e.g. SLICER_SLICE_VALUE_COLUMN.
const EnvPrefix = "SLICER"

// Config represents the complete application configuration
type Config struct {
	Slice   SliceConfig   `yaml:"slice" envconfig:"SLICE"`
	Plot    PlotConfig    `yaml:"plot" envconfig:"PLOT"`
	Export  ExportConfig  `yaml:"export" envconfig:"EXPORT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// SliceConfig selects the columns and the x transform.
type SliceConfig struct {
	ValueColumn     int     `yaml:"value_column" envconfig:"VALUE_COLUMN" default:"3" validate:"gte=0"`
	XColumn         int     `yaml:"x_column" envconfig:"X_COLUMN" default:"0" validate:"gte=0"`
	EnergyConstant  float64 `yaml:"energy_constant" envconfig:"ENERGY_CONSTANT" default:"1239.8" validate:"ne=0"`
	AllowRaggedRows bool    `yaml:"allow_ragged_rows" envconfig:"ALLOW_RAGGED_ROWS" default:"false"`
}

// PlotConfig controls the rendered slice plot.
type PlotConfig struct {
	LogY    bool    `yaml:"log_y" envconfig:"LOG_Y" default:"true"`
	Connect bool    `yaml:"connect" envconfig:"CONNECT" default:"false"`
	Width   float64 `yaml:"width" envconfig:"WIDTH" default:"800" validate:"gt=0"`
	Height  float64 `yaml:"height" envconfig:"HEIGHT" default:"500" validate:"gt=0"`
	Title   string  `yaml:"title" envconfig:"TITLE"`
}

// ExportConfig controls where slices are written.
type ExportConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR" default:"." validate:"required"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"text" validate:"oneof=text json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Slice: SliceConfig{
			ValueColumn:    3,
			XColumn:        0,
			EnergyConstant: 1239.8,
		},
		Plot: PlotConfig{
			LogY:   true,
			Width:  800,
			Height: 500,
		},
		Export:  ExportConfig{Dir: "."},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load builds the configuration. An empty path skips the file layer; a
// missing file at a named path is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadFromFile overlays YAML values onto cfg; absent keys keep their value.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnv overlays only the variables that are actually set. envconfig
// defaults would otherwise overwrite values that came from the file.
func applyEnv(cfg *Config) error {
	var env Config
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return err
	}
	set := func(name string) bool {
		_, ok := os.LookupEnv(EnvPrefix + "_" + name)
		return ok
	}

	if set("SLICE_VALUE_COLUMN") {
		cfg.Slice.ValueColumn = env.Slice.ValueColumn
	}
	if set("SLICE_X_COLUMN") {
		cfg.Slice.XColumn = env.Slice.XColumn
	}
	if set("SLICE_ENERGY_CONSTANT") {
		cfg.Slice.EnergyConstant = env.Slice.EnergyConstant
	}
	if set("SLICE_ALLOW_RAGGED_ROWS") {
		cfg.Slice.AllowRaggedRows = env.Slice.AllowRaggedRows
	}
	if set("PLOT_LOG_Y") {
		cfg.Plot.LogY = env.Plot.LogY
	}
	if set("PLOT_CONNECT") {
		cfg.Plot.Connect = env.Plot.Connect
	}
	if set("PLOT_WIDTH") {
		cfg.Plot.Width = env.Plot.Width
	}
	if set("PLOT_HEIGHT") {
		cfg.Plot.Height = env.Plot.Height
	}
	if set("PLOT_TITLE") {
		cfg.Plot.Title = env.Plot.Title
	}
	if set("EXPORT_DIR") {
		cfg.Export.Dir = env.Export.Dir
	}
	if set("LOGGING_LEVEL") {
		cfg.Logging.Level = env.Logging.Level
	}
	if set("LOGGING_FORMAT") {
		cfg.Logging.Format = env.Logging.Format
	}
	return nil
}

var validate = validator.New()

// Validate checks field constraints and that the two columns differ.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Slice.ValueColumn == c.Slice.XColumn {
		return fmt.Errorf("value column and x column must differ (both %d)", c.Slice.ValueColumn)
	}
	return nil
}
