package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ic-timon/adaptive-quadtree/indexer"
)

// benchConfig drives every subcommand. Zero-valued tree parameters fall back
// to indexer defaults.
type benchConfig struct {
	Points      int            `yaml:"points" validate:"gt=0"`
	Extent      float64        `yaml:"extent" validate:"gt=0"`
	Speed       float64        `yaml:"speed" validate:"gte=0"`
	Seed        int64          `yaml:"seed"`
	Ticks       int            `yaml:"ticks" validate:"gt=0"`
	Runs        int            `yaml:"runs" validate:"gt=0"`
	Scales      []int          `yaml:"scales" validate:"dive,gt=0"`
	Thresholds  []int          `yaml:"thresholds" validate:"dive,gt=0"`
	Workers     []int          `yaml:"workers" validate:"dive,gte=0"`
	Fixture     string         `yaml:"fixture"`
	ReportDir   string         `yaml:"report_dir" validate:"required"`
	MetricsFile string         `yaml:"metrics_file"`
	LogLevel    string         `yaml:"log_level" validate:"oneof=debug info warn error"`
	Tree        indexer.Config `yaml:"tree"`
}

func defaultBenchConfig() benchConfig {
	return benchConfig{
		Points:     10_000,
		Extent:     500,
		Speed:      1,
		Seed:       42,
		Ticks:      200,
		Runs:       20,
		Thresholds: []int{1, 2, 4, 8, 16, 32},
		Workers:    []int{1, 2, 4},
		ReportDir:  "report",
		LogLevel:   "info",
		Tree:       *indexer.DefaultConfig(),
	}
}

var benchValidate = validator.New()

// loadBenchConfig merges defaults with the YAML file at path, if any.
// A missing file is not an error.
func loadBenchConfig(path string) (benchConfig, error) {
	c := defaultBenchConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			slog.Warn("config file not found, using defaults", "path", path)
		case err != nil:
			return c, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &c); err != nil {
				return c, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := c.validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c *benchConfig) validate() error {
	if err := benchValidate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return c.Tree.Validate()
}

// bounds is the square root rectangle used when no fixture is loaded.
func (c *benchConfig) bounds() (indexer.Vec2, indexer.Vec2) {
	return indexer.Vec2{X: -c.Extent, Y: -c.Extent}, indexer.Vec2{X: c.Extent, Y: c.Extent}
}

// scales returns the point counts to run, defaulting to Points alone.
func (c *benchConfig) scales() []int {
	if len(c.Scales) == 0 {
		return []int{c.Points}
	}
	return c.Scales
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}
