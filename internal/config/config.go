// Package config provides configuration loading for the sand tools.
package config

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"sand-ca/internal/sims/sand"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all application configuration.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Sim       SimConfig       `yaml:"sim"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Sweep     SweepConfig     `yaml:"sweep"`
}

// WorldConfig describes the sand world.
type WorldConfig struct {
	Width           int    `yaml:"width"`
	Height          int    `yaml:"height"`
	Resolution      int    `yaml:"resolution"` // pixels per cell
	Seed            int64  `yaml:"seed"`
	RetainUnsettled bool   `yaml:"retain_unsettled"`
	Rules           string `yaml:"rules"` // rule file, empty for built-ins
}

// SimConfig holds the tick driver settings.
type SimConfig struct {
	TPS int `yaml:"tps"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// TelemetryConfig controls the per-tick CSV output.
type TelemetryConfig struct {
	Path  string `yaml:"path"`
	Every int    `yaml:"every"` // record every N ticks
}

// SweepConfig holds defaults for the headless settle sweep.
type SweepConfig struct {
	Seeds     int `yaml:"seeds"`
	Workers   int `yaml:"workers"`
	MaxTicks  int `yaml:"max_ticks"`
	Particles int `yaml:"particles"`
}

// Load reads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
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
		// Only fields present in the file overwrite the defaults.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("world size must be positive, got %dx%d", c.World.Width, c.World.Height)
	}
	if c.World.Resolution <= 0 {
		c.World.Resolution = 1
	}
	if c.Sim.TPS <= 0 {
		c.Sim.TPS = 60
	}
	if c.Telemetry.Every <= 0 {
		c.Telemetry.Every = 1
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
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

// SandConfig converts the world section into a sand.Config.
func (c *Config) SandConfig() sand.Config {
	return sand.Config{
		Width:           c.World.Width,
		Height:          c.World.Height,
		Resolution:      c.World.Resolution,
		Seed:            c.World.Seed,
		RetainUnsettled: c.World.RetainUnsettled,
		RulesPath:       c.World.Rules,
	}
}

// Logger builds a slog logger writing to w according to the log section.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.Log.Level)}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
