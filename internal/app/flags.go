package app

import (
	"flag"
	"strconv"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim        string
	ConfigPath string
	Rules      string
	Scale      int
	TPS        int
	Seed       int64
	HUDWidth   int
	Retain     bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "sand", HUDWidth: 220}
}

// Bind attaches the configuration to the provided FlagSet. Zero values for
// scale, tps and seed defer to the YAML config.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML config file (embedded defaults when empty)")
	fs.StringVar(&c.Rules, "rules", c.Rules, "YAML rule file (built-in rules when empty)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "status panel width in pixels, 0 to hide")
	fs.BoolVar(&c.Retain, "retain", c.Retain, "keep particles over empty cells active")
}

// SimOptions renders the flag overrides as the string map accepted by sim
// factories. Unset flags are omitted.
func (c *Config) SimOptions() map[string]string {
	opts := map[string]string{}
	if c.Rules != "" {
		opts["rules"] = c.Rules
	}
	if c.Scale > 0 {
		opts["resolution"] = strconv.Itoa(c.Scale)
	}
	if c.Seed != 0 {
		opts["seed"] = strconv.FormatInt(c.Seed, 10)
	}
	if c.Retain {
		opts["retain_unsettled"] = "true"
	}
	return opts
}
