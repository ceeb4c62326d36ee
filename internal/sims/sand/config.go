package sand

import (
	"strconv"
	"strings"
)

// Config controls the falling-sand world.
type Config struct {
	Width  int
	Height int
	// Resolution is the on-screen size of one cell in pixels.
	Resolution int

	Seed int64

	// RetainUnsettled keeps a particle active while the cell below it is
	// empty, even on ticks where no rule fired for it.
	RetainUnsettled bool

	// RulesPath points at a YAML rule file. Empty selects the built-in rules.
	RulesPath string
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:      160,
		Height:     120,
		Resolution: 4,
		Seed:       1337,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["resolution"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Resolution = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["retain_unsettled"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.RetainUnsettled = parsed
		}
	}
	if v, ok := cfg["rules"]; ok {
		c.RulesPath = strings.TrimSpace(v)
	}
	return c
}
