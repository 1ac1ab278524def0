package life

import (
	"strconv"
	"strings"
)

// Config holds parameters for a Life simulation.
type Config struct {
	Name    string
	Width   int
	Height  int
	Rule    Rule
	Pattern string
	Density float64
}

// DefaultConfig returns the default configuration: a 100x70 board seeded
// with a blinker under Conway's rule.
func DefaultConfig() Config {
	return Config{
		Width:   100,
		Height:  70,
		Rule:    DefaultRule(),
		Pattern: PatternBlinker,
		Density: 0.25,
	}
}

// FromMap populates a Config from a string map over the defaults.
func FromMap(cfg map[string]string) Config {
	return DefaultConfig().WithMap(cfg)
}

// WithMap overrides c with the keys w, h, rule, pattern and density. The
// "rule" key accepts a preset name or rule text. Invalid values are ignored.
func (c Config) WithMap(cfg map[string]string) Config {
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
	if v, ok := cfg["rule"]; ok {
		if preset, err := Preset(v); err == nil {
			c.Rule = preset
			c.Name = v
		} else if parsed, err := ParseRule(v, c.Rule); err == nil {
			c.Rule = parsed
			c.Name = ""
		}
	}
	if v, ok := cfg["pattern"]; ok && IsPattern(v) {
		c.Pattern = v
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	return c
}

// ParseArgs turns command words such as ["highlife", "pattern=random"] into a
// config map. A bare word names a registered board under the key "sim"; the
// last one wins.
func ParseArgs(args []string) map[string]string {
	m := make(map[string]string, len(args))
	for _, arg := range args {
		if k, v, ok := strings.Cut(arg, "="); ok {
			m[strings.TrimSpace(k)] = strings.TrimSpace(v)
			continue
		}
		if arg = strings.TrimSpace(arg); arg != "" {
			m["sim"] = arg
		}
	}
	return m
}
