// Package config loads decay-ca settings from YAML, layered over embedded
// defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"decay-ca/pkg/sims/life"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable of the simulator and its hosts.
type Config struct {
	Board   BoardConfig       `yaml:"board"`
	Rule    string            `yaml:"rule"`
	Window  WindowConfig      `yaml:"window"`
	TUI     TUIConfig         `yaml:"tui"`
	Run     RunConfig         `yaml:"run"`
	Storage StorageConfig     `yaml:"storage"`
	Serve   ServeConfig       `yaml:"serve"`
	Log     LogConfig         `yaml:"log"`
	Presets map[string]string `yaml:"presets"`

	// Source is the file the values came from, or "embedded".
	Source string `yaml:"-"`
}

// BoardConfig describes the grid and its initial pattern.
type BoardConfig struct {
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Pattern string  `yaml:"pattern"`
	Density float64 `yaml:"density"`
	Seed    int64   `yaml:"seed"`
}

// WindowConfig holds settings for the ebiten host.
type WindowConfig struct {
	Title    string `yaml:"title"`
	CellSize int    `yaml:"cell_size"`
	TPS      int    `yaml:"tps"`
}

// TUIConfig holds settings for the terminal host.
type TUIConfig struct {
	TPS int `yaml:"tps"`
}

// RunConfig holds settings for headless runs.
type RunConfig struct {
	Generations int    `yaml:"generations"`
	TPS         int    `yaml:"tps"`
	OutputDir   string `yaml:"output_dir"`
	Plot        bool   `yaml:"plot"`
}

// StorageConfig locates the run history database.
type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ServeConfig holds SSH server settings.
type ServeConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	HostKey string `yaml:"host_key"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
}

// LogConfig selects the log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ErrInvalid is wrapped by Validate failures.
var ErrInvalid = errors.New("config: invalid value")

// Default returns the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults are broken: %v", err))
	}
	cfg.Source = "embedded"
	return cfg
}

// Load resolves configuration.
// Search order: customPath -> ~/.decay-ca/config.yaml -> ./configs/decay-ca.yaml -> embedded default
// A custom path that cannot be read or parsed is an error; the other
// locations are skipped silently when missing or broken.
func Load(customPath string) (*Config, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := loadFile(filepath.Join("configs", "decay-ca.yaml")); err == nil {
		return cfg, nil
	}

	return Default(), nil
}

// loadFile unmarshals path over the embedded defaults so that only fields
// present in the file are overwritten.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.Source = path
	return cfg, nil
}

func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".decay-ca", filename)
}

// Validate checks ranges and that the rule and pattern resolve.
func (c *Config) Validate() error {
	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		return fmt.Errorf("%w: board %dx%d", ErrInvalid, c.Board.Width, c.Board.Height)
	}
	if c.Board.Density < 0 || c.Board.Density > 1 {
		return fmt.Errorf("%w: density %v", ErrInvalid, c.Board.Density)
	}
	if !life.IsPattern(c.Board.Pattern) {
		return fmt.Errorf("%w: %w: %q", ErrInvalid, life.ErrUnknownPattern, c.Board.Pattern)
	}
	if c.Window.CellSize <= 0 {
		return fmt.Errorf("%w: cell_size %d", ErrInvalid, c.Window.CellSize)
	}
	if _, err := c.ResolveRule(c.Rule); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

// ResolveRule turns a preset name or rule text into a Rule. Presets from the
// file shadow built-in ones.
func (c *Config) ResolveRule(nameOrText string) (life.Rule, error) {
	if nameOrText == "" {
		return life.DefaultRule(), nil
	}
	if text, ok := c.Presets[nameOrText]; ok {
		return life.ParseRule(text, life.Rule{})
	}
	if r, err := life.Preset(nameOrText); err == nil {
		return r, nil
	}
	return life.ParseRule(nameOrText, life.DefaultRule())
}

// PresetTable lists every known preset, built-in and configured, by name.
func (c *Config) PresetTable() map[string]string {
	table := make(map[string]string)
	for _, name := range life.PresetNames() {
		text, _ := life.PresetText(name)
		table[name] = text
	}
	for name, text := range c.Presets {
		table[name] = text
	}
	return table
}

// PresetNames returns the sorted names from PresetTable.
func (c *Config) PresetNames() []string {
	table := c.PresetTable()
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LifeConfig converts the board section into an engine config.
func (c *Config) LifeConfig() (life.Config, error) {
	r, err := c.ResolveRule(c.Rule)
	if err != nil {
		return life.Config{}, err
	}
	lc := life.DefaultConfig()
	lc.Width = c.Board.Width
	lc.Height = c.Board.Height
	lc.Rule = r
	lc.Pattern = c.Board.Pattern
	lc.Density = c.Board.Density
	if _, ok := c.PresetTable()[c.Rule]; ok {
		lc.Name = c.Rule
	}
	return lc, nil
}

// Logger builds the shared logger at the configured level.
func (c *Config) Logger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if lvl, err := log.ParseLevel(c.Log.Level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
