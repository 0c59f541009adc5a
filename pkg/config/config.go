// Package config handles loading and saving wt configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/wt/config.yaml (or config.toml)
//   - Data:   ~/.local/share/wt/ (default dataset location)
//
// Flags override config values; config values override defaults.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/wordtree/pkg/model"
)

const appName = "wt"

// DataConfig locates the dataset.
type DataConfig struct {
	Path  string `yaml:"path,omitempty" toml:"path"`   // .json, .db or .sqlite
	Watch bool   `yaml:"watch,omitempty" toml:"watch"` // reload on change
}

// CloudConfig controls cloud normalization and layout.
type CloudConfig struct {
	Floor   float64 `yaml:"floor,omitempty" toml:"floor"`     // drop frequencies <= floor
	Limit   int     `yaml:"limit,omitempty" toml:"limit"`     // top-N words, 0 = all
	Padding float64 `yaml:"padding,omitempty" toml:"padding"` // minimum 6
	Width   float64 `yaml:"width,omitempty" toml:"width"`     // static renders
}

// TreeConfig controls tree rendering.
type TreeConfig struct {
	Fullscreen bool `yaml:"fullscreen,omitempty" toml:"fullscreen"`
	Depth      int  `yaml:"depth,omitempty" toml:"depth"` // levels expanded for static renders
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	ResizeDebounce time.Duration `yaml:"resize_debounce,omitempty" toml:"resize_debounce"`
	Theme          string        `yaml:"theme,omitempty" toml:"theme"` // auto, dark, light
}

// OutputConfig controls exported files.
type OutputConfig struct {
	Dir    string `yaml:"dir,omitempty" toml:"dir"`
	Format string `yaml:"format,omitempty" toml:"format"` // svg, svgz, png
}

// Config is the top-level configuration for wt.
type Config struct {
	Data   DataConfig           `yaml:"data,omitempty" toml:"data"`
	Filter model.FilterCriteria `yaml:"filter,omitempty" toml:"filter"`
	Cloud  CloudConfig          `yaml:"cloud,omitempty" toml:"cloud"`
	Tree   TreeConfig           `yaml:"tree,omitempty" toml:"tree"`
	UI     UIConfig             `yaml:"ui,omitempty" toml:"ui"`
	Output OutputConfig         `yaml:"output,omitempty" toml:"output"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Cloud: CloudConfig{
			Limit:   100,
			Padding: 6,
			Width:   960,
		},
		Tree: TreeConfig{
			Depth: 2,
		},
		UI: UIConfig{
			ResizeDebounce: 150 * time.Millisecond,
			Theme:          "auto",
		},
		Output: OutputConfig{
			Dir:    ".",
			Format: "svg",
		},
	}
}

func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append(append([]string{home}, fallback...), appName)...)
}

// ConfigDir returns the XDG config directory for wt.
func ConfigDir() string { return xdgDir("XDG_CONFIG_HOME", ".config") }

// DataDir returns the XDG data directory for wt.
func DataDir() string { return xdgDir("XDG_DATA_HOME", ".local", "share") }

// ConfigPath returns the config file path. A config.toml is used when it
// exists and config.yaml does not.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	yamlPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath
	}
	tomlPath := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath
	}
	return yamlPath
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path. The format follows the
// extension: .toml is TOML, anything else YAML.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if isTOML(path) {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Data.Path = expandHome(cfg.Data.Path)
	cfg.Output.Dir = expandHome(cfg.Output.Dir)
	return cfg, cfg.Validate()
}

// Validate reports values no command can work with.
func (c Config) Validate() error {
	if c.Cloud.Limit < 0 {
		return fmt.Errorf("cloud.limit must be >= 0, got %d", c.Cloud.Limit)
	}
	if c.Cloud.Width < 0 {
		return fmt.Errorf("cloud.width must be >= 0, got %v", c.Cloud.Width)
	}
	if c.Tree.Depth < 0 {
		return fmt.Errorf("tree.depth must be >= 0, got %d", c.Tree.Depth)
	}
	switch strings.ToLower(c.Output.Format) {
	case "", "svg", "svgz", "png":
	default:
		return fmt.Errorf("output.format %q is not one of svg, svgz, png", c.Output.Format)
	}
	return nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path, as TOML for .toml paths and
// YAML otherwise.
func SaveTo(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		if data, err = yaml.Marshal(cfg); err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// DataPath returns the configured dataset, falling back to dataset.json in
// the data directory.
func (c Config) DataPath() string {
	if c.Data.Path != "" {
		return c.Data.Path
	}
	dir := DataDir()
	if dir == "" {
		return "dataset.json"
	}
	return filepath.Join(dir, "dataset.json")
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
