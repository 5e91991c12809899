package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/opal-lang/mirror/runtime/cache"
	"github.com/opal-lang/mirror/runtime/parser"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Output formats
const (
	OutputJSON = "json"
	OutputText = "text"
)

// defaultConfigFiles are searched in the working directory when no
// --config flag is given
var defaultConfigFiles = []string{"mirror.yaml", "mirror.yml", "mirror.toml"}

// Config holds CLI settings read from mirror.yaml or mirror.toml
type Config struct {
	MaxDepth  int    `yaml:"max_depth" toml:"max_depth"`
	LogLevel  string `yaml:"log_level" toml:"log_level"`
	Color     string `yaml:"color" toml:"color"`
	CacheSize int    `yaml:"cache_size" toml:"cache_size"`
	Output    string `yaml:"output" toml:"output"`
}

// DefaultConfig returns the settings used when no config file exists
func DefaultConfig() *Config {
	return &Config{
		MaxDepth:  parser.DefaultMaxDepth,
		LogLevel:  zerolog.LevelWarnValue,
		Color:     ColorAuto,
		CacheSize: cache.DefaultSize,
		Output:    OutputText,
	}
}

// LoadConfig reads the config file at path over the defaults. An empty
// path looks for the default file names and falls back to the defaults
// when none exists.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		for _, name := range defaultConfigFiles {
			if _, err := os.Stat(name); err == nil {
				path = name
				break
			}
		}
		if path == "" {
			return cfg, nil
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, errors.Wrapf(err, "YAML parse error in %s", path)
		}
	case ".toml":
		if _, err := toml.Decode(string(content), cfg); err != nil {
			return nil, errors.Wrapf(err, "TOML parse error in %s", path)
		}
	default:
		return nil, errors.Errorf("unsupported config format %q: use .yaml, .yml or .toml", filepath.Ext(path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Validate checks that every setting holds a known value
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Errorf("unknown log_level %q", c.LogLevel)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Errorf("color must be auto, always or never, got %q", c.Color)
	}
	switch c.Output {
	case OutputJSON, OutputText:
	default:
		return errors.Errorf("output must be json or text, got %q", c.Output)
	}
	if c.CacheSize <= 0 {
		return errors.Errorf("cache_size must be positive, got %d", c.CacheSize)
	}
	return nil
}
