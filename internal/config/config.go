// Package config loads tensornet's YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/tensornet/internal/tensor"
)

// Config represents the tensornet configuration file
// (~/.config/tensornet/config.yaml). Pointer fields distinguish "not set"
// from zero values.
type Config struct {
	Backend   string  `yaml:"backend"`
	DType     string  `yaml:"dtype"`
	Seed      *uint64 `yaml:"seed"`
	LogLevel  string  `yaml:"log_level"`
	LogFormat string  `yaml:"log_format"`

	Server Server `yaml:"server"`
}

// Server holds the HTTP API settings.
type Server struct {
	Address     string         `yaml:"address"`
	ReadTimeout *time.Duration `yaml:"read_timeout"`
}

// Defaults used when neither the file nor a flag sets a value.
const (
	DefaultBackend     = "gonum"
	DefaultAddress     = "127.0.0.1:8090"
	DefaultReadTimeout = 30 * time.Second
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
)

// Path returns the default config file location, or "" if the user config
// directory is unknown.
func Path() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tensornet", "config.yaml")
}

// Load reads the config file at path. A missing file yields the defaults;
// a malformed one is an error.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}.withDefaults(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}.withDefaults(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML config data and validates it.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg = cfg.withDefaults()
	if _, err := cfg.DataType(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c Config) withDefaults() Config {
	if c.Backend == "" {
		c.Backend = DefaultBackend
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}
	if c.Server.ReadTimeout == nil {
		d := DefaultReadTimeout
		c.Server.ReadTimeout = &d
	}
	return c
}

// DataType returns the configured default dtype (Unspecified when unset).
func (c Config) DataType() (tensor.DataType, error) {
	return tensor.ParseDataType(c.DType)
}
