package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// StoreConfig selects where subscriptions are kept
type StoreConfig struct {
	Backend string `yaml:"backend,omitempty"` // file, sqlite or memory
	Path    string `yaml:"path,omitempty"`    // directory for file, database file for sqlite
	Key     string `yaml:"key,omitempty"`     // storage key, defaults to "subscriptions"
	Format  string `yaml:"format,omitempty"`  // json or yaml
}

type Config struct {
	// Currency is the ISO code used when formatting amounts (e.g. "USD").
	// Empty means detect from the system locale.
	Currency string `yaml:"currency,omitempty"`

	// Locale controls number formatting, e.g. "sv_SE" or "en-US".
	// Empty means the system locale or the currency's home locale.
	Locale string `yaml:"locale,omitempty"`

	Store StoreConfig `yaml:"store,omitempty"`
}

// DefaultConfigDir returns ~/.subscription-calendar
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".subscription-calendar")
}

// DefaultConfigPath returns the default config file path (~/.subscription-calendar/config.yaml)
func DefaultConfigPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// NewDefaultConfig returns the config used when no file exists
func NewDefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Store.Backend == "" {
		c.Store.Backend = "file"
	}
	if c.Store.Path == "" {
		dir := DefaultConfigDir()
		if dir == "" {
			dir = "."
		}
		switch c.Store.Backend {
		case "sqlite":
			c.Store.Path = filepath.Join(dir, "subscriptions.db")
		default:
			c.Store.Path = filepath.Join(dir, "data")
		}
	}
	if c.Store.Key == "" {
		c.Store.Key = DefaultStorageKey
	}
	if c.Store.Format == "" {
		c.Store.Format = "json"
	}
}

// LoadConfig reads a config file and fills in defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.Store.Backend != "" && !IsKnownBackend(cfg.Store.Backend) {
		return nil, fmt.Errorf("invalid store backend %q (available: %v)", cfg.Store.Backend, AvailableBackends())
	}
	if _, err := GetCodec(cfg.Store.Format); err != nil {
		return nil, fmt.Errorf("invalid store format: %w", err)
	}
	if cfg.Locale != "" {
		if _, err := ParseLocale(cfg.Locale); err != nil {
			return nil, err
		}
	}
	if strings.ContainsAny(cfg.Store.Key, `/\`) {
		return nil, fmt.Errorf("invalid store key %q", cfg.Store.Key)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadConfigOrDefault loads path, falling back to defaults when the file does not exist
func LoadConfigOrDefault(path string) (*Config, error) {
	if path == "" {
		return NewDefaultConfig(), nil
	}
	cfg, err := LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewDefaultConfig(), nil
	}
	return cfg, err
}

// ApplyStoreArg overrides the store location with a "backend:path" argument.
// A bare path keeps the configured backend.
func (c *Config) ApplyStoreArg(arg string) {
	if arg == "" {
		return
	}
	backend, location := ParseStoreArg(arg)
	if backend != "" {
		c.Store.Backend = backend
	}
	c.Store.Path = location
	if location == "" {
		c.applyDefaults()
	}
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
