package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// APIConfig holds the remote shop backend settings.
type APIConfig struct {
	// BaseURL is the root URL of the shop API. Empty runs against the
	// local store only.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TimeoutSec bounds a single HTTP request.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// HealthIntervalSec is how often connectivity is probed.
	HealthIntervalSec int `mapstructure:"health_interval_sec" yaml:"health_interval_sec"`
}

// StoreConfig holds the local SQLite settings.
type StoreConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// LogConfig controls where the std logger writes while the TUI runs.
type LogConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	API      APIConfig      `mapstructure:"api" yaml:"api"`
	Store    StoreConfig    `mapstructure:"store" yaml:"store"`
	Display  DisplayConfig  `mapstructure:"display" yaml:"display"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Shipping []ShippingType `mapstructure:"shipping" yaml:"shipping"`
}

// Offline reports whether no remote API is configured.
func (c *AppConfig) Offline() bool {
	return strings.TrimSpace(c.API.BaseURL) == ""
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/shop/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "shop")
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "shop")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		API: APIConfig{
			TimeoutSec:        30,
			HealthIntervalSec: 15,
		},
		Store:    StoreConfig{Path: filepath.Join(dataDir(), "shop.db")},
		Display:  DisplayConfig{Theme: "default"},
		Log:      LogConfig{Path: filepath.Join(dataDir(), "shop.log")},
		Shipping: DefaultShippingTypes(),
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Environment variables prefixed with SHOP_ override file values. If the
// file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	def := defaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("SHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("api.base_url", "")
	v.SetDefault("api.timeout_sec", def.API.TimeoutSec)
	v.SetDefault("api.health_interval_sec", def.API.HealthIntervalSec)
	v.SetDefault("store.path", def.Store.Path)
	v.SetDefault("display.theme", def.Display.Theme)
	v.SetDefault("log.path", def.Log.Path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if _, ok := err.(*os.PathError); !ok && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := defaultAppConfig()
	cfg.Shipping = nil
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.API.TimeoutSec <= 0 {
		cfg.API.TimeoutSec = def.API.TimeoutSec
	}
	if cfg.API.HealthIntervalSec <= 0 {
		cfg.API.HealthIntervalSec = def.API.HealthIntervalSec
	}
	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")

	// An empty or invalid list falls back to the built-in options.
	if len(cfg.Shipping) == 0 || validateShipping(cfg.Shipping) != nil {
		cfg.Shipping = DefaultShippingTypes()
	}

	return cfg, nil
}

// validateShipping rejects duplicate IDs and untitled options.
func validateShipping(list []ShippingType) error {
	seen := make(map[int]bool, len(list))
	for _, s := range list {
		if strings.TrimSpace(s.Title) == "" {
			return fmt.Errorf("shipping option %d has no title", s.ID)
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate shipping option id %d", s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("api", cfg.API)
	v.Set("store", cfg.Store)
	v.Set("display", cfg.Display)
	v.Set("log", cfg.Log)
	v.Set("shipping", cfg.Shipping)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
