// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for weatherlog configuration.
	DefaultConfigDir = ".weatherlog"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
)

// Duration wraps time.Duration so yaml values like "10s" parse naturally.
type Duration time.Duration

// UnmarshalYAML parses a duration string such as "10s" or "1m30s".
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	Server  ServerConfig  `yaml:"server,omitempty"`
	History HistoryConfig `yaml:"history,omitempty"`
	Weather WeatherConfig `yaml:"weather,omitempty"`
	SQLite  SQLiteConfig  `yaml:"sqlite,omitempty"`
}

// ServerConfig holds configuration for the local persistence server.
type ServerConfig struct {
	Addr            string   `yaml:"addr,omitempty"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout,omitempty"`
}

// HistoryConfig holds configuration for the history API client.
type HistoryConfig struct {
	BaseURL string   `yaml:"base_url,omitempty"`
	Timeout Duration `yaml:"timeout,omitempty"`
}

// WeatherConfig holds configuration for the upstream weather providers.
type WeatherConfig struct {
	ForecastURL string   `yaml:"forecast_url,omitempty"`
	GeocodeURL  string   `yaml:"geocode_url,omitempty"`
	Timeout     Duration `yaml:"timeout,omitempty"`
	MaxRetries  int      `yaml:"max_retries,omitempty"`
	Unit        string   `yaml:"unit,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite history database.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database backing the server.
	Path string `yaml:"path,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8017",
			ShutdownTimeout: Duration(10 * time.Second),
		},
		History: HistoryConfig{
			BaseURL: "http://localhost:8017",
			Timeout: Duration(10 * time.Second),
		},
		Weather: WeatherConfig{
			ForecastURL: "https://api.open-meteo.com/v1/forecast",
			GeocodeURL:  "https://photon.komoot.io/api/",
			Timeout:     Duration(10 * time.Second),
			MaxRetries:  3,
			Unit:        "celsius",
		},
	}
}

// Load loads configuration from the .weatherlog directory in the given path.
// A missing config file is not an error: defaults apply, adjusted by any
// environment overrides. A .env file next to the config is honored.
func Load(basePath string) (*Config, error) {
	// Best effort: a missing .env file is fine.
	_ = godotenv.Load(filepath.Join(basePath, ".env"))

	cfg := Default()

	configFile := filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
	data, err := os.ReadFile(configFile)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if cfg.SQLite.Path == "" {
		cfg.SQLite.Path = filepath.Join(basePath, DefaultConfigDir, "weatherlog.db")
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if addr := os.Getenv("WEATHERLOG_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if url := os.Getenv("WEATHERLOG_HISTORY_URL"); url != "" {
		c.History.BaseURL = url
	}
	if url := os.Getenv("WEATHERLOG_FORECAST_URL"); url != "" {
		c.Weather.ForecastURL = url
	}
	if url := os.Getenv("WEATHERLOG_GEOCODE_URL"); url != "" {
		c.Weather.GeocodeURL = url
	}
	if unit := os.Getenv("WEATHERLOG_UNIT"); unit != "" {
		c.Weather.Unit = unit
	}
	if path := os.Getenv("WEATHERLOG_DB_PATH"); path != "" {
		c.SQLite.Path = path
	}
}

// ConfigDir returns the path to the .weatherlog config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// Exists checks if a weatherlog config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
