// Package config loads invdash settings from a TOML file and INVDASH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ConfigEnv overrides the config file location.
const ConfigEnv = "INVDASH_CONFIG"

// Config holds application configuration.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
	UI        UIConfig        `mapstructure:"ui"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds log file settings.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	PageSize   int    `mapstructure:"page_size"`
	DateFormat string `mapstructure:"date_format"`
}

// HTTPConfig holds the API listener.
type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// TelemetryConfig holds OTLP export settings. An empty Endpoint disables export.
type TelemetryConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".invdash"
	}
	return filepath.Join(home, ".invdash")
}

// DefaultPath is where Load looks when INVDASH_CONFIG is unset.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "invdash", "config.toml")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("database.path", filepath.Join(baseDir(), "invdash.db"))
	v.SetDefault("log.path", filepath.Join(baseDir(), "logs", "invdash.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.page_size", 50)
	v.SetDefault("ui.date_format", "2006-01-02")
	v.SetDefault("http.addr", "127.0.0.1:8089")
	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.service_name", "invdash")
	v.SetConfigType("toml")
	v.SetEnvPrefix("INVDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration from path (or INVDASH_CONFIG, or DefaultPath) and the environment.
// A missing file is not an error; defaults apply.
func Load(path string) (Config, error) {
	v := newViper()
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path == "" {
		path = DefaultPath()
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.UI.PageSize <= 0 {
		return Config{}, fmt.Errorf("ui.page_size must be positive, got %d", c.UI.PageSize)
	}
	return c, nil
}

// Save writes cfg to path (or DefaultPath), creating the directory if needed.
func Save(path string, cfg Config) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("ui.page_size", cfg.UI.PageSize)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("http.addr", cfg.HTTP.Addr)
	v.Set("telemetry.endpoint", cfg.Telemetry.Endpoint)
	v.Set("telemetry.service_name", cfg.Telemetry.ServiceName)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
