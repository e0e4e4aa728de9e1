package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Banner   BannerConfig   `mapstructure:"banner"`
	Keys     KeysConfig     `mapstructure:"keys"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// BannerConfig holds undo banner timing and placement.
type BannerConfig struct {
	Seconds      int           `mapstructure:"seconds"`
	MaxSeconds   int           `mapstructure:"max_seconds"`
	TickInterval time.Duration `mapstructure:"tick_interval"`
	GraceDelay   time.Duration `mapstructure:"grace_delay"`
	Insets       InsetsConfig  `mapstructure:"insets"`
}

// InsetsConfig is the banner margin in terminal cells.
type InsetsConfig struct {
	Top    int `mapstructure:"top"`
	Right  int `mapstructure:"right"`
	Bottom int `mapstructure:"bottom"`
	Left   int `mapstructure:"left"`
}

// KeysConfig holds rebindable keys.
type KeysConfig struct {
	Undo []string `mapstructure:"undo"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig controls the log file. The terminal belongs to the TUI.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// DefaultPath is where Load looks when neither an explicit path nor
// UNDOCTL_CONFIG is given.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "undoctl", "config.toml")
}

func setDefaults(v *viper.Viper) {
	home := os.Getenv("HOME")
	v.SetDefault("banner.seconds", 5)
	v.SetDefault("banner.max_seconds", 99)
	v.SetDefault("banner.tick_interval", "1s")
	v.SetDefault("banner.grace_delay", "200ms")
	v.SetDefault("banner.insets.top", 0)
	v.SetDefault("banner.insets.right", 2)
	v.SetDefault("banner.insets.bottom", 1)
	v.SetDefault("banner.insets.left", 2)
	v.SetDefault("keys.undo", []string{"u", "ctrl+z"})
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "undoctl", "undoctl.db"))
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "undoctl", "undoctl.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("metrics.addr", "")
}

// Load reads configuration from file and env. path overrides UNDOCTL_CONFIG;
// a missing file is not an error. Env var overrides use prefix UNDOCTL_.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("UNDOCTL_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("UNDOCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Default returns the built-in configuration.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

// Save writes cfg as TOML to path (DefaultPath when empty), creating the
// directory if needed.
func Save(cfg Config, path string) (string, error) {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("banner.seconds", cfg.Banner.Seconds)
	v.Set("banner.max_seconds", cfg.Banner.MaxSeconds)
	v.Set("banner.tick_interval", cfg.Banner.TickInterval.String())
	v.Set("banner.grace_delay", cfg.Banner.GraceDelay.String())
	v.Set("banner.insets.top", cfg.Banner.Insets.Top)
	v.Set("banner.insets.right", cfg.Banner.Insets.Right)
	v.Set("banner.insets.bottom", cfg.Banner.Insets.Bottom)
	v.Set("banner.insets.left", cfg.Banner.Insets.Left)
	v.Set("keys.undo", cfg.Keys.Undo)
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("metrics.addr", cfg.Metrics.Addr)

	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
