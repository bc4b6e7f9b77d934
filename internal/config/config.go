// Package config loads and saves the regimen TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/regimen/internal/model"
)

// EnvCalorieGoal overrides food.daily_calorie_goal when set.
const EnvCalorieGoal = "REGIMEN_CALORIE_GOAL"

// Config holds all regimen configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Food       FoodConfig       `toml:"food"`
	Appearance AppearanceConfig `toml:"appearance"`
	Server     ServerConfig     `toml:"server"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Catalog string `toml:"catalog,omitempty"` // YAML catalog; empty uses the built-in one
}

// FoodConfig holds food tracker settings.
type FoodConfig struct {
	DailyCalorieGoal float64 `toml:"daily_calorie_goal"`
	Database         string  `toml:"database,omitempty"` // SQLite food database
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ServerConfig holds action API settings.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	EventsBuffer int    `toml:"events_buffer"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Debug bool `toml:"debug"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Food: FoodConfig{
			DailyCalorieGoal: 2000,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8787",
			EventsBuffer: 200,
		},
	}
}

// Validate reports the first invalid setting as a *model.ConfigError.
func (c Config) Validate() error {
	if c.Food.DailyCalorieGoal <= 0 {
		return &model.ConfigError{
			Field:  "food.daily_calorie_goal",
			Reason: fmt.Sprintf("must be positive, got %g", c.Food.DailyCalorieGoal),
		}
	}
	if c.Server.EventsBuffer < 0 {
		return &model.ConfigError{Field: "server.events_buffer", Reason: "must not be negative"}
	}
	return nil
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "regimen")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "regimen")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config at path, applies environment overrides and
// validates the result.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if v := os.Getenv(EnvCalorieGoal); v != "" {
		goal, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, &model.ConfigError{Field: EnvCalorieGoal, Reason: fmt.Sprintf("not a number: %q", v)}
		}
		cfg.Food.DailyCalorieGoal = goal
	}

	return cfg, cfg.Validate()
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
