package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/regimen/internal/model"
)

func TestLoadFromMissingReturnsDefaults(t *testing.T) {
	t.Setenv(EnvCalorieGoal, "")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Food.DailyCalorieGoal != 2000 {
		t.Errorf("DailyCalorieGoal = %v, want 2000", cfg.Food.DailyCalorieGoal)
	}
	if cfg.Server.Addr != "127.0.0.1:8787" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
}

func TestSaveToThenLoadFrom(t *testing.T) {
	t.Setenv(EnvCalorieGoal, "")
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	want := DefaultConfig()
	want.Food.DailyCalorieGoal = 1800
	want.Food.Database = "/tmp/foods.db"
	want.Appearance.Theme = "catppuccin-mocha"
	want.Log.Debug = true

	if err := SaveTo(path, want); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got != want {
		t.Errorf("LoadFrom = %+v, want %+v", got, want)
	}
}

func TestLoadFromPartialFileKeepsDefaults(t *testing.T) {
	t.Setenv(EnvCalorieGoal, "")
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[appearance]\ntheme = \"tokyo-night\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Appearance.Theme != "tokyo-night" {
		t.Errorf("Theme = %q, want tokyo-night", cfg.Appearance.Theme)
	}
	if cfg.Food.DailyCalorieGoal != 2000 {
		t.Errorf("DailyCalorieGoal = %v, want default 2000", cfg.Food.DailyCalorieGoal)
	}
}

func TestEnvOverridesCalorieGoal(t *testing.T) {
	t.Setenv(EnvCalorieGoal, "2500")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Food.DailyCalorieGoal != 2500 {
		t.Errorf("DailyCalorieGoal = %v, want 2500", cfg.Food.DailyCalorieGoal)
	}
}

func TestInvalidGoalIsConfigError(t *testing.T) {
	for _, env := range []string{"0", "lots"} {
		t.Run(env, func(t *testing.T) {
			t.Setenv(EnvCalorieGoal, env)
			_, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
			var cfgErr *model.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("LoadFrom err = %v, want ConfigError", err)
			}
		})
	}
}

func TestLoadFromBadTOML(t *testing.T) {
	t.Setenv(EnvCalorieGoal, "")
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[food\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom with bad TOML: want error")
	}
}

func TestConfigDirHonorsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if got, want := ConfigPath(), filepath.Join(dir, "regimen", "config.toml"); got != want {
		t.Errorf("ConfigPath = %q, want %q", got, want)
	}
}
