package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/PetoAdam/homenavi/weather-widget/internal/visualcrossing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, names := range env {
		for _, n := range names {
			t.Setenv(n, "")
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8096" || cfg.Icons.Mode != "bundle" || cfg.Session.TTL != 30*time.Minute {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.VisualCrossing.APIKey != "" || cfg.VisualCrossing.BaseURL != visualcrossing.DefaultBaseURL || cfg.VisualCrossing.Timeout != 10*time.Second {
		t.Fatalf("unexpected provider defaults %+v", cfg.VisualCrossing)
	}
	if cfg.MQTT.BrokerURL != "" || cfg.MQTT.TopicPrefix != "homenavi/weather" {
		t.Fatalf("unexpected mqtt defaults %+v", cfg.MQTT)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "widget.yaml")
	body, err := yaml.Marshal(map[string]any{
		"port":           "9000",
		"log_level":      "debug",
		"visualcrossing": map[string]any{"api_key": "from-file", "timeout": "3s"},
		"icons":          map[string]any{"mode": "static"},
		"session":        map[string]any{"ttl": "5m"},
	})
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("VISUALCROSSING_API_KEY", "from-env")
	t.Setenv("WEATHER_WIDGET_PORT", "9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.VisualCrossing.APIKey != "from-env" {
		t.Fatalf("env must override file, got %q", cfg.VisualCrossing.APIKey)
	}
	if cfg.Port != "9100" {
		t.Fatalf("expected port from env, got %q", cfg.Port)
	}
	if cfg.VisualCrossing.Timeout != 3*time.Second || cfg.Session.TTL != 5*time.Minute || cfg.Icons.Mode != "static" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.SlogLevel())
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"icons":   {"WEATHER_WIDGET_ICONS": "dynamic"},
		"ttl":     {"WEATHER_WIDGET_SESSION_TTL": "-1m"},
		"timeout": {"VISUALCROSSING_TIMEOUT": "0s"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range vars {
				t.Setenv(k, v)
			}
			if _, err := Load(""); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
