package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/PetoAdam/homenavi/weather-widget/internal/icons"
	"github.com/PetoAdam/homenavi/weather-widget/internal/visualcrossing"
)

type VisualCrossingConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type IconsConfig struct {
	Mode string `mapstructure:"mode"`
}

type SessionConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type MQTTConfig struct {
	BrokerURL   string `mapstructure:"broker_url"`
	TopicPrefix string `mapstructure:"topic_prefix"`
}

type OTelConfig struct {
	Endpoint string `mapstructure:"endpoint"`
}

type Config struct {
	Port           string               `mapstructure:"port"`
	LogLevel       string               `mapstructure:"log_level"`
	VisualCrossing VisualCrossingConfig `mapstructure:"visualcrossing"`
	Icons          IconsConfig          `mapstructure:"icons"`
	Session        SessionConfig        `mapstructure:"session"`
	MQTT           MQTTConfig           `mapstructure:"mqtt"`
	OTel           OTelConfig           `mapstructure:"otel"`
}

// env lists the environment variables bound to each key, first match wins.
var env = map[string][]string{
	"port":                    {"PORT", "WEATHER_WIDGET_PORT"},
	"log_level":               {"LOG_LEVEL"},
	"visualcrossing.api_key":  {"VISUALCROSSING_API_KEY"},
	"visualcrossing.base_url": {"VISUALCROSSING_BASE_URL"},
	"visualcrossing.timeout":  {"VISUALCROSSING_TIMEOUT"},
	"icons.mode":              {"WEATHER_WIDGET_ICONS"},
	"session.ttl":             {"WEATHER_WIDGET_SESSION_TTL"},
	"mqtt.broker_url":         {"MQTT_BROKER_URL"},
	"mqtt.topic_prefix":       {"MQTT_TOPIC_PREFIX"},
	"otel.endpoint":           {"OTEL_EXPORTER_OTLP_ENDPOINT"},
}

// Load reads defaults, then the optional YAML file at path, then the
// environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("port", "8096")
	v.SetDefault("log_level", "info")
	v.SetDefault("visualcrossing.base_url", visualcrossing.DefaultBaseURL)
	v.SetDefault("visualcrossing.timeout", "10s")
	v.SetDefault("icons.mode", icons.ModeBundle)
	v.SetDefault("session.ttl", "30m")
	v.SetDefault("mqtt.topic_prefix", "homenavi/weather")

	for key, names := range env {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return Config{}, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Icons.Mode {
	case icons.ModeBundle, icons.ModeStatic, icons.ModeNone:
	default:
		return fmt.Errorf("invalid icons.mode %q (want bundle, static or none)", c.Icons.Mode)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive, got %s", c.Session.TTL)
	}
	if c.VisualCrossing.Timeout <= 0 {
		return fmt.Errorf("visualcrossing.timeout must be positive, got %s", c.VisualCrossing.Timeout)
	}
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("port must not be empty")
	}
	return nil
}

// SlogLevel maps LogLevel onto slog, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
