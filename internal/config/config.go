// Package config loads service settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Job-site location the forecast is fetched for.
	SiteName string  `env:"SITE_NAME" envDefault:"Default Job Site"`
	SiteLat  float64 `env:"SITE_LAT" envDefault:"39.7392"`
	SiteLon  float64 `env:"SITE_LON" envDefault:"-104.9903"`

	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"15m"`

	ForecastBaseURL   string        `env:"FORECAST_BASE_URL" envDefault:"https://api.open-meteo.com"`
	ForecastDays      int           `env:"FORECAST_DAYS" envDefault:"5"`
	ForecastTimeout   time.Duration `env:"FORECAST_TIMEOUT" envDefault:"10s"`
	ForecastCacheSize int           `env:"FORECAST_CACHE_SIZE" envDefault:"100"`
	ForecastCacheTTL  time.Duration `env:"FORECAST_CACHE_TTL" envDefault:"10m"`

	KafkaEnabled   bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers   []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaSinkTopic string   `env:"KAFKA_SINK_TOPIC" envDefault:"roof-assembly-decisions"`

	WorklogPath string `env:"WORKLOG_PATH" envDefault:"worklog.db"`
}

// Load reads configuration from environment variables, applying defaults
// where unset, and validates the result.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.SiteLat < -90 || cfg.SiteLat > 90 {
		return nil, fmt.Errorf("SITE_LAT %v out of range [-90, 90]", cfg.SiteLat)
	}
	if cfg.SiteLon < -180 || cfg.SiteLon > 180 {
		return nil, fmt.Errorf("SITE_LON %v out of range [-180, 180]", cfg.SiteLon)
	}
	if cfg.ForecastDays < 1 || cfg.ForecastDays > 16 {
		return nil, fmt.Errorf("FORECAST_DAYS %d out of range [1, 16]", cfg.ForecastDays)
	}
	if cfg.RefreshInterval <= 0 {
		return nil, errors.New("REFRESH_INTERVAL must be positive")
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.ForecastCacheSize <= 0 {
		return nil, errors.New("FORECAST_CACHE_SIZE must be positive")
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaSinkTopic == "" {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_SINK_TOPIC is empty")
		}
	}

	return &cfg, nil
}
