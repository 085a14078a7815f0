package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

type Config struct {
	Server  ServerConfig
	OTLP    OTLPConfig `envconfig:"OTEL"`
	Catalog CatalogConfig
	Log     LogConfig
}

type ServerConfig struct {
	Host            string        `default:"0.0.0.0"`
	Port            string        `default:"8080"`
	ShutdownTimeout time.Duration `split_words:"true" default:"5s"`
	// RateLimit is requests per second per client; 0 disables limiting
	RateLimit float64 `split_words:"true" default:"50"`
	RateBurst int     `split_words:"true" default:"100"`
}

type OTLPConfig struct {
	Enabled     bool   `default:"true"`
	Endpoint    string `envconfig:"EXPORTER_OTLP_ENDPOINT" default:"localhost:4317"`
	ServiceName string `split_words:"true" default:"catalog-api"`
	Environment string `default:"development"`
}

// CatalogConfig controls the initial contents of the catalog
type CatalogConfig struct {
	Seed int `default:"24"`
}

type LogConfig struct {
	Level string `default:"debug"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}
	if cfg.Server.RateLimit < 0 {
		return nil, errors.Errorf("SERVER_RATE_LIMIT must not be negative, got %v", cfg.Server.RateLimit)
	}
	if cfg.Catalog.Seed < 0 {
		return nil, errors.Errorf("CATALOG_SEED must not be negative, got %d", cfg.Catalog.Seed)
	}
	return &cfg, nil
}
