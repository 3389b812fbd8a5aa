// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the service configuration.
type Config struct {
	// CatalogDir is the root directory of the catalog definitions. It
	// holds the shared system layer plus one subdirectory per campaign.
	CatalogDir string `env:"TERRA_CATALOG_DIR" envDefault:"catalog"`
	// SharedDir is the shared system layer inside CatalogDir.
	SharedDir string `env:"TERRA_SHARED_DIR" envDefault:"shared"`
	// Campaign is the id (directory name) of the campaign to serve.
	Campaign string `env:"TERRA_CAMPAIGN,required"`

	RedisAddr     string        `env:"TERRA_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"TERRA_REDIS_PASSWORD"`
	RedisDB       int           `env:"TERRA_REDIS_DB" envDefault:"0"`
	RedisPoolSize int           `env:"TERRA_REDIS_POOL_SIZE" envDefault:"10"`
	RedisIdleTime time.Duration `env:"TERRA_REDIS_IDLE_TIME" envDefault:"5m"`

	LogLevel string `env:"TERRA_LOG_LEVEL" envDefault:"info"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
