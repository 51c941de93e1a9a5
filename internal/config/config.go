package config

import (
	"fmt"
	"strings"

	pkgconfig "github.com/utafrali/glamstore/pkg/config"
)

// Config holds all configuration for the storefront.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// MongoDB
	MongoURI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"glamstore"`

	// Redis (session store)
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Sessions
	SessionSecret   string `env:"SESSION_SECRET" envDefault:"dev-secret-change-me"`
	SessionTTLHours int    `env:"SESSION_TTL_HOURS" envDefault:"168"`

	// Uploads
	UploadDir string `env:"UPLOAD_DIR" envDefault:"./uploads"`

	// CORS
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`

	// Seed the catalog with demo products when it is empty.
	SeedCatalog bool `env:"SEED_CATALOG" envDefault:"true"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.SessionTTLHours < 1 {
		return fmt.Errorf("invalid session TTL: %d hours", c.SessionTTLHours)
	}
	if strings.TrimSpace(c.SessionSecret) == "" {
		return fmt.Errorf("session secret must not be empty")
	}
	if c.Environment == "production" && c.SessionSecret == "dev-secret-change-me" {
		return fmt.Errorf("default session secret is not allowed in production")
	}
	return nil
}

// IsProduction reports whether the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
