package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// defaultJWTSecret is only acceptable in development mode.
const defaultJWTSecret = "change-this-to-a-secure-secret"

// Config holds all configuration for the realty API.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"PORT" envDefault:"3000"`

	// PostgreSQL
	PostgresHost string `env:"DB_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"DB_PORT" envDefault:"5432"`
	PostgresUser string `env:"DB_USER" envDefault:"realty"`
	PostgresPass string `env:"DB_PASSWORD" envDefault:"realty_secret"`
	PostgresDB   string `env:"DB_DATABASE" envDefault:"realty_db"`
	PostgresSSL  string `env:"DB_SSL_MODE" envDefault:"disable"`

	DBMaxConns            int32 `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns            int32 `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetimeMins int   `env:"DB_MAX_CONN_LIFETIME_MINS" envDefault:"60"`
	DBMaxConnIdleTimeMins int   `env:"DB_MAX_CONN_IDLE_TIME_MINS" envDefault:"30"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// JWT
	JWTSecret string `env:"JWT_SECRET" envDefault:"change-this-to-a-secure-secret"`
	JWTExpiry string `env:"JWT_EXPIRY" envDefault:"1h"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}
	if _, err := time.ParseDuration(cfg.JWTExpiry); err != nil {
		return nil, fmt.Errorf("parse JWT expiry %q: %w", cfg.JWTExpiry, err)
	}

	// Outside development, require an explicitly set, strong JWT secret.
	if cfg.Environment != "development" {
		if cfg.JWTSecret == defaultJWTSecret {
			return nil, fmt.Errorf("JWT_SECRET must be explicitly set via environment variable in %q mode", cfg.Environment)
		}
		if len(cfg.JWTSecret) < 32 {
			return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters long, got %d", len(cfg.JWTSecret))
		}
	}

	return cfg, nil
}

// JWTExpiryDuration returns the parsed token lifetime. Load validates the
// format, so this never fails after a successful Load.
func (c *Config) JWTExpiryDuration() time.Duration {
	d, err := time.ParseDuration(c.JWTExpiry)
	if err != nil {
		return time.Hour
	}
	return d
}
