// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	App      AppConfig
	Log      LogConfig
	Breaker  BreakerConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string `env:"PORT" envDefault:"8080"`
	ReadTimeout  int    `env:"SERVER_READ_TIMEOUT" envDefault:"15"`  // seconds
	WriteTimeout int    `env:"SERVER_WRITE_TIMEOUT" envDefault:"15"` // seconds
	IdleTimeout  int    `env:"SERVER_IDLE_TIMEOUT" envDefault:"60"`  // seconds
}

// DatabaseConfig holds connection settings. Driver is postgres or sqlite;
// Path is only used by sqlite.
type DatabaseConfig struct {
	Driver   string `env:"DB_DRIVER" envDefault:"postgres"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"studio"`
	Password string `env:"DB_PASSWORD" envDefault:"studio"`
	DBName   string `env:"DB_NAME" envDefault:"studio"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	Path     string `env:"DB_PATH" envDefault:"studio.db"`
	Debug    bool   `env:"DB_DEBUG"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev        bool `env:"DEV" envDefault:"true"`
	Migrations bool `env:"MIGRATIONS"`
	Seed       bool `env:"DB_SEED"`
	// RevenueTarget is the yearly revenue goal shown on the dashboard; 0 hides it.
	RevenueTarget float64 `env:"REVENUE_TARGET" envDefault:"0"`
}

// LogConfig selects the log level and an optional directory for rotated files.
type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	Dir   string `env:"LOG_DIR"`
}

// BreakerConfig tunes the circuit breaker in front of each table.
type BreakerConfig struct {
	MaxRequests uint32        `env:"BREAKER_MAX_REQUESTS" envDefault:"1"`
	Timeout     time.Duration `env:"BREAKER_TIMEOUT" envDefault:"5s"`
	MaxFailures uint32        `env:"BREAKER_MAX_FAILURES" envDefault:"3"`
}

// DSN returns the connection string for the configured driver: a key=value
// list for postgres, the file path for sqlite.
func (d DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// URL returns the PostgreSQL connection string in URL format.
func (d DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.DBName,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.Database.Driver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", cfg.Database.Driver)
	}
	return cfg, nil
}
