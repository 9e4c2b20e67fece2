package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the driver commands. The entity layer
// never reads it; it only receives the connection the drivers open.
type Config struct {
	// Database configuration
	DBHost           string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort           int           `envconfig:"DB_PORT" default:"5432"`
	DBUser           string        `envconfig:"DB_USER" default:"postgres"`
	DBPassword       string        `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName           string        `envconfig:"DB_NAME" default:"wiki_content"`
	DBSSLMode        string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBConnectTimeout time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"5s"`

	// Schema migrations
	MigrationsDir string `envconfig:"MIGRATIONS_DIR" default:"./migrations"`

	// Logging configuration
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// MetricsTextfile, when set, receives the metrics registry on exit in
	// node-exporter textfile format.
	MetricsTextfile string `envconfig:"METRICS_TEXTFILE"`
}

// Load reads an optional .env file, then configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate validates the configuration.
func (c *Config) validate() error {
	if c.DBHost == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.DBPort < 1 || c.DBPort > 65535 {
		return fmt.Errorf("DB_PORT must be between 1 and 65535")
	}
	if c.DBUser == "" {
		return fmt.Errorf("DB_USER is required")
	}
	if c.DBName == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.DBConnectTimeout < time.Second {
		return fmt.Errorf("DB_CONNECT_TIMEOUT must be at least 1s")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection URL understood by both pgx
// and golang-migrate.
func (c *Config) DatabaseURL() string {
	q := url.Values{}
	q.Set("sslmode", c.DBSSLMode)
	q.Set("connect_timeout", strconv.Itoa(int(c.DBConnectTimeout/time.Second)))

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort)),
		Path:     "/" + c.DBName,
		RawQuery: q.Encode(),
	}
	return u.String()
}
