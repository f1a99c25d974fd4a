// Package config provides configuration structures and validation for the
// application. Settings come from an env file and environment variables and
// cover the HTTP server, PostgreSQL, the store's opening balance, and the
// cover image client.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds the complete application configuration. Each field covers one
// subsystem and is validated during startup.
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	Postgres    PostgresConfig
	Store       StoreConfig
	Covers      CoversConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port            int           // Port to listen on
	ShutdownTimeout time.Duration // Grace period for server shutdown
	ReadTimeout     time.Duration // Maximum duration for reading entire request
	WriteTimeout    time.Duration // Maximum duration for writing response
	IdleTimeout     time.Duration // Maximum duration to wait for next request
}

// PostgresConfig contains PostgreSQL configuration
type PostgresConfig struct {
	URL             string        // Database connection string
	MaxConns        int32         // Maximum number of open connections
	MinConns        int32         // Maximum number of idle connections
	ConnMaxLifetime time.Duration // Maximum lifetime of a connection
	ConnMaxIdleTime time.Duration // Maximum idle time of a connection
	MigrationsPath  string        // Path to migration files
}

// StoreConfig contains the bookstore ledger configuration
type StoreConfig struct {
	// OpeningBalance seeds the cash box the first time the store starts
	// against an empty settings table.
	OpeningBalance decimal.Decimal
}

// CoversConfig contains the cover image client configuration
type CoversConfig struct {
	BaseURL         string        // Cover image service base URL
	FetchTimeout    time.Duration // Upper bound on a single cover fetch
	CacheSize       int           // Number of covers kept in the LRU cache
	PrefetchWorkers int           // Worker pool size for catalog prefetch
}

// validate ensures all configuration values meet minimum requirements
func (c *Config) validate() error {
	var validationErrors []string

	if c.Server.Port <= 0 {
		validationErrors = append(validationErrors, "SERVER_PORT must be greater than 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}
	if c.Server.ReadTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_READ_TIMEOUT must be greater than 0")
	}
	if c.Server.WriteTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if c.Server.IdleTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_IDLE_TIMEOUT must be greater than 0")
	}

	if c.Postgres.URL == "" {
		validationErrors = append(validationErrors, "POSTGRES_URL is required")
	}
	if c.Postgres.MaxConns <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MAX_CONNS must be greater than 0")
	}
	if c.Postgres.MinConns <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MIN_CONNS must be greater than 0")
	}
	if c.Postgres.ConnMaxLifetime <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MAX_CONN_LIFETIME must be greater than 0")
	}
	if c.Postgres.ConnMaxIdleTime <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MAX_CONN_IDLE_TIME must be greater than 0")
	}

	if c.Store.OpeningBalance.IsNegative() {
		validationErrors = append(validationErrors, "STORE_OPENING_BALANCE cannot be negative")
	}

	if c.Covers.BaseURL == "" {
		validationErrors = append(validationErrors, "COVERS_BASE_URL is required")
	}
	if c.Covers.FetchTimeout <= 0 {
		validationErrors = append(validationErrors, "COVERS_FETCH_TIMEOUT must be greater than 0")
	}
	if c.Covers.CacheSize <= 0 {
		validationErrors = append(validationErrors, "COVERS_CACHE_SIZE must be greater than 0")
	}
	if c.Covers.PrefetchWorkers <= 0 {
		validationErrors = append(validationErrors, "COVERS_PREFETCH_WORKERS must be greater than 0")
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}

	return nil
}
