package easel

import (
	"log/slog"
)

// clientConfig holds configuration for Client construction.
type clientConfig struct {
	databaseURL string
	logger      *slog.Logger
	apiKeys     []string
}

func newClientConfig() *clientConfig {
	return &clientConfig{}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite configures SQLite as the database, stored at path.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.databaseURL = "sqlite:///" + path
	}
}

// WithPostgres configures PostgreSQL as the database.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.databaseURL = dsn
	}
}

// WithDatabaseURL configures the database from a URL
// (sqlite:///path or postgres://...).
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) {
		c.databaseURL = url
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithAPIKeys sets API keys for write protection on the HTTP API.
// Mutating endpoints require a valid key when any are configured.
func WithAPIKeys(keys []string) Option {
	return func(c *clientConfig) {
		c.apiKeys = keys
	}
}
