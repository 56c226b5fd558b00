// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Default configuration values.
const (
	DefaultHost      = "0.0.0.0"
	DefaultPort      = 8080
	DefaultLogLevel  = "INFO"
	DefaultPageSize  = 20
	DefaultDBName    = "easel.db"
	DefaultDataSubdir = "datasets"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// AppConfig holds the main application configuration.
type AppConfig struct {
	host       string
	port       int
	dataDir    string
	datasetDir string
	dbURL      string
	logLevel   string
	logFormat  LogFormat
	apiKeys    []string
}

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".easel"
	}
	return filepath.Join(home, ".easel")
}

// DefaultDatasetDir returns the default dataset directory for a data directory.
func DefaultDatasetDir(dataDir string) string {
	return filepath.Join(dataDir, DefaultDataSubdir)
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	dataDir := DefaultDataDir()
	return AppConfig{
		host:       DefaultHost,
		port:       DefaultPort,
		dataDir:    dataDir,
		datasetDir: DefaultDatasetDir(dataDir),
		dbURL:      "sqlite:///" + filepath.Join(dataDir, DefaultDBName),
		logLevel:   DefaultLogLevel,
		logFormat:  LogFormatPretty,
		apiKeys:    []string{},
	}
}

// Host returns the server host.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port.
func (c AppConfig) Port() int { return c.port }

// Addr returns the host:port address string.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// DataDir returns the data directory.
func (c AppConfig) DataDir() string { return c.dataDir }

// DatasetDir returns the directory holding the CSV dataset files.
func (c AppConfig) DatasetDir() string { return c.datasetDir }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// APIKeys returns the configured API keys.
func (c AppConfig) APIKeys() []string {
	keys := make([]string, len(c.apiKeys))
	copy(keys, c.apiKeys)
	return keys
}

// EnsureDataDir creates the data directory if it does not exist.
func (c AppConfig) EnsureDataDir() error {
	if err := os.MkdirAll(c.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return nil
}

// LogAttrs returns the config as slog attributes for startup logging.
// API keys are reported as a count, never as values.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("host", c.host),
		slog.Int("port", c.port),
		slog.String("data_dir", c.dataDir),
		slog.String("db_url", redactDBURL(c.dbURL)),
		slog.String("log_level", c.logLevel),
		slog.String("log_format", string(c.logFormat)),
		slog.Int("api_keys", len(c.apiKeys)),
	}
}

// AppConfigOption mutates an AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDataDir sets the data directory and rebases the derived defaults
// (database path, dataset directory) that still point at the old one.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) {
		old := c.dataDir
		c.dataDir = dir
		if c.dbURL == "sqlite:///"+filepath.Join(old, DefaultDBName) {
			c.dbURL = "sqlite:///" + filepath.Join(dir, DefaultDBName)
		}
		if c.datasetDir == DefaultDatasetDir(old) {
			c.datasetDir = DefaultDatasetDir(dir)
		}
	}
}

// WithDatasetDir sets the dataset directory.
func WithDatasetDir(dir string) AppConfigOption {
	return func(c *AppConfig) { c.datasetDir = dir }
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithAPIKeys sets the API keys.
func WithAPIKeys(keys []string) AppConfigOption {
	return func(c *AppConfig) { c.apiKeys = keys }
}

// Apply returns a copy of the config with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// ParseAPIKeys splits a comma-separated API key list, trimming whitespace
// and dropping empty entries.
func ParseAPIKeys(s string) []string {
	parts := strings.Split(s, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		if k := strings.TrimSpace(p); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// redactDBURL hides credentials in a database URL for logging.
func redactDBURL(url string) string {
	at := strings.LastIndex(url, "@")
	if at < 0 {
		return url
	}
	scheme := strings.Index(url, "://")
	if scheme < 0 {
		return url
	}
	return url[:scheme+3] + "***" + url[at:]
}
