// Package easel provides a library for cataloguing episodes of The Joy of
// Painting: the paintings, the colors on each palette, and the subjects
// depicted, backed by a relational schema with queryable links between them.
//
// Basic usage:
//
//	client, err := easel.New(
//	    easel.WithSQLite(".easel/easel.db"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Add an episode
//	ep, _, err := client.Episodes.Add(ctx, service.EpisodeCreateParams{
//	    Title:  "Mountain Majesty",
//	    Season: 1,
//	    Number: 1,
//	})
//
//	// List episodes that used a color
//	episodes, _, err := client.Episodes.List(ctx, service.EpisodeFilter{
//	    ColorID: colorID,
//	})
package easel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/easelhq/easel/application/service"
	"github.com/easelhq/easel/infrastructure/importer"
	"github.com/easelhq/easel/infrastructure/persistence"
	"github.com/easelhq/easel/internal/config"
	"github.com/easelhq/easel/internal/database"
	"github.com/easelhq/easel/internal/log"
)

// Sentinel errors for client lifecycle.
var (
	// ErrNoDatabase indicates no database option was provided.
	ErrNoDatabase = errors.New("no database configured: use WithSQLite, WithPostgres, or WithDatabaseURL")

	// ErrClientClosed indicates the client has already been closed.
	ErrClientClosed = errors.New("client is closed")
)

// Client is the main entry point for the easel library.
//
// Access resources via struct fields:
//
//	client.Episodes.Find(ctx)
//	client.Colors.Get(ctx, catalog.WithName("Titanium White"))
type Client struct {
	Episodes       *service.Episode
	Colors         *service.Color
	SubjectMatters *service.SubjectMatter

	db      database.Database
	logger  *slog.Logger
	apiKeys []string
	closed  atomic.Bool
}

// New creates a new Client with the given options. The schema is migrated
// and validated on open.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.databaseURL == "" {
		return nil, ErrNoDatabase
	}

	logger := cfg.logger
	if logger == nil {
		logger = log.NewLogger(config.NewAppConfig()).Slog()
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, cfg.databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := persistence.AutoMigrate(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
	}
	if err := persistence.ValidateSchema(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("validate schema: %w", err), errClose)
	}

	client := &Client{
		db:      db,
		logger:  logger,
		apiKeys: cfg.apiKeys,
	}
	client.Episodes = service.NewEpisode(persistence.NewEpisodeStore(db), logger)
	client.Colors = service.NewColor(persistence.NewColorStore(db), logger)
	client.SubjectMatters = service.NewSubjectMatter(persistence.NewSubjectMatterStore(db), logger)

	return client, nil
}

// Close releases the database connection.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	c.logger.Debug("easel client closed")
	return nil
}

// Import ingests the Joy of Painting dataset CSV files from dir.
func (c *Client) Import(ctx context.Context, dir string) (importer.Summary, error) {
	if c.closed.Load() {
		return importer.Summary{}, ErrClientClosed
	}
	return importer.New(c.db, c.logger).Run(ctx, dir)
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// APIKeys returns the API keys configured for write protection.
func (c *Client) APIKeys() []string {
	keys := make([]string, len(c.apiKeys))
	copy(keys, c.apiKeys)
	return keys
}

// Database returns the underlying database handle.
func (c *Client) Database() database.Database {
	return c.db
}
