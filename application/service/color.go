package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/easelhq/easel/domain/catalog"
)

// Color provides paint color management.
type Color struct {
	catalog.Collection[catalog.Color]
	store  catalog.ColorStore
	logger *slog.Logger
}

// NewColor creates a new Color service.
func NewColor(store catalog.ColorStore, logger *slog.Logger) *Color {
	if logger == nil {
		logger = slog.Default()
	}
	return &Color{
		Collection: catalog.NewCollection[catalog.Color](store),
		store:      store,
		logger:     logger,
	}
}

// Add creates a color, or returns the existing color of the same name.
// The bool result reports whether a new row was created.
func (s *Color) Add(ctx context.Context, name, hex string) (catalog.Color, bool, error) {
	color, err := catalog.NewColor(name, hex)
	if err != nil {
		return catalog.Color{}, false, err
	}

	existing, err := s.store.Exists(ctx, catalog.WithName(color.Name()))
	if err != nil {
		return catalog.Color{}, false, fmt.Errorf("check existing: %w", err)
	}
	if existing {
		found, err := s.store.FindOne(ctx, catalog.WithName(color.Name()))
		if err != nil {
			return catalog.Color{}, false, fmt.Errorf("find existing color: %w", err)
		}
		return found, false, nil
	}

	saved, err := s.store.Save(ctx, color)
	if err != nil {
		return catalog.Color{}, false, fmt.Errorf("save color: %w", err)
	}
	s.logger.Debug("color added", slog.Int64("color_id", saved.ID()), slog.String("name", saved.Name()))
	return saved, true, nil
}

// Remove deletes a color by id. Fails with catalog.ErrConflict while any
// episode still uses it.
func (s *Color) Remove(ctx context.Context, id int64) error {
	color, err := s.store.FindOne(ctx, catalog.WithID(id))
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, color); err != nil {
		return err
	}
	s.logger.Info("color removed", slog.Int64("color_id", id))
	return nil
}
