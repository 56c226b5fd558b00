package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/easelhq/easel/domain/catalog"
)

// SubjectMatter provides subject tag management.
type SubjectMatter struct {
	catalog.Collection[catalog.SubjectMatter]
	store  catalog.SubjectMatterStore
	logger *slog.Logger
}

// NewSubjectMatter creates a new SubjectMatter service.
func NewSubjectMatter(store catalog.SubjectMatterStore, logger *slog.Logger) *SubjectMatter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SubjectMatter{
		Collection: catalog.NewCollection[catalog.SubjectMatter](store),
		store:      store,
		logger:     logger,
	}
}

// Add creates a subject tag, or returns the existing tag of the same name.
// The bool result reports whether a new row was created.
func (s *SubjectMatter) Add(ctx context.Context, name string) (catalog.SubjectMatter, bool, error) {
	subject, err := catalog.NewSubjectMatter(name)
	if err != nil {
		return catalog.SubjectMatter{}, false, err
	}

	existing, err := s.store.Exists(ctx, catalog.WithName(subject.Name()))
	if err != nil {
		return catalog.SubjectMatter{}, false, fmt.Errorf("check existing: %w", err)
	}
	if existing {
		found, err := s.store.FindOne(ctx, catalog.WithName(subject.Name()))
		if err != nil {
			return catalog.SubjectMatter{}, false, fmt.Errorf("find existing subject matter: %w", err)
		}
		return found, false, nil
	}

	saved, err := s.store.Save(ctx, subject)
	if err != nil {
		return catalog.SubjectMatter{}, false, fmt.Errorf("save subject matter: %w", err)
	}
	s.logger.Debug("subject matter added", slog.Int64("subject_matter_id", saved.ID()), slog.String("name", saved.Name()))
	return saved, true, nil
}

// Remove deletes a subject tag by id. Fails with catalog.ErrConflict while
// any episode still carries it.
func (s *SubjectMatter) Remove(ctx context.Context, id int64) error {
	subject, err := s.store.FindOne(ctx, catalog.WithID(id))
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, subject); err != nil {
		return err
	}
	s.logger.Info("subject matter removed", slog.Int64("subject_matter_id", id))
	return nil
}
