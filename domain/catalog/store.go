package catalog

import (
	"context"
	"time"
)

// Store defines the generic lookup operations every entity store provides.
type Store[T any] interface {
	Find(ctx context.Context, options ...Option) ([]T, error)
	FindOne(ctx context.Context, options ...Option) (T, error)
	Exists(ctx context.Context, options ...Option) (bool, error)
	Count(ctx context.Context, options ...Option) (int64, error)
}

// EpisodeStore persists episodes and their palette / subject links.
type EpisodeStore interface {
	Store[Episode]
	Save(ctx context.Context, episode Episode) (Episode, error)

	// Delete removes an episode. It fails with ErrConflict while palette or
	// subject links still reference the episode.
	Delete(ctx context.Context, episode Episode) error

	// FindByAirMonth returns episodes whose air date falls in the given
	// calendar month, any year.
	FindByAirMonth(ctx context.Context, month time.Month, options ...Option) ([]Episode, error)

	// LinkColor records that the episode used the color. Duplicate links
	// fail with ErrConflict.
	LinkColor(ctx context.Context, episodeID, colorID int64) error

	// UnlinkColor removes a palette link.
	UnlinkColor(ctx context.Context, episodeID, colorID int64) error

	// LinkSubjectMatter tags the episode with the subject matter.
	// Duplicate links fail with ErrConflict.
	LinkSubjectMatter(ctx context.Context, episodeID, subjectMatterID int64) error

	// UnlinkSubjectMatter removes a subject tag link.
	UnlinkSubjectMatter(ctx context.Context, episodeID, subjectMatterID int64) error

	// ColorsForEpisode returns the episode's palette via the join table.
	ColorsForEpisode(ctx context.Context, episodeID int64) ([]Color, error)

	// SubjectMattersForEpisode returns the episode's tags via the join table.
	SubjectMattersForEpisode(ctx context.Context, episodeID int64) ([]SubjectMatter, error)

	// FindByColor returns episodes whose palette contains the color.
	FindByColor(ctx context.Context, colorID int64, options ...Option) ([]Episode, error)

	// FindBySubjectMatter returns episodes tagged with the subject matter.
	FindBySubjectMatter(ctx context.Context, subjectMatterID int64, options ...Option) ([]Episode, error)
}

// ColorStore persists colors.
type ColorStore interface {
	Store[Color]
	Save(ctx context.Context, color Color) (Color, error)
	Delete(ctx context.Context, color Color) error
}

// SubjectMatterStore persists subject-matter tags.
type SubjectMatterStore interface {
	Store[SubjectMatter]
	Save(ctx context.Context, subject SubjectMatter) (SubjectMatter, error)
	Delete(ctx context.Context, subject SubjectMatter) error
}
