// Package service provides the application services composing the catalog
// stores into the operations the API and CLI expose.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/easelhq/easel/domain/catalog"
)

// EpisodeCreateParams configures creating an episode.
type EpisodeCreateParams struct {
	Title         string
	Season        int
	Number        int
	PaintingImage string
	PaintingVideo string
	AirDate       *time.Time
}

// EpisodeFilter narrows episode listings. Zero values mean "no filter".
type EpisodeFilter struct {
	Season   int
	AirMonth time.Month

	// ColorID / SubjectMatterID restrict to episodes linked to the given
	// palette color or subject tag.
	ColorID         int64
	SubjectMatterID int64
}

// EpisodeDetails is an episode together with its palette and subject tags.
type EpisodeDetails struct {
	Episode        catalog.Episode
	Palette        []catalog.Color
	SubjectMatters []catalog.SubjectMatter
}

// Episode provides episode management and query operations.
// Embeds Collection for Find/Get/Count; bespoke methods handle writes,
// links, and filtered listings.
type Episode struct {
	catalog.Collection[catalog.Episode]
	store  catalog.EpisodeStore
	logger *slog.Logger
}

// NewEpisode creates a new Episode service.
func NewEpisode(store catalog.EpisodeStore, logger *slog.Logger) *Episode {
	if logger == nil {
		logger = slog.Default()
	}
	return &Episode{
		Collection: catalog.NewCollection[catalog.Episode](store),
		store:      store,
		logger:     logger,
	}
}

// Add creates a new episode. Returns the episode, whether it was newly
// created, and any error. If an episode with the same season and number
// already exists, the existing one is returned with created=false.
func (s *Episode) Add(ctx context.Context, params EpisodeCreateParams) (catalog.Episode, bool, error) {
	existing, err := s.store.Exists(ctx,
		catalog.WithSeason(params.Season),
		catalog.WithEpisodeNumber(params.Number),
	)
	if err != nil {
		return catalog.Episode{}, false, fmt.Errorf("check existing: %w", err)
	}
	if existing {
		ep, err := s.store.FindOne(ctx,
			catalog.WithSeason(params.Season),
			catalog.WithEpisodeNumber(params.Number),
		)
		if err != nil {
			return catalog.Episode{}, false, fmt.Errorf("find existing episode: %w", err)
		}
		return ep, false, nil
	}

	ep, err := catalog.NewEpisode(params.Title, params.Season, params.Number)
	if err != nil {
		return catalog.Episode{}, false, err
	}
	if params.PaintingImage != "" {
		ep = ep.WithPaintingImage(params.PaintingImage)
	}
	if params.PaintingVideo != "" {
		ep = ep.WithPaintingVideo(params.PaintingVideo)
	}
	if params.AirDate != nil {
		ep = ep.WithAirDate(*params.AirDate)
	}

	saved, err := s.store.Save(ctx, ep)
	if err != nil {
		return catalog.Episode{}, false, fmt.Errorf("save episode: %w", err)
	}

	s.logger.Info("episode added",
		slog.Int64("episode_id", saved.ID()),
		slog.String("title", saved.Title()),
		slog.String("code", saved.Code()),
	)
	return saved, true, nil
}

// Remove deletes an episode by id. Fails with catalog.ErrConflict while
// palette or subject links survive.
func (s *Episode) Remove(ctx context.Context, id int64) error {
	ep, err := s.store.FindOne(ctx, catalog.WithID(id))
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, ep); err != nil {
		return err
	}
	s.logger.Info("episode removed", slog.Int64("episode_id", id))
	return nil
}

// Details returns an episode with its palette and subject tags.
func (s *Episode) Details(ctx context.Context, id int64) (EpisodeDetails, error) {
	ep, err := s.store.FindOne(ctx, catalog.WithID(id))
	if err != nil {
		return EpisodeDetails{}, err
	}
	palette, err := s.store.ColorsForEpisode(ctx, id)
	if err != nil {
		return EpisodeDetails{}, err
	}
	subjects, err := s.store.SubjectMattersForEpisode(ctx, id)
	if err != nil {
		return EpisodeDetails{}, err
	}
	return EpisodeDetails{Episode: ep, Palette: palette, SubjectMatters: subjects}, nil
}

// List returns episodes matching the filter in broadcast order, plus the
// total count for pagination.
func (s *Episode) List(ctx context.Context, filter EpisodeFilter, options ...catalog.Option) ([]catalog.Episode, int64, error) {
	var conditions []catalog.Option
	if filter.Season > 0 {
		conditions = append(conditions, catalog.WithSeason(filter.Season))
	}

	listOptions := append(append([]catalog.Option{}, conditions...), catalog.ByBroadcastOrder()...)
	listOptions = append(listOptions, options...)

	var (
		episodes []catalog.Episode
		err      error
	)
	switch {
	case filter.ColorID > 0:
		episodes, err = s.store.FindByColor(ctx, filter.ColorID, listOptions...)
	case filter.SubjectMatterID > 0:
		episodes, err = s.store.FindBySubjectMatter(ctx, filter.SubjectMatterID, listOptions...)
	case filter.AirMonth != 0:
		episodes, err = s.store.FindByAirMonth(ctx, filter.AirMonth, listOptions...)
	default:
		episodes, err = s.store.Find(ctx, listOptions...)
	}
	if err != nil {
		return nil, 0, err
	}

	// Secondary filters applied in memory: the store methods each cover one
	// join, and filter combinations are rare and small.
	if filter.AirMonth != 0 && (filter.ColorID > 0 || filter.SubjectMatterID > 0) {
		episodes = filterByMonth(episodes, filter.AirMonth)
	}

	total, err := s.countFiltered(ctx, filter, conditions)
	if err != nil {
		return nil, 0, err
	}
	return episodes, total, nil
}

// countFiltered computes the total matching a filter. Plain season filters
// use a COUNT query; join and month filters re-run the filtered query
// without pagination, which is fine at this catalog's scale.
func (s *Episode) countFiltered(ctx context.Context, filter EpisodeFilter, conditions []catalog.Option) (int64, error) {
	var (
		episodes []catalog.Episode
		err      error
	)
	switch {
	case filter.ColorID > 0:
		episodes, err = s.store.FindByColor(ctx, filter.ColorID, conditions...)
	case filter.SubjectMatterID > 0:
		episodes, err = s.store.FindBySubjectMatter(ctx, filter.SubjectMatterID, conditions...)
	case filter.AirMonth != 0:
		episodes, err = s.store.FindByAirMonth(ctx, filter.AirMonth, conditions...)
	default:
		return s.store.Count(ctx, conditions...)
	}
	if err != nil {
		return 0, err
	}
	if filter.AirMonth != 0 && (filter.ColorID > 0 || filter.SubjectMatterID > 0) {
		episodes = filterByMonth(episodes, filter.AirMonth)
	}
	return int64(len(episodes)), nil
}

// AddColor links a color to an episode's palette.
func (s *Episode) AddColor(ctx context.Context, episodeID, colorID int64) error {
	return s.store.LinkColor(ctx, episodeID, colorID)
}

// RemoveColor removes a color from an episode's palette.
func (s *Episode) RemoveColor(ctx context.Context, episodeID, colorID int64) error {
	return s.store.UnlinkColor(ctx, episodeID, colorID)
}

// AddSubjectMatter tags an episode with a subject matter.
func (s *Episode) AddSubjectMatter(ctx context.Context, episodeID, subjectMatterID int64) error {
	return s.store.LinkSubjectMatter(ctx, episodeID, subjectMatterID)
}

// RemoveSubjectMatter removes a subject tag from an episode.
func (s *Episode) RemoveSubjectMatter(ctx context.Context, episodeID, subjectMatterID int64) error {
	return s.store.UnlinkSubjectMatter(ctx, episodeID, subjectMatterID)
}

// Palette returns the colors used in an episode.
func (s *Episode) Palette(ctx context.Context, episodeID int64) ([]catalog.Color, error) {
	return s.store.ColorsForEpisode(ctx, episodeID)
}

// SubjectMatters returns an episode's subject tags.
func (s *Episode) SubjectMatters(ctx context.Context, episodeID int64) ([]catalog.SubjectMatter, error) {
	return s.store.SubjectMattersForEpisode(ctx, episodeID)
}

func filterByMonth(episodes []catalog.Episode, month time.Month) []catalog.Episode {
	filtered := episodes[:0]
	for _, ep := range episodes {
		if ep.AirDate() != nil && ep.AirDate().Month() == month {
			filtered = append(filtered, ep)
		}
	}
	return filtered
}
