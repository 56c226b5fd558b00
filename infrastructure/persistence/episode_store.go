package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/easelhq/easel/domain/catalog"
	"github.com/easelhq/easel/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EpisodeStore implements catalog.EpisodeStore using GORM. Palette and
// subject links live in the episode_colors / episode_subject_matters join
// tables and are managed through the Link/Unlink methods.
type EpisodeStore struct {
	database.Repository[catalog.Episode, EpisodeModel]
}

// NewEpisodeStore creates a new EpisodeStore.
func NewEpisodeStore(db database.Database) EpisodeStore {
	return EpisodeStore{
		Repository: database.NewRepository[catalog.Episode, EpisodeModel](db, EpisodeMapper{}, "episode"),
	}
}

// Save creates or updates an episode.
func (s EpisodeStore) Save(ctx context.Context, episode catalog.Episode) (catalog.Episode, error) {
	model := s.Mapper().ToModel(episode)

	var result *gorm.DB
	if episode.ID() == 0 {
		result = s.DB(ctx).Create(&model)
	} else {
		result = s.DB(ctx).Save(&model)
	}

	if result.Error != nil {
		return catalog.Episode{}, fmt.Errorf("save episode: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// Delete removes an episode. The schema restricts deletion while join rows
// still reference the episode; the conflict is reported before touching the
// database so callers get a domain error instead of a driver error.
func (s EpisodeStore) Delete(ctx context.Context, episode catalog.Episode) error {
	var links int64
	if err := s.DB(ctx).Model(&EpisodeColorModel{}).
		Where("episode_id = ?", episode.ID()).
		Count(&links).Error; err != nil {
		return fmt.Errorf("count palette links: %w", err)
	}
	if links == 0 {
		if err := s.DB(ctx).Model(&EpisodeSubjectMatterModel{}).
			Where("episode_id = ?", episode.ID()).
			Count(&links).Error; err != nil {
			return fmt.Errorf("count subject links: %w", err)
		}
	}
	if links > 0 {
		return fmt.Errorf("%w: episode %d still has %d link(s)", catalog.ErrConflict, episode.ID(), links)
	}

	model := s.Mapper().ToModel(episode)
	if result := s.DB(ctx).Delete(&model); result.Error != nil {
		return fmt.Errorf("delete episode: %w", result.Error)
	}
	return nil
}

// FindByAirMonth returns episodes aired in the given calendar month of any
// year. Month extraction is dialect-specific.
func (s EpisodeStore) FindByAirMonth(ctx context.Context, month time.Month, options ...catalog.Option) ([]catalog.Episode, error) {
	expr := "EXTRACT(MONTH FROM air_date) = ?"
	if s.Database().IsSQLite() {
		expr = "CAST(strftime('%m', air_date) AS INTEGER) = ?"
	}

	options = append(options, catalog.WithWhere("air_date IS NOT NULL AND "+expr, int(month)))
	episodes, err := s.Find(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("find episodes by air month: %w", err)
	}
	return episodes, nil
}

// LinkColor records that the episode used the color.
func (s EpisodeStore) LinkColor(ctx context.Context, episodeID, colorID int64) error {
	if err := s.requireEpisode(ctx, episodeID); err != nil {
		return err
	}
	var color int64
	if err := s.DB(ctx).Model(&ColorModel{}).Where("id = ?", colorID).Count(&color).Error; err != nil {
		return fmt.Errorf("check color: %w", err)
	}
	if color == 0 {
		return fmt.Errorf("%w: color %d", database.ErrNotFound, colorID)
	}

	var existing int64
	if err := s.DB(ctx).Model(&EpisodeColorModel{}).
		Where("episode_id = ? AND color_id = ?", episodeID, colorID).
		Count(&existing).Error; err != nil {
		return fmt.Errorf("check palette link: %w", err)
	}
	if existing > 0 {
		return fmt.Errorf("%w: episode %d already uses color %d", catalog.ErrConflict, episodeID, colorID)
	}

	link := EpisodeColorModel{EpisodeID: episodeID, ColorID: colorID}
	if err := s.DB(ctx).Omit(clause.Associations).Create(&link).Error; err != nil {
		return fmt.Errorf("link color: %w", err)
	}
	return nil
}

// UnlinkColor removes a palette link.
func (s EpisodeStore) UnlinkColor(ctx context.Context, episodeID, colorID int64) error {
	result := s.DB(ctx).
		Where("episode_id = ? AND color_id = ?", episodeID, colorID).
		Delete(&EpisodeColorModel{})
	if result.Error != nil {
		return fmt.Errorf("unlink color: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: palette link (%d, %d)", database.ErrNotFound, episodeID, colorID)
	}
	return nil
}

// LinkSubjectMatter tags the episode with the subject matter.
func (s EpisodeStore) LinkSubjectMatter(ctx context.Context, episodeID, subjectMatterID int64) error {
	if err := s.requireEpisode(ctx, episodeID); err != nil {
		return err
	}
	var subject int64
	if err := s.DB(ctx).Model(&SubjectMatterModel{}).Where("id = ?", subjectMatterID).Count(&subject).Error; err != nil {
		return fmt.Errorf("check subject matter: %w", err)
	}
	if subject == 0 {
		return fmt.Errorf("%w: subject matter %d", database.ErrNotFound, subjectMatterID)
	}

	var existing int64
	if err := s.DB(ctx).Model(&EpisodeSubjectMatterModel{}).
		Where("episode_id = ? AND subject_matter_id = ?", episodeID, subjectMatterID).
		Count(&existing).Error; err != nil {
		return fmt.Errorf("check subject link: %w", err)
	}
	if existing > 0 {
		return fmt.Errorf("%w: episode %d already tagged with subject %d", catalog.ErrConflict, episodeID, subjectMatterID)
	}

	link := EpisodeSubjectMatterModel{EpisodeID: episodeID, SubjectMatterID: subjectMatterID}
	if err := s.DB(ctx).Omit(clause.Associations).Create(&link).Error; err != nil {
		return fmt.Errorf("link subject matter: %w", err)
	}
	return nil
}

// UnlinkSubjectMatter removes a subject tag link.
func (s EpisodeStore) UnlinkSubjectMatter(ctx context.Context, episodeID, subjectMatterID int64) error {
	result := s.DB(ctx).
		Where("episode_id = ? AND subject_matter_id = ?", episodeID, subjectMatterID).
		Delete(&EpisodeSubjectMatterModel{})
	if result.Error != nil {
		return fmt.Errorf("unlink subject matter: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: subject link (%d, %d)", database.ErrNotFound, episodeID, subjectMatterID)
	}
	return nil
}

// ColorsForEpisode returns the episode's palette, ordered by color name.
func (s EpisodeStore) ColorsForEpisode(ctx context.Context, episodeID int64) ([]catalog.Color, error) {
	var models []ColorModel
	err := s.DB(ctx).Model(&ColorModel{}).
		Joins("JOIN episode_colors ON episode_colors.color_id = colors.id").
		Where("episode_colors.episode_id = ?", episodeID).
		Order("colors.name ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("colors for episode: %w", err)
	}

	mapper := ColorMapper{}
	colors := make([]catalog.Color, len(models))
	for i, m := range models {
		colors[i] = mapper.ToDomain(m)
	}
	return colors, nil
}

// SubjectMattersForEpisode returns the episode's tags, ordered by name.
func (s EpisodeStore) SubjectMattersForEpisode(ctx context.Context, episodeID int64) ([]catalog.SubjectMatter, error) {
	var models []SubjectMatterModel
	err := s.DB(ctx).Model(&SubjectMatterModel{}).
		Joins("JOIN episode_subject_matters ON episode_subject_matters.subject_matter_id = subject_matters.id").
		Where("episode_subject_matters.episode_id = ?", episodeID).
		Order("subject_matters.name ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("subject matters for episode: %w", err)
	}

	mapper := SubjectMatterMapper{}
	subjects := make([]catalog.SubjectMatter, len(models))
	for i, m := range models {
		subjects[i] = mapper.ToDomain(m)
	}
	return subjects, nil
}

// FindByColor returns episodes whose palette contains the color.
func (s EpisodeStore) FindByColor(ctx context.Context, colorID int64, options ...catalog.Option) ([]catalog.Episode, error) {
	var models []EpisodeModel
	db := s.DB(ctx).Model(&EpisodeModel{}).
		Joins("JOIN episode_colors ON episode_colors.episode_id = episodes.id").
		Where("episode_colors.color_id = ?", colorID)
	db = database.ApplyOptions(db, options...)
	if err := db.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("find episodes by color: %w", err)
	}
	return s.toDomain(models), nil
}

// FindBySubjectMatter returns episodes tagged with the subject matter.
func (s EpisodeStore) FindBySubjectMatter(ctx context.Context, subjectMatterID int64, options ...catalog.Option) ([]catalog.Episode, error) {
	var models []EpisodeModel
	db := s.DB(ctx).Model(&EpisodeModel{}).
		Joins("JOIN episode_subject_matters ON episode_subject_matters.episode_id = episodes.id").
		Where("episode_subject_matters.subject_matter_id = ?", subjectMatterID)
	db = database.ApplyOptions(db, options...)
	if err := db.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("find episodes by subject matter: %w", err)
	}
	return s.toDomain(models), nil
}

func (s EpisodeStore) toDomain(models []EpisodeModel) []catalog.Episode {
	episodes := make([]catalog.Episode, len(models))
	for i, m := range models {
		episodes[i] = s.Mapper().ToDomain(m)
	}
	return episodes
}

func (s EpisodeStore) requireEpisode(ctx context.Context, episodeID int64) error {
	var count int64
	if err := s.DB(ctx).Model(&EpisodeModel{}).Where("id = ?", episodeID).Count(&count).Error; err != nil {
		return fmt.Errorf("check episode: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("%w: episode %d", database.ErrNotFound, episodeID)
	}
	return nil
}

// IsNotFound reports whether err wraps the store-level not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, database.ErrNotFound)
}
