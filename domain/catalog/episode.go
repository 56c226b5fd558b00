// Package catalog holds the domain model for the painting-show catalog:
// episodes, the paint colors used in them, and subject-matter tags.
package catalog

import (
	"fmt"
	"time"
)

// Episode is one aired installment of the show.
type Episode struct {
	id            int64
	title         string
	season        int
	number        int
	paintingImage string
	paintingVideo string
	airDate       *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

// NewEpisode creates an Episode. Title, season, and episode number are
// required; season and number identify the episode within the show.
func NewEpisode(title string, season, number int) (Episode, error) {
	if title == "" {
		return Episode{}, fmt.Errorf("%w: episode title is required", ErrValidation)
	}
	if season < 1 {
		return Episode{}, fmt.Errorf("%w: season must be positive, got %d", ErrValidation, season)
	}
	if number < 1 {
		return Episode{}, fmt.Errorf("%w: episode number must be positive, got %d", ErrValidation, number)
	}
	return Episode{
		title:  title,
		season: season,
		number: number,
	}, nil
}

// RestoreEpisode rebuilds an Episode from persisted state. Used by mappers;
// performs no validation.
func RestoreEpisode(
	id int64,
	title string,
	season, number int,
	paintingImage, paintingVideo string,
	airDate *time.Time,
	createdAt, updatedAt time.Time,
) Episode {
	return Episode{
		id:            id,
		title:         title,
		season:        season,
		number:        number,
		paintingImage: paintingImage,
		paintingVideo: paintingVideo,
		airDate:       airDate,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// ID returns the surrogate identifier (0 until saved).
func (e Episode) ID() int64 { return e.id }

// Title returns the episode title.
func (e Episode) Title() string { return e.title }

// Season returns the season number.
func (e Episode) Season() int { return e.season }

// Number returns the episode number within the season.
func (e Episode) Number() int { return e.number }

// PaintingImage returns the reference to the finished painting image.
func (e Episode) PaintingImage() string { return e.paintingImage }

// PaintingVideo returns the reference to the episode video.
func (e Episode) PaintingVideo() string { return e.paintingVideo }

// AirDate returns the original air date, or nil when unknown.
func (e Episode) AirDate() *time.Time { return e.airDate }

// CreatedAt returns the row creation time.
func (e Episode) CreatedAt() time.Time { return e.createdAt }

// UpdatedAt returns the last row update time.
func (e Episode) UpdatedAt() time.Time { return e.updatedAt }

// Code returns the conventional SxxEyy episode code.
func (e Episode) Code() string {
	return fmt.Sprintf("S%02dE%02d", e.season, e.number)
}

// WithPaintingImage returns a copy with the painting image reference set.
func (e Episode) WithPaintingImage(ref string) Episode {
	e.paintingImage = ref
	return e
}

// WithPaintingVideo returns a copy with the painting video reference set.
func (e Episode) WithPaintingVideo(ref string) Episode {
	e.paintingVideo = ref
	return e
}

// WithAirDate returns a copy with the air date set.
func (e Episode) WithAirDate(t time.Time) Episode {
	e.airDate = &t
	return e
}
