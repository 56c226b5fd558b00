package persistence

import (
	"github.com/easelhq/easel/domain/catalog"
)

// EpisodeMapper maps between catalog.Episode and EpisodeModel.
type EpisodeMapper struct{}

// ToDomain converts a model to a domain episode.
func (EpisodeMapper) ToDomain(m EpisodeModel) catalog.Episode {
	return catalog.RestoreEpisode(
		m.ID,
		m.Title,
		m.SeasonNumber,
		m.EpisodeNumber,
		m.PaintingImgSrc,
		m.PaintingYtSrc,
		m.AirDate,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

// ToModel converts a domain episode to a model.
func (EpisodeMapper) ToModel(e catalog.Episode) EpisodeModel {
	return EpisodeModel{
		ID:             e.ID(),
		Title:          e.Title(),
		SeasonNumber:   e.Season(),
		EpisodeNumber:  e.Number(),
		PaintingImgSrc: e.PaintingImage(),
		PaintingYtSrc:  e.PaintingVideo(),
		AirDate:        e.AirDate(),
		CreatedAt:      e.CreatedAt(),
		UpdatedAt:      e.UpdatedAt(),
	}
}

// ColorMapper maps between catalog.Color and ColorModel.
type ColorMapper struct{}

// ToDomain converts a model to a domain color.
func (ColorMapper) ToDomain(m ColorModel) catalog.Color {
	return catalog.RestoreColor(m.ID, m.Name, m.HexCode, m.CreatedAt, m.UpdatedAt)
}

// ToModel converts a domain color to a model.
func (ColorMapper) ToModel(c catalog.Color) ColorModel {
	return ColorModel{
		ID:        c.ID(),
		Name:      c.Name(),
		HexCode:   c.Hex(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

// SubjectMatterMapper maps between catalog.SubjectMatter and SubjectMatterModel.
type SubjectMatterMapper struct{}

// ToDomain converts a model to a domain subject matter.
func (SubjectMatterMapper) ToDomain(m SubjectMatterModel) catalog.SubjectMatter {
	return catalog.RestoreSubjectMatter(m.ID, m.Name, m.CreatedAt, m.UpdatedAt)
}

// ToModel converts a domain subject matter to a model.
func (SubjectMatterMapper) ToModel(s catalog.SubjectMatter) SubjectMatterModel {
	return SubjectMatterModel{
		ID:        s.ID(),
		Name:      s.Name(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
}
