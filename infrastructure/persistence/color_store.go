package persistence

import (
	"context"
	"fmt"

	"github.com/easelhq/easel/domain/catalog"
	"github.com/easelhq/easel/internal/database"
	"gorm.io/gorm"
)

// ColorStore implements catalog.ColorStore using GORM.
type ColorStore struct {
	database.Repository[catalog.Color, ColorModel]
}

// NewColorStore creates a new ColorStore.
func NewColorStore(db database.Database) ColorStore {
	return ColorStore{
		Repository: database.NewRepository[catalog.Color, ColorModel](db, ColorMapper{}, "color"),
	}
}

// Save creates or updates a color.
func (s ColorStore) Save(ctx context.Context, color catalog.Color) (catalog.Color, error) {
	model := s.Mapper().ToModel(color)

	var result *gorm.DB
	if color.ID() == 0 {
		result = s.DB(ctx).Create(&model)
	} else {
		result = s.DB(ctx).Save(&model)
	}

	if result.Error != nil {
		return catalog.Color{}, fmt.Errorf("save color: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// Delete removes a color. Fails with ErrConflict while palette links still
// reference it.
func (s ColorStore) Delete(ctx context.Context, color catalog.Color) error {
	var links int64
	if err := s.DB(ctx).Model(&EpisodeColorModel{}).
		Where("color_id = ?", color.ID()).
		Count(&links).Error; err != nil {
		return fmt.Errorf("count palette links: %w", err)
	}
	if links > 0 {
		return fmt.Errorf("%w: color %d is used by %d episode(s)", catalog.ErrConflict, color.ID(), links)
	}

	model := s.Mapper().ToModel(color)
	if result := s.DB(ctx).Delete(&model); result.Error != nil {
		return fmt.Errorf("delete color: %w", result.Error)
	}
	return nil
}
