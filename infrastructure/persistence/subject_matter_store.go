package persistence

import (
	"context"
	"fmt"

	"github.com/easelhq/easel/domain/catalog"
	"github.com/easelhq/easel/internal/database"
	"gorm.io/gorm"
)

// SubjectMatterStore implements catalog.SubjectMatterStore using GORM.
type SubjectMatterStore struct {
	database.Repository[catalog.SubjectMatter, SubjectMatterModel]
}

// NewSubjectMatterStore creates a new SubjectMatterStore.
func NewSubjectMatterStore(db database.Database) SubjectMatterStore {
	return SubjectMatterStore{
		Repository: database.NewRepository[catalog.SubjectMatter, SubjectMatterModel](db, SubjectMatterMapper{}, "subject matter"),
	}
}

// Save creates or updates a subject matter.
func (s SubjectMatterStore) Save(ctx context.Context, subject catalog.SubjectMatter) (catalog.SubjectMatter, error) {
	model := s.Mapper().ToModel(subject)

	var result *gorm.DB
	if subject.ID() == 0 {
		result = s.DB(ctx).Create(&model)
	} else {
		result = s.DB(ctx).Save(&model)
	}

	if result.Error != nil {
		return catalog.SubjectMatter{}, fmt.Errorf("save subject matter: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// Delete removes a subject matter. Fails with ErrConflict while episode tags
// still reference it.
func (s SubjectMatterStore) Delete(ctx context.Context, subject catalog.SubjectMatter) error {
	var links int64
	if err := s.DB(ctx).Model(&EpisodeSubjectMatterModel{}).
		Where("subject_matter_id = ?", subject.ID()).
		Count(&links).Error; err != nil {
		return fmt.Errorf("count subject links: %w", err)
	}
	if links > 0 {
		return fmt.Errorf("%w: subject matter %d tags %d episode(s)", catalog.ErrConflict, subject.ID(), links)
	}

	model := s.Mapper().ToModel(subject)
	if result := s.DB(ctx).Delete(&model); result.Error != nil {
		return fmt.Errorf("delete subject matter: %w", result.Error)
	}
	return nil
}
