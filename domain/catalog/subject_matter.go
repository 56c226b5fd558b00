package catalog

import (
	"fmt"
	"strings"
	"time"
)

// SubjectMatter is a descriptive tag (e.g. "MOUNTAIN", "LAKE") applied to
// episodes to categorize painting content.
type SubjectMatter struct {
	id        int64
	name      string
	createdAt time.Time
	updatedAt time.Time
}

// NewSubjectMatter creates a SubjectMatter with the given tag name.
func NewSubjectMatter(name string) (SubjectMatter, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SubjectMatter{}, fmt.Errorf("%w: subject matter name is required", ErrValidation)
	}
	return SubjectMatter{name: name}, nil
}

// RestoreSubjectMatter rebuilds a SubjectMatter from persisted state.
func RestoreSubjectMatter(id int64, name string, createdAt, updatedAt time.Time) SubjectMatter {
	return SubjectMatter{
		id:        id,
		name:      name,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the surrogate identifier (0 until saved).
func (s SubjectMatter) ID() int64 { return s.id }

// Name returns the tag name.
func (s SubjectMatter) Name() string { return s.name }

// CreatedAt returns the row creation time.
func (s SubjectMatter) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt returns the last row update time.
func (s SubjectMatter) UpdatedAt() time.Time { return s.updatedAt }
