package persistence

import "time"

// EpisodeModel represents an aired episode in the database.
type EpisodeModel struct {
	ID             int64      `gorm:"primaryKey;autoIncrement"`
	Title          string     `gorm:"column:title;index;size:255;not null"`
	SeasonNumber   int        `gorm:"column:season_number;uniqueIndex:idx_episodes_season_episode;not null"`
	EpisodeNumber  int        `gorm:"column:episode_number;uniqueIndex:idx_episodes_season_episode;not null"`
	PaintingImgSrc string     `gorm:"column:painting_img_src;size:1024"`
	PaintingYtSrc  string     `gorm:"column:painting_yt_src;size:1024"`
	AirDate        *time.Time `gorm:"column:air_date;index"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (EpisodeModel) TableName() string {
	return "episodes"
}

// ColorModel represents a paint color in the database.
type ColorModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;uniqueIndex;size:255;not null"`
	HexCode   string    `gorm:"column:hex_code;size:7"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (ColorModel) TableName() string {
	return "colors"
}

// SubjectMatterModel represents a subject-matter tag in the database.
type SubjectMatterModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;uniqueIndex;size:255;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (SubjectMatterModel) TableName() string {
	return "subject_matters"
}

// EpisodeColorModel links an episode to a color it used. The FK pair carries
// a composite unique index so one color appears at most once per episode.
type EpisodeColorModel struct {
	ID        int64        `gorm:"primaryKey;autoIncrement"`
	EpisodeID int64        `gorm:"column:episode_id;index;uniqueIndex:idx_episode_colors_pair;not null"`
	ColorID   int64        `gorm:"column:color_id;index;uniqueIndex:idx_episode_colors_pair;not null"`
	Episode   EpisodeModel `gorm:"foreignKey:EpisodeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Color     ColorModel   `gorm:"foreignKey:ColorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt time.Time    `gorm:"column:created_at"`
}

// TableName returns the table name.
func (EpisodeColorModel) TableName() string {
	return "episode_colors"
}

// EpisodeSubjectMatterModel links an episode to a subject-matter tag, with
// the same composite uniqueness as the palette links.
type EpisodeSubjectMatterModel struct {
	ID              int64              `gorm:"primaryKey;autoIncrement"`
	EpisodeID       int64              `gorm:"column:episode_id;index;uniqueIndex:idx_episode_subject_matters_pair;not null"`
	SubjectMatterID int64              `gorm:"column:subject_matter_id;index;uniqueIndex:idx_episode_subject_matters_pair;not null"`
	Episode         EpisodeModel       `gorm:"foreignKey:EpisodeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	SubjectMatter   SubjectMatterModel `gorm:"foreignKey:SubjectMatterID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt       time.Time          `gorm:"column:created_at"`
}

// TableName returns the table name.
func (EpisodeSubjectMatterModel) TableName() string {
	return "episode_subject_matters"
}
