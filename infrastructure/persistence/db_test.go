package persistence_test

import (
	"context"
	"testing"

	"github.com/easelhq/easel/domain/catalog"
	"github.com/easelhq/easel/infrastructure/persistence"
	"github.com/easelhq/easel/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoMigrateCreatesAllTables(t *testing.T) {
	db := testdb.New(t)

	for _, table := range []string{
		"episodes",
		"colors",
		"subject_matters",
		"episode_colors",
		"episode_subject_matters",
	} {
		assert.True(t, db.GORM().Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestAutoMigrateIsIdempotent(t *testing.T) {
	db := testdb.New(t)
	require.NoError(t, persistence.AutoMigrate(db))
	require.NoError(t, persistence.AutoMigrate(db))
}

func TestValidateSchema(t *testing.T) {
	db := testdb.New(t)
	require.NoError(t, persistence.ValidateSchema(db))
}

func TestValidateSchemaDetectsMissingColumn(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()

	require.NoError(t, db.Session(ctx).Exec("ALTER TABLE colors DROP COLUMN hex_code").Error)

	err := persistence.ValidateSchema(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colors.hex_code")
}

func TestColorStoreUniqueName(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewColorStore(db)
	ctx := context.Background()

	c, err := catalog.NewColor("Titanium White", "#FFFFFF")
	require.NoError(t, err)
	_, err = store.Save(ctx, c)
	require.NoError(t, err)

	dup, err := catalog.NewColor("Titanium White", "#FEFEFE")
	require.NoError(t, err)
	_, err = store.Save(ctx, dup)
	assert.Error(t, err, "duplicate color name must violate the unique index")
}

func TestColorStoreDeleteRestrictedWhileLinked(t *testing.T) {
	db := testdb.New(t)
	colors := persistence.NewColorStore(db)
	episodes := persistence.NewEpisodeStore(db)
	ctx := context.Background()

	ep := seedEpisode(t, db, "Mountain Majesty", 1, 1)
	white := seedColor(t, db, "Titanium White", "#FFFFFF")
	require.NoError(t, episodes.LinkColor(ctx, ep.ID(), white.ID()))

	assert.ErrorIs(t, colors.Delete(ctx, white), catalog.ErrConflict)

	require.NoError(t, episodes.UnlinkColor(ctx, ep.ID(), white.ID()))
	require.NoError(t, colors.Delete(ctx, white))
}

func TestSubjectMatterStoreDeleteRestrictedWhileLinked(t *testing.T) {
	db := testdb.New(t)
	subjects := persistence.NewSubjectMatterStore(db)
	episodes := persistence.NewEpisodeStore(db)
	ctx := context.Background()

	ep := seedEpisode(t, db, "Mountain Majesty", 1, 1)
	mountain := seedSubject(t, db, "MOUNTAIN")
	require.NoError(t, episodes.LinkSubjectMatter(ctx, ep.ID(), mountain.ID()))

	assert.ErrorIs(t, subjects.Delete(ctx, mountain), catalog.ErrConflict)
}
