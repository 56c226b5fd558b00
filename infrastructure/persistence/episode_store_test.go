package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/easelhq/easel/domain/catalog"
	"github.com/easelhq/easel/infrastructure/persistence"
	"github.com/easelhq/easel/internal/database"
	"github.com/easelhq/easel/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEpisode(t *testing.T, db database.Database, title string, season, number int) catalog.Episode {
	t.Helper()
	store := persistence.NewEpisodeStore(db)
	ep, err := catalog.NewEpisode(title, season, number)
	require.NoError(t, err)
	saved, err := store.Save(context.Background(), ep)
	require.NoError(t, err)
	require.NotZero(t, saved.ID())
	return saved
}

func seedColor(t *testing.T, db database.Database, name, hex string) catalog.Color {
	t.Helper()
	store := persistence.NewColorStore(db)
	c, err := catalog.NewColor(name, hex)
	require.NoError(t, err)
	saved, err := store.Save(context.Background(), c)
	require.NoError(t, err)
	return saved
}

func seedSubject(t *testing.T, db database.Database, name string) catalog.SubjectMatter {
	t.Helper()
	store := persistence.NewSubjectMatterStore(db)
	s, err := catalog.NewSubjectMatter(name)
	require.NoError(t, err)
	saved, err := store.Save(context.Background(), s)
	require.NoError(t, err)
	return saved
}

func TestEpisodeStoreSaveAndFind(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewEpisodeStore(db)
	ctx := context.Background()

	seedEpisode(t, db, "Mountain Majesty", 1, 1)
	seedEpisode(t, db, "A Walk in the Woods", 1, 2)

	episodes, err := store.Find(ctx, catalog.ByBroadcastOrder()...)
	require.NoError(t, err)
	require.Len(t, episodes, 2)
	assert.Equal(t, "Mountain Majesty", episodes[0].Title())
	assert.Equal(t, "S01E02", episodes[1].Code())
}

func TestEpisodeStoreIDsAreMonotonic(t *testing.T) {
	db := testdb.New(t)

	first := seedEpisode(t, db, "Mountain Majesty", 1, 1)
	second := seedEpisode(t, db, "A Walk in the Woods", 1, 2)

	assert.Greater(t, second.ID(), first.ID())
}

func TestEpisodeStoreFindOneNotFound(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewEpisodeStore(db)

	_, err := store.FindOne(context.Background(), catalog.WithID(999))
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestLinkColorRoundTrip(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewEpisodeStore(db)
	ctx := context.Background()

	ep := seedEpisode(t, db, "Mountain Majesty", 1, 1)
	white := seedColor(t, db, "Titanium White", "#FFFFFF")

	require.NoError(t, store.LinkColor(ctx, ep.ID(), white.ID()))

	palette, err := store.ColorsForEpisode(ctx, ep.ID())
	require.NoError(t, err)
	require.Len(t, palette, 1)
	assert.Equal(t, "Titanium White", palette[0].Name())
	assert.Equal(t, "#FFFFFF", palette[0].Hex())
}

func TestLinkColorMissingParents(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewEpisodeStore(db)
	ctx := context.Background()

	ep := seedEpisode(t, db, "Mountain Majesty", 1, 1)
	white := seedColor(t, db, "Titanium White", "#FFFFFF")

	assert.ErrorIs(t, store.LinkColor(ctx, 12345, white.ID()), database.ErrNotFound)
	assert.ErrorIs(t, store.LinkColor(ctx, ep.ID(), 12345), database.ErrNotFound)
}

func TestLinkColorDuplicateConflicts(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewEpisodeStore(db)
	ctx := context.Background()

	ep := seedEpisode(t, db, "Mountain Majesty", 1, 1)
	white := seedColor(t, db, "Titanium White", "#FFFFFF")

	require.NoError(t, store.LinkColor(ctx, ep.ID(), white.ID()))
	assert.ErrorIs(t, store.LinkColor(ctx, ep.ID(), white.ID()), catalog.ErrConflict)
}

func TestJoinTableForeignKeysEnforced(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()

	// Bypass the store's pre-checks: the constraint itself must hold.
	err := db.Session(ctx).Exec(
		"INSERT INTO episode_colors (episode_id, color_id, created_at) VALUES (?, ?, ?)",
		999, 999, time.Now(),
	).Error
	assert.Error(t, err, "insert referencing missing parents must violate the FK constraint")
}

func TestJoinTableDuplicatePairRejected(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewEpisodeStore(db)
	ctx := context.Background()

	ep := seedEpisode(t, db, "Mountain Majesty", 1, 1)
	white := seedColor(t, db, "Titanium White", "#FFFFFF")
	require.NoError(t, store.LinkColor(ctx, ep.ID(), white.ID()))

	// The original MySQL schema allowed duplicate pairs; the composite
	// unique index closes that gap even for writers that bypass the store.
	err := db.Session(ctx).Exec(
		"INSERT INTO episode_colors (episode_id, color_id, created_at) VALUES (?, ?, ?)",
		ep.ID(), white.ID(), time.Now(),
	).Error
	assert.Error(t, err, "duplicate (episode, color) pair must violate the unique index")
}

func TestUnlinkColor(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewEpisodeStore(db)
	ctx := context.Background()

	ep := seedEpisode(t, db, "Mountain Majesty", 1, 1)
	white := seedColor(t, db, "Titanium White", "#FFFFFF")
	require.NoError(t, store.LinkColor(ctx, ep.ID(), white.ID()))

	require.NoError(t, store.UnlinkColor(ctx, ep.ID(), white.ID()))

	palette, err := store.ColorsForEpisode(ctx, ep.ID())
	require.NoError(t, err)
	assert.Empty(t, palette)

	assert.ErrorIs(t, store.UnlinkColor(ctx, ep.ID(), white.ID()), database.ErrNotFound)
}

func TestDeleteEpisodeRestrictedWhileLinked(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewEpisodeStore(db)
	ctx := context.Background()

	ep := seedEpisode(t, db, "Mountain Majesty", 1, 1)
	white := seedColor(t, db, "Titanium White", "#FFFFFF")
	require.NoError(t, store.LinkColor(ctx, ep.ID(), white.ID()))

	assert.ErrorIs(t, store.Delete(ctx, ep), catalog.ErrConflict)

	require.NoError(t, store.UnlinkColor(ctx, ep.ID(), white.ID()))
	require.NoError(t, store.Delete(ctx, ep))

	_, err := store.FindOne(ctx, catalog.WithID(ep.ID()))
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestSubjectMatterLinks(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewEpisodeStore(db)
	ctx := context.Background()

	ep := seedEpisode(t, db, "Mountain Majesty", 1, 1)
	mountain := seedSubject(t, db, "MOUNTAIN")
	lake := seedSubject(t, db, "LAKE")

	require.NoError(t, store.LinkSubjectMatter(ctx, ep.ID(), mountain.ID()))
	require.NoError(t, store.LinkSubjectMatter(ctx, ep.ID(), lake.ID()))
	assert.ErrorIs(t, store.LinkSubjectMatter(ctx, ep.ID(), mountain.ID()), catalog.ErrConflict)

	subjects, err := store.SubjectMattersForEpisode(ctx, ep.ID())
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "LAKE", subjects[0].Name())
	assert.Equal(t, "MOUNTAIN", subjects[1].Name())
}

func TestFindByColor(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewEpisodeStore(db)
	ctx := context.Background()

	first := seedEpisode(t, db, "Mountain Majesty", 1, 1)
	second := seedEpisode(t, db, "A Walk in the Woods", 1, 2)
	white := seedColor(t, db, "Titanium White", "#FFFFFF")
	black := seedColor(t, db, "Midnight Black", "#000000")

	require.NoError(t, store.LinkColor(ctx, first.ID(), white.ID()))
	require.NoError(t, store.LinkColor(ctx, second.ID(), white.ID()))
	require.NoError(t, store.LinkColor(ctx, second.ID(), black.ID()))

	episodes, err := store.FindByColor(ctx, black.ID())
	require.NoError(t, err)
	require.Len(t, episodes, 1)
	assert.Equal(t, "A Walk in the Woods", episodes[0].Title())

	episodes, err = store.FindByColor(ctx, white.ID())
	require.NoError(t, err)
	assert.Len(t, episodes, 2)
}

func TestFindBySubjectMatter(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewEpisodeStore(db)
	ctx := context.Background()

	ep := seedEpisode(t, db, "Mountain Majesty", 1, 1)
	seedEpisode(t, db, "A Walk in the Woods", 1, 2)
	mountain := seedSubject(t, db, "MOUNTAIN")
	require.NoError(t, store.LinkSubjectMatter(ctx, ep.ID(), mountain.ID()))

	episodes, err := store.FindBySubjectMatter(ctx, mountain.ID())
	require.NoError(t, err)
	require.Len(t, episodes, 1)
	assert.Equal(t, ep.ID(), episodes[0].ID())
}

func TestFindByAirMonth(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewEpisodeStore(db)
	ctx := context.Background()

	january := seedEpisode(t, db, "Mountain Majesty", 1, 1)
	_, err := store.Save(ctx, january.WithAirDate(time.Date(1983, time.January, 11, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	february := seedEpisode(t, db, "Winter Sun", 1, 5)
	_, err = store.Save(ctx, february.WithAirDate(time.Date(1983, time.February, 8, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	// Never aired; must not match any month.
	seedEpisode(t, db, "Lost Pilot", 1, 9)

	episodes, err := store.FindByAirMonth(ctx, time.January)
	require.NoError(t, err)
	require.Len(t, episodes, 1)
	assert.Equal(t, "Mountain Majesty", episodes[0].Title())
}
