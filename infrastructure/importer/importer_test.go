package importer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/easelhq/easel/domain/catalog"
	"github.com/easelhq/easel/infrastructure/importer"
	"github.com/easelhq/easel/infrastructure/persistence"
	"github.com/easelhq/easel/internal/database"
	"github.com/easelhq/easel/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const colorsUsedCSV = `painting_title,season,episode,img_src,youtube_src,colors,color_hex
Mountain Majesty,1,1,https://img.example/s1e1.png,https://yt.example/s1e1,"['Titanium White', 'Phthalo Blue']","['#FFFFFF', '#0C0040']"
A Walk in the Woods,1,2,https://img.example/s1e2.png,https://yt.example/s1e2,"['Titanium White', 'Sap Green']","['#FFFFFF', '#0A3410']"
`

const subjectMatterCSV = `EPISODE,SUBJECTS
S01E01,MOUNTAIN;LAKE;TREES
S01E02,TREES;CABIN
`

const episodeDatesCSV = `Title,Date
Mountain Majesty,"(January 11, 1983)"
A Walk in the Woods,"(January 18, 1983)"
`

func writeDataset(t *testing.T, colors, subjects, dates string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range map[string]string{
		importer.ColorsUsedFile:    colors,
		importer.SubjectMatterFile: subjects,
		importer.EpisodeDatesFile:  dates,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestImporterRun(t *testing.T) {
	db := testdb.New(t)
	dir := writeDataset(t, colorsUsedCSV, subjectMatterCSV, episodeDatesCSV)

	summary, err := importer.New(db, nil).Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Episodes)
	assert.Equal(t, 3, summary.Colors, "Titanium White must dedupe across episodes")
	assert.Equal(t, 4, summary.SubjectMatters, "TREES must dedupe across episodes")
	assert.Equal(t, 4, summary.ColorLinks)
	assert.Equal(t, 5, summary.SubjectLinks)
	assert.Zero(t, summary.SkippedRows)

	store := persistence.NewEpisodeStore(db)
	ctx := context.Background()

	ep, err := store.FindOne(ctx, catalog.WithSeason(1), catalog.WithEpisodeNumber(1))
	require.NoError(t, err)
	assert.Equal(t, "Mountain Majesty", ep.Title())
	assert.Equal(t, "https://img.example/s1e1.png", ep.PaintingImage())
	require.NotNil(t, ep.AirDate())
	assert.Equal(t, time.Date(1983, time.January, 11, 0, 0, 0, 0, time.UTC), ep.AirDate().UTC())

	palette, err := store.ColorsForEpisode(ctx, ep.ID())
	require.NoError(t, err)
	require.Len(t, palette, 2)
	assert.Equal(t, "Phthalo Blue", palette[0].Name())
	assert.Equal(t, "Titanium White", palette[1].Name())
	assert.Equal(t, "#FFFFFF", palette[1].Hex())

	subjects, err := store.SubjectMattersForEpisode(ctx, ep.ID())
	require.NoError(t, err)
	require.Len(t, subjects, 3)
	assert.Equal(t, "LAKE", subjects[0].Name())
}

func TestImporterRunIsIdempotent(t *testing.T) {
	db := testdb.New(t)
	dir := writeDataset(t, colorsUsedCSV, subjectMatterCSV, episodeDatesCSV)
	imp := importer.New(db, nil)
	ctx := context.Background()

	_, err := imp.Run(ctx, dir)
	require.NoError(t, err)

	second, err := imp.Run(ctx, dir)
	require.NoError(t, err)
	assert.Zero(t, second.Episodes)
	assert.Zero(t, second.Colors)
	assert.Zero(t, second.SubjectMatters)
	assert.Zero(t, second.ColorLinks)
	assert.Zero(t, second.SubjectLinks)

	store := persistence.NewEpisodeStore(db)
	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestImporterSkipsMalformedRows(t *testing.T) {
	db := testdb.New(t)
	badColors := colorsUsedCSV + `,not-a-season,3,,,[],[]` + "\n"
	badSubjects := subjectMatterCSV + `EP1,MOUNTAIN` + "\n"
	dir := writeDataset(t, badColors, badSubjects, episodeDatesCSV)

	summary, err := importer.New(db, nil).Run(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Episodes)
	assert.Equal(t, 2, summary.SkippedRows)
}

func TestImporterMissingDatasetFile(t *testing.T) {
	db := testdb.New(t)

	_, err := importer.New(db, nil).Run(context.Background(), t.TempDir())
	require.Error(t, err)
}

func TestImporterUnknownEpisodeCodeFails(t *testing.T) {
	db := testdb.New(t)
	// S09E09 never appears in the colors-used sheet.
	subjects := "EPISODE,SUBJECTS\nS09E09,MOUNTAIN\n"
	dir := writeDataset(t, colorsUsedCSV, subjects, episodeDatesCSV)

	_, err := importer.New(db, nil).Run(context.Background(), dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, database.ErrNotFound)
}
