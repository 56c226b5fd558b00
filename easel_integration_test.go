package easel_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/easelhq/easel"
	"github.com/easelhq/easel/application/service"
	"github.com/easelhq/easel/domain/catalog"
	"github.com/easelhq/easel/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) *easel.Client {
	t.Helper()

	client, err := easel.New(
		easel.WithSQLite(filepath.Join(t.TempDir(), "easel.db")),
		easel.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewRequiresDatabase(t *testing.T) {
	_, err := easel.New()
	require.ErrorIs(t, err, easel.ErrNoDatabase)
}

func TestCloseTwice(t *testing.T) {
	client, err := easel.New(
		easel.WithSQLite(filepath.Join(t.TempDir(), "easel.db")),
		easel.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)

	require.NoError(t, client.Close())
	require.ErrorIs(t, client.Close(), easel.ErrClientClosed)

	_, err = client.Import(context.Background(), t.TempDir())
	require.ErrorIs(t, err, easel.ErrClientClosed)
}

func TestCatalogRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newClient(t)

	ep, created, err := client.Episodes.Add(ctx, service.EpisodeCreateParams{
		Title:  "A Walk in the Woods",
		Season: 1,
		Number: 1,
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "S01E01", ep.Code())

	white, _, err := client.Colors.Add(ctx, "Titanium White", "#FFFFFF")
	require.NoError(t, err)
	trees, _, err := client.SubjectMatters.Add(ctx, "TREES")
	require.NoError(t, err)

	require.NoError(t, client.Episodes.AddColor(ctx, ep.ID(), white.ID()))
	require.NoError(t, client.Episodes.AddSubjectMatter(ctx, ep.ID(), trees.ID()))

	details, err := client.Episodes.Details(ctx, ep.ID())
	require.NoError(t, err)
	require.Len(t, details.Palette, 1)
	assert.Equal(t, "Titanium White", details.Palette[0].Name())
	require.Len(t, details.SubjectMatters, 1)
	assert.Equal(t, "TREES", details.SubjectMatters[0].Name())

	episodes, total, err := client.Episodes.List(ctx, service.EpisodeFilter{ColorID: white.ID()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, episodes, 1)
	assert.Equal(t, ep.ID(), episodes[0].ID())

	// Linked rows restrict deletion until the link is removed
	err = client.Colors.Remove(ctx, white.ID())
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrConflict))

	require.NoError(t, client.Episodes.RemoveColor(ctx, ep.ID(), white.ID()))
	require.NoError(t, client.Colors.Remove(ctx, white.ID()))

	_, err = client.Colors.Get(ctx, catalog.WithID(white.ID()))
	require.ErrorIs(t, err, database.ErrNotFound)
}
