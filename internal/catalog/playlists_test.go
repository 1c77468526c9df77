package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePlaylist(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()

	info, err := c.CreatePlaylist(ctx, "  Road Trip ")

	require.NoError(t, err)
	assert.Equal(t, "Road Trip", info.Name)
	assert.NotEmpty(t, info.ID)

	_, err = c.CreatePlaylist(ctx, "Road Trip")
	require.ErrorIs(t, err, ErrExists)

	_, err = c.CreatePlaylist(ctx, " ")
	require.Error(t, err)
}

func TestAddToPlaylist_KeepsOrderAndTotals(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()
	a := addSong(t, c, "Alpha", "Z", 2*time.Minute)
	b := addSong(t, c, "Bravo", "Y", 3*time.Minute)
	_, err := c.CreatePlaylist(ctx, "mix")
	require.NoError(t, err)

	require.NoError(t, c.AddToPlaylist(ctx, "mix", b.ID, a.ID))
	require.NoError(t, c.AddToPlaylist(ctx, "mix", b.ID))

	tracks, err := c.FetchCollection(ctx, Filter{Playlist: "mix"})
	require.NoError(t, err)
	require.Len(t, tracks, 3)
	assert.Equal(t, []string{b.ID, a.ID, b.ID}, []string{tracks[0].ID, tracks[1].ID, tracks[2].ID})

	info, err := c.PlaylistByName(ctx, "mix")
	require.NoError(t, err)
	assert.Equal(t, 3, info.SongCount)
	assert.Equal(t, 8*time.Minute, info.TotalDuration)
}

func TestAddToPlaylist_UnknownSongAddsNothing(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()
	a := addSong(t, c, "Alpha", "Z", time.Minute)
	_, err := c.CreatePlaylist(ctx, "mix")
	require.NoError(t, err)

	err = c.AddToPlaylist(ctx, "mix", a.ID, "missing")

	require.ErrorIs(t, err, ErrNotFound)
	songs, err := c.Songs(ctx, Filter{Playlist: "mix"})
	require.NoError(t, err)
	assert.Empty(t, songs)
}

func TestAddToPlaylist_UnknownPlaylist(t *testing.T) {
	c := openTestCatalog(t)

	err := c.AddToPlaylist(context.Background(), "nope", "x")

	require.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveFromPlaylist_FirstOccurrence(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()
	a := addSong(t, c, "Alpha", "Z", time.Minute)
	b := addSong(t, c, "Bravo", "Y", time.Minute)
	_, err := c.CreatePlaylist(ctx, "mix")
	require.NoError(t, err)
	require.NoError(t, c.AddToPlaylist(ctx, "mix", a.ID, b.ID, a.ID))

	require.NoError(t, c.RemoveFromPlaylist(ctx, "mix", a.ID))

	songs, err := c.Songs(ctx, Filter{Playlist: "mix"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bravo", "Alpha"}, songIDs(songs))

	err = c.RemoveFromPlaylist(ctx, "mix", "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPlaylists_ListsEmptyOnesToo(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()
	a := addSong(t, c, "Alpha", "Z", time.Minute)
	_, err := c.CreatePlaylist(ctx, "b-side")
	require.NoError(t, err)
	_, err = c.CreatePlaylist(ctx, "a-side")
	require.NoError(t, err)
	require.NoError(t, c.AddToPlaylist(ctx, "a-side", a.ID))

	lists, err := c.Playlists(ctx)

	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, "a-side", lists[0].Name)
	assert.Equal(t, 1, lists[0].SongCount)
	assert.Equal(t, "b-side", lists[1].Name)
	assert.Zero(t, lists[1].SongCount)
	assert.Zero(t, lists[1].TotalDuration)
}

func TestSongs_UnknownPlaylist(t *testing.T) {
	c := openTestCatalog(t)

	_, err := c.Songs(context.Background(), Filter{Playlist: "ghost"})

	require.ErrorIs(t, err, ErrNotFound)
}
