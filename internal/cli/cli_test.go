package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/playlist"
)

func openTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Open(catalog.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { cat.Close() })
	return cat
}

func addSong(t *testing.T, cat *catalog.Catalog, title string) catalog.Song {
	t.Helper()
	s, err := cat.AddSong(context.Background(), catalog.Song{
		Title:    title,
		Artist:   "Band",
		Source:   "/music/" + title + ".mp3",
		Duration: 3 * time.Minute,
	})
	require.NoError(t, err)
	return s
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o600))
}

// fakeTrackInfo replaces tag and duration probing with values derived from
// the file name. Files named bad.* fail.
func fakeTrackInfo(t *testing.T) {
	t.Helper()
	orig := readTrackInfo
	readTrackInfo = func(path string) (*player.TrackInfo, error) {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if name == "bad" {
			return nil, errors.New("unsupported format")
		}
		return &player.TrackInfo{Path: path, Title: name, Artist: "Tester", Duration: time.Minute}, nil
	}
	t.Cleanup(func() { readTrackInfo = orig })
}

func TestRunAdd_WalksDirectories(t *testing.T) {
	fakeTrackInfo(t)
	cat := openTestCatalog(t)
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "one.mp3"))
	touch(t, filepath.Join(dir, "disc2", "two.flac"))
	touch(t, filepath.Join(dir, "notes.txt"))

	var stdout, stderr bytes.Buffer
	code := RunAdd(context.Background(), cat, &AddParams{Paths: []string{dir}}, &stdout, &stderr)

	assert.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "Added 2 of 2 songs")

	songs, err := cat.Songs(context.Background(), catalog.Filter{})
	require.NoError(t, err)
	require.Len(t, songs, 2)
	titles := []string{songs[0].Title, songs[1].Title}
	assert.ElementsMatch(t, []string{"one", "two"}, titles)
	assert.True(t, filepath.IsAbs(songs[0].Source))
}

func TestRunAdd_ReportsFailures(t *testing.T) {
	fakeTrackInfo(t)
	cat := openTestCatalog(t)
	dir := t.TempDir()
	good := filepath.Join(dir, "good.mp3")
	bad := filepath.Join(dir, "bad.mp3")
	touch(t, good)
	touch(t, bad)

	var stdout, stderr bytes.Buffer
	code := RunAdd(context.Background(), cat, &AddParams{
		Paths:   []string{good, bad, filepath.Join(dir, "missing.mp3")},
		Verbose: true,
	}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "Added 1 of 2 songs")
	assert.Contains(t, stdout.String(), "good")
	assert.Contains(t, stderr.String(), "Failed to add song")
	assert.Contains(t, stderr.String(), "unsupported format")
	assert.Contains(t, stderr.String(), "missing.mp3")
}

func TestRunSongs(t *testing.T) {
	cat := openTestCatalog(t)
	addSong(t, cat, "Opening")
	addSong(t, cat, "Closing")

	var stdout, stderr bytes.Buffer
	code := RunSongs(context.Background(), cat, &SongsParams{Query: "Open"}, &stdout, &stderr)

	assert.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "Opening")
	assert.NotContains(t, stdout.String(), "Closing")
	assert.Contains(t, stdout.String(), "3:00")
}

func TestRunSongs_Empty(t *testing.T) {
	cat := openTestCatalog(t)

	var stdout, stderr bytes.Buffer
	code := RunSongs(context.Background(), cat, &SongsParams{}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Equal(t, "No songs found.\n", stdout.String())
}

func TestRenderSongs(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	songs := []catalog.Song{{
		ID:        "id-1",
		Title:     "Anthem",
		Artist:    "Crowd",
		Album:     "Live",
		Duration:  4*time.Minute + 5*time.Second,
		PlayCount: 1234,
		AddedAt:   now.Add(-72 * time.Hour),
	}}

	var out bytes.Buffer
	RenderSongs(&out, songs, now)

	text := out.String()
	for _, want := range []string{"ID", "Anthem", "Crowd", "Live", "4:05", "1,234", "3 days ago"} {
		assert.Contains(t, text, want)
	}
}

func TestPlaylistCommands(t *testing.T) {
	cat := openTestCatalog(t)
	ctx := context.Background()
	a := addSong(t, cat, "Alpha")
	b := addSong(t, cat, "Bravo")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, RunPlaylistCreate(ctx, cat, &PlaylistCreateParams{Name: "mix"}, &stdout, &stderr))
	require.Equal(t, 0, RunPlaylistAdd(ctx, cat, &PlaylistAddParams{Name: "mix", SongIDs: []string{b.ID, a.ID}}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), `Added 2 songs to "mix"`)

	stdout.Reset()
	require.Equal(t, 0, RunPlaylistShow(ctx, cat, &PlaylistShowParams{Name: "mix"}, &stdout, &stderr))
	shown := stdout.String()
	assert.Less(t, strings.Index(shown, "Bravo"), strings.Index(shown, "Alpha"), "playlist order is kept")
	assert.Contains(t, strings.ToLower(shown), "2 songs")
	assert.Contains(t, shown, "6:00")

	require.Equal(t, 0, RunPlaylistRemove(ctx, cat, &PlaylistRemoveParams{Name: "mix", SongID: b.ID}, &stdout, &stderr))
	info, err := cat.PlaylistByName(ctx, "mix")
	require.NoError(t, err)
	assert.Equal(t, 1, info.SongCount)

	stdout.Reset()
	require.Equal(t, 0, RunPlaylistList(ctx, cat, &PlaylistListParams{}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "mix")
	assert.Empty(t, stderr.String())
}

func TestPlaylistCommands_Errors(t *testing.T) {
	cat := openTestCatalog(t)
	ctx := context.Background()

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, RunPlaylistCreate(ctx, cat, &PlaylistCreateParams{Name: "mix"}, &stdout, &stderr))

	assert.Equal(t, 1, RunPlaylistCreate(ctx, cat, &PlaylistCreateParams{Name: "mix"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Failed to create playlist 'mix'")

	stderr.Reset()
	assert.Equal(t, 1, RunPlaylistAdd(ctx, cat, &PlaylistAddParams{Name: "mix", SongIDs: []string{"missing"}}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Failed to add track to playlist 'mix'")

	stderr.Reset()
	assert.Equal(t, 1, RunPlaylistShow(ctx, cat, &PlaylistShowParams{Name: "ghost"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Failed to load playlist 'ghost'")
}

func TestRunPlaylistList_Empty(t *testing.T) {
	cat := openTestCatalog(t)

	var stdout, stderr bytes.Buffer
	code := RunPlaylistList(context.Background(), cat, &PlaylistListParams{}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Equal(t, "No playlists.\n", stdout.String())
}

func TestLoadTracks(t *testing.T) {
	cat := openTestCatalog(t)
	ctx := context.Background()
	a := addSong(t, cat, "Alpha")
	b := addSong(t, cat, "Bravo")
	_, err := cat.CreatePlaylist(ctx, "mix")
	require.NoError(t, err)
	require.NoError(t, cat.AddToPlaylist(ctx, "mix", b.ID))

	t.Run("explicit ids keep their order", func(t *testing.T) {
		tracks, err := loadTracks(ctx, cat, &PlayParams{SongIDs: []string{b.ID, a.ID}})
		require.NoError(t, err)
		require.Len(t, tracks, 2)
		assert.Equal(t, b.ID, tracks[0].ID)
		assert.Equal(t, a.ID, tracks[1].ID)
	})

	t.Run("playlist", func(t *testing.T) {
		tracks, err := loadTracks(ctx, cat, &PlayParams{Playlist: "mix"})
		require.NoError(t, err)
		require.Len(t, tracks, 1)
		assert.Equal(t, "Bravo", tracks[0].Title)
	})

	t.Run("whole catalog", func(t *testing.T) {
		tracks, err := loadTracks(ctx, cat, &PlayParams{})
		require.NoError(t, err)
		assert.Len(t, tracks, 2)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := loadTracks(ctx, cat, &PlayParams{SongIDs: []string{"missing"}})
		require.ErrorIs(t, err, catalog.ErrNotFound)
	})
}

func TestStartIndex(t *testing.T) {
	tests := []struct {
		position int
		n        int
		want     int
		wantErr  bool
	}{
		{1, 3, 0, false},
		{3, 3, 2, false},
		{0, 3, 0, true},
		{4, 3, 0, true},
	}

	for _, tt := range tests {
		got, err := startIndex(tt.position, tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("startIndex(%d, %d) error = %v, wantErr %v", tt.position, tt.n, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("startIndex(%d, %d) = %d, want %d", tt.position, tt.n, got, tt.want)
		}
	}
}

func TestStartQueue(t *testing.T) {
	tracks := []playlist.Track{
		{ID: "a", Source: "/music/a.mp3"},
		{ID: "b", Source: "/music/b.mp3"},
		{ID: "c", Source: "/music/c.mp3"},
	}

	for _, shuffle := range []bool{false, true} {
		p := player.NewMock()
		svc := playback.New(p, playlist.NewQueue())
		sub := svc.Subscribe()

		startQueue(svc, tracks, 1, shuffle)

		loads := p.LoadCalls()
		require.Len(t, loads, 1)
		assert.Equal(t, "/music/b.mp3", loads[0].Source)
		assert.Equal(t, playback.StatePlaying, svc.State())
		assert.Equal(t, shuffle, svc.Shuffle())
		assert.Len(t, svc.QueueTracks(), 3)

		select {
		case q := <-sub.QueueChanged:
			assert.Len(t, q.Tracks, 3)
		default:
			t.Error("no queue change published")
		}
		select {
		case <-sub.ModeChanged:
		default:
			t.Error("no mode change published")
		}
		svc.Close()
	}
}

type fakeRecorder struct {
	mu     sync.Mutex
	counts map[string]int
	fail   string
}

func (f *fakeRecorder) IncrementPlayCount(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id == f.fail {
		return catalog.ErrNotFound
	}
	f.counts[id]++
	return nil
}

func (f *fakeRecorder) count(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[id]
}

func TestRecordPlays(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &fakeRecorder{counts: map[string]int{}, fail: "gone"}
		svc := playback.New(player.NewMock(), playlist.NewQueue())
		sub := svc.Subscribe()
		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

		done := make(chan struct{})
		go func() {
			recordPlays(t.Context(), rec, sub, logger)
			close(done)
		}()

		a := playlist.Track{ID: "a", Source: "/music/a.mp3"}
		svc.PlayTrack(playlist.Track{ID: "gone", Source: "/music/gone.mp3"})
		svc.PlayTrack(a)
		svc.Pause()
		svc.Play()
		synctest.Wait()

		if got := rec.count("a"); got != 1 {
			t.Errorf("play count of a = %d, want 1 (resume is not a new play)", got)
		}

		svc.Close()
		<-done
	})
}

func TestSetupLogging(t *testing.T) {
	orig := slog.Default()
	t.Cleanup(func() { slog.SetDefault(orig) })
	path := filepath.Join(t.TempDir(), "state", "cadence.log")

	logger, closeLog, err := setupLogging(path, true)
	require.NoError(t, err)
	logger.Debug("track ended", "track", "a")
	slog.Info("via default")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "track ended")
	assert.Contains(t, string(data), "via default")
}
