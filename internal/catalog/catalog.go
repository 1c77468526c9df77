// Package catalog stores songs and playlists in SQLite and resolves them to
// playable tracks.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/cadence/internal/db"
	"github.com/llehouerou/cadence/internal/playlist"
)

// MemoryPath opens a private in-memory catalog.
const MemoryPath = ":memory:"

// Song is a catalog entry.
type Song struct {
	ID        string
	Title     string
	Artist    string
	Album     string
	Genre     string
	Source    string
	Duration  time.Duration
	Year      int
	PlayCount int
	AddedAt   time.Time
}

// Track converts the song to the queue's track value.
func (s Song) Track() playlist.Track {
	return playlist.Track{
		ID:       s.ID,
		Title:    s.Title,
		Artist:   s.Artist,
		Album:    s.Album,
		Source:   s.Source,
		Duration: s.Duration,
	}
}

// Filter narrows FetchCollection and Songs. Zero fields match everything.
type Filter struct {
	Playlist string // playlist name; results keep playlist order
	Artist   string // exact artist
	Query    string // substring of title or artist
	Limit    int
}

// Catalog is the SQLite-backed song and playlist store.
type Catalog struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the catalog database at path.
func Open(path string) (*Catalog, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection: keeps :memory: databases alive and avoids SQLITE_BUSY.
	conn.SetMaxOpenConns(1)

	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Catalog{db: conn, now: time.Now}, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

const songColumns = `s.id, s.title, s.artist, s.album, s.genre, s.source, s.duration_ms, s.year, s.play_count, s.added_at`

// AddSong inserts a song, or updates the tags of the song with the same
// source. The stored song is returned.
func (c *Catalog) AddSong(ctx context.Context, s Song) (Song, error) {
	if s.Source == "" {
		return Song{}, errors.New("song source is required")
	}
	if s.Title == "" {
		s.Title = filepath.Base(s.Source)
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO songs (id, title, artist, album, genre, source, duration_ms, year, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(source) DO UPDATE SET
			title = excluded.title,
			artist = excluded.artist,
			album = excluded.album,
			genre = excluded.genre,
			duration_ms = excluded.duration_ms,
			year = excluded.year
	`, uuid.NewString(), s.Title, s.Artist, db.NullString(s.Album), db.NullString(s.Genre),
		s.Source, s.Duration.Milliseconds(), db.NullInt64(int64(s.Year)), c.now().Unix())
	if err != nil {
		return Song{}, fmt.Errorf("insert song: %w", err)
	}

	row := c.db.QueryRowContext(ctx, `SELECT `+songColumns+` FROM songs s WHERE s.source = ?`, s.Source)
	return scanSong(row)
}

// Song returns the song with the given ID.
func (c *Catalog) Song(ctx context.Context, id string) (Song, error) {
	row := c.db.QueryRowContext(ctx, `SELECT `+songColumns+` FROM songs s WHERE s.id = ?`, id)
	song, err := scanSong(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Song{}, fmt.Errorf("song %s: %w", id, ErrNotFound)
	}
	return song, err
}

// FetchTrackByID returns the playable track for a song ID.
func (c *Catalog) FetchTrackByID(ctx context.Context, id string) (playlist.Track, error) {
	song, err := c.Song(ctx, id)
	if err != nil {
		return playlist.Track{}, err
	}
	return song.Track(), nil
}

// FetchCollection returns the playable tracks matching f, in play order.
func (c *Catalog) FetchCollection(ctx context.Context, f Filter) ([]playlist.Track, error) {
	songs, err := c.Songs(ctx, f)
	if err != nil {
		return nil, err
	}
	return lo.Map(songs, func(s Song, _ int) playlist.Track { return s.Track() }), nil
}

// Songs returns the songs matching f. Without a playlist they are ordered by
// artist, album and title.
func (c *Catalog) Songs(ctx context.Context, f Filter) ([]Song, error) {
	var (
		query strings.Builder
		conds []string
		args  []any
	)

	query.WriteString(`SELECT ` + songColumns + ` FROM songs s`)
	if f.Playlist != "" {
		pl, err := c.PlaylistByName(ctx, f.Playlist)
		if err != nil {
			return nil, err
		}
		query.WriteString(` JOIN playlist_songs ps ON ps.song_id = s.id`)
		conds = append(conds, `ps.playlist_id = ?`)
		args = append(args, pl.ID)
	}
	if f.Artist != "" {
		conds = append(conds, `s.artist = ?`)
		args = append(args, f.Artist)
	}
	if f.Query != "" {
		conds = append(conds, `(s.title LIKE ? OR s.artist LIKE ?)`)
		like := "%" + f.Query + "%"
		args = append(args, like, like)
	}
	if len(conds) > 0 {
		query.WriteString(` WHERE ` + strings.Join(conds, ` AND `))
	}
	if f.Playlist != "" {
		query.WriteString(` ORDER BY ps.position`)
	} else {
		query.WriteString(` ORDER BY s.artist, s.album, s.title`)
	}
	if f.Limit > 0 {
		query.WriteString(` LIMIT ?`)
		args = append(args, f.Limit)
	}

	rows, err := c.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query songs: %w", err)
	}
	defer rows.Close()

	var songs []Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

// IncrementPlayCount records one play of the song.
func (c *Catalog) IncrementPlayCount(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, `UPDATE songs SET play_count = play_count + 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("song %s: %w", id, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSong(row scanner) (Song, error) {
	var (
		s          Song
		album      sql.NullString
		genre      sql.NullString
		year       sql.NullInt64
		durationMS int64
		addedAt    int64
	)
	err := row.Scan(&s.ID, &s.Title, &s.Artist, &album, &genre, &s.Source,
		&durationMS, &year, &s.PlayCount, &addedAt)
	if err != nil {
		return Song{}, err
	}
	s.Album = db.NullStringValue(album)
	s.Genre = db.NullStringValue(genre)
	s.Year = int(db.NullInt64Value(year))
	s.Duration = time.Duration(durationMS) * time.Millisecond
	s.AddedAt = time.Unix(addedAt, 0)
	return s, nil
}
