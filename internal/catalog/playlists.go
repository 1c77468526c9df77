package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/llehouerou/cadence/internal/db"
)

// PlaylistInfo describes a playlist with its aggregate length.
type PlaylistInfo struct {
	ID            string
	Name          string
	SongCount     int
	TotalDuration time.Duration
	CreatedAt     time.Time
}

// CreatePlaylist creates an empty playlist.
func (c *Catalog) CreatePlaylist(ctx context.Context, name string) (PlaylistInfo, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return PlaylistInfo{}, errors.New("playlist name is required")
	}

	info := PlaylistInfo{ID: uuid.NewString(), Name: name, CreatedAt: time.Unix(c.now().Unix(), 0)}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO playlists (id, name, created_at) VALUES (?, ?, ?)`,
		info.ID, info.Name, info.CreatedAt.Unix())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return PlaylistInfo{}, fmt.Errorf("playlist %q: %w", name, ErrExists)
		}
		return PlaylistInfo{}, fmt.Errorf("insert playlist: %w", err)
	}
	return info, nil
}

const playlistQuery = `
	SELECT p.id, p.name, p.created_at, COUNT(s.id), COALESCE(SUM(s.duration_ms), 0)
	FROM playlists p
	LEFT JOIN playlist_songs ps ON ps.playlist_id = p.id
	LEFT JOIN songs s ON s.id = ps.song_id
`

// PlaylistByName returns the playlist with the given name.
func (c *Catalog) PlaylistByName(ctx context.Context, name string) (PlaylistInfo, error) {
	row := c.db.QueryRowContext(ctx, playlistQuery+` WHERE p.name = ? GROUP BY p.id`, name)
	info, err := scanPlaylist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return PlaylistInfo{}, fmt.Errorf("playlist %q: %w", name, ErrNotFound)
	}
	return info, err
}

// Playlists returns every playlist ordered by name.
func (c *Catalog) Playlists(ctx context.Context) ([]PlaylistInfo, error) {
	rows, err := c.db.QueryContext(ctx, playlistQuery+` GROUP BY p.id ORDER BY p.name`)
	if err != nil {
		return nil, fmt.Errorf("query playlists: %w", err)
	}
	defer rows.Close()

	var out []PlaylistInfo
	for rows.Next() {
		info, err := scanPlaylist(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// AddToPlaylist appends songs to the named playlist, in order. Either all
// songs are added or none.
func (c *Catalog) AddToPlaylist(ctx context.Context, name string, songIDs ...string) error {
	pl, err := c.PlaylistByName(ctx, name)
	if err != nil {
		return err
	}

	return db.WithTx(ctx, c.db, func(tx *sql.Tx) error {
		var next int64
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(position), -1) + 1 FROM playlist_songs WHERE playlist_id = ?`,
			pl.ID).Scan(&next); err != nil {
			return err
		}

		for _, id := range songIDs {
			var exists int
			err := tx.QueryRowContext(ctx, `SELECT 1 FROM songs WHERE id = ?`, id).Scan(&exists)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("song %s: %w", id, ErrNotFound)
			}
			if err != nil {
				return err
			}

			if _, err := tx.ExecContext(ctx,
				`INSERT INTO playlist_songs (playlist_id, song_id, position) VALUES (?, ?, ?)`,
				pl.ID, id, next); err != nil {
				return err
			}
			next++
		}
		return nil
	})
}

// RemoveFromPlaylist removes the first occurrence of a song from the named
// playlist. Later songs keep their relative order.
func (c *Catalog) RemoveFromPlaylist(ctx context.Context, name, songID string) error {
	pl, err := c.PlaylistByName(ctx, name)
	if err != nil {
		return err
	}

	return db.WithTx(ctx, c.db, func(tx *sql.Tx) error {
		var position sql.NullInt64
		err := tx.QueryRowContext(ctx,
			`SELECT MIN(position) FROM playlist_songs WHERE playlist_id = ? AND song_id = ?`,
			pl.ID, songID).Scan(&position)
		if err != nil {
			return err
		}
		if !position.Valid {
			return fmt.Errorf("song %s in playlist %q: %w", songID, name, ErrNotFound)
		}

		_, err = tx.ExecContext(ctx,
			`DELETE FROM playlist_songs WHERE playlist_id = ? AND position = ?`,
			pl.ID, position.Int64)
		return err
	})
}

func scanPlaylist(row scanner) (PlaylistInfo, error) {
	var (
		info       PlaylistInfo
		createdAt  int64
		durationMS int64
	)
	if err := row.Scan(&info.ID, &info.Name, &createdAt, &info.SongCount, &durationMS); err != nil {
		return PlaylistInfo{}, err
	}
	info.CreatedAt = time.Unix(createdAt, 0)
	info.TotalDuration = time.Duration(durationMS) * time.Millisecond
	return info, nil
}
