package playlist

import (
	"fmt"
	"time"

	"github.com/samber/lo"
)

// Track represents a single playable track.
// Tracks are owned by the catalog; the queue only stores copies.
type Track struct {
	ID       string // opaque catalog identifier
	Title    string
	Artist   string
	Album    string
	Source   string // playable source reference (file path or URL)
	Duration time.Duration
}

// Playlist holds an ordered collection of tracks.
type Playlist struct {
	tracks []Track
}

// NewPlaylist creates a new empty playlist.
func NewPlaylist() *Playlist {
	return &Playlist{
		tracks: make([]Track, 0),
	}
}

// Add appends tracks to the playlist.
func (p *Playlist) Add(tracks ...Track) {
	p.tracks = append(p.tracks, tracks...)
}

// Set replaces the playlist contents with a copy of tracks.
func (p *Playlist) Set(tracks []Track) {
	p.tracks = make([]Track, len(tracks))
	copy(p.tracks, tracks)
}

// Remove removes the track at the given index.
// Returns false if index is out of bounds.
func (p *Playlist) Remove(index int) bool {
	if index < 0 || index >= len(p.tracks) {
		return false
	}
	p.tracks = append(p.tracks[:index], p.tracks[index+1:]...)
	return true
}

// Clear removes all tracks from the playlist.
func (p *Playlist) Clear() {
	p.tracks = p.tracks[:0]
}

// Tracks returns a copy of all tracks.
func (p *Playlist) Tracks() []Track {
	result := make([]Track, len(p.tracks))
	copy(result, p.tracks)
	return result
}

// Track returns the track at the given index, or nil if out of bounds.
func (p *Playlist) Track(index int) *Track {
	if index < 0 || index >= len(p.tracks) {
		return nil
	}
	return &p.tracks[index]
}

// IndexOf returns the position of the first track with the given ID, or -1.
func (p *Playlist) IndexOf(id string) int {
	_, index, found := lo.FindIndexOf(p.tracks, func(t Track) bool {
		return t.ID == id
	})
	if !found {
		return -1
	}
	return index
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// FormatDuration formats a duration as m:ss.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
