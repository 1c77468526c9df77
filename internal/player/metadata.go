package player

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
)

// TrackInfo is what can be learned about an audio file before playing it.
type TrackInfo struct {
	Path     string
	Title    string
	Artist   string
	Album    string
	Genre    string
	Year     int
	Track    int
	Duration time.Duration
}

// ReadTrackInfo reads the tags of an audio file. A missing title falls back to
// the file name without its extension.
func ReadTrackInfo(path string) (*TrackInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}

	title := m.Title()
	if title == "" {
		title = titleFromPath(path)
	}

	artist := m.Artist()
	if artist == "" {
		artist = m.AlbumArtist()
	}

	track, _ := m.Track()

	return &TrackInfo{
		Path:   path,
		Title:  title,
		Artist: artist,
		Album:  m.Album(),
		Genre:  m.Genre(),
		Year:   m.Year(),
		Track:  track,
	}, nil
}

// ExtractFullMetadata reads both tag metadata and audio duration.
// It decodes the audio file to determine duration.
func ExtractFullMetadata(path string) (*TrackInfo, error) {
	info, err := ReadTrackInfo(path)
	if err != nil {
		info = &TrackInfo{
			Path:  path,
			Title: titleFromPath(path),
		}
	}

	duration, err := ProbeDuration(path)
	if err != nil {
		return nil, err
	}
	info.Duration = duration

	return info, nil
}

// ProbeDuration decodes the file header and returns the track length.
func ProbeDuration(path string) (time.Duration, error) {
	streamer, format, err := decodeFile(path)
	if err != nil {
		return 0, err
	}
	defer streamer.Close()

	return format.SampleRate.D(streamer.Len()), nil
}

func titleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
