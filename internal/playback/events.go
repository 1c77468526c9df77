package playback

import (
	"time"

	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/playlist"
)

// StateChange is emitted when playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when a track is loaded into the audio output.
//
// Emitted by:
//   - PlayTrack/PlayCollection/JumpTo: when the current track is not the loaded one
//   - SkipNext/SkipPrevious: when the queue moved to another track
//   - end of track: when the queue advanced, or repeat one reloads the track
//
// NOT emitted by:
//   - resuming the already loaded track
//   - Enqueue: appending never loads anything
//
// The app handles track side effects (notifications, play counts) in
// response to this event.
type TrackChange struct {
	Previous      *playlist.Track
	Current       *playlist.Track
	PreviousIndex int
	Index         int
}

// QueueChange is emitted when the queue contents or current index change.
type QueueChange struct {
	Tracks []playlist.Track
	Index  int
}

// ModeChange is emitted when repeat or shuffle mode changes.
type ModeChange struct {
	RepeatMode playlist.RepeatMode
	Shuffle    bool
}

// PositionChange is emitted on seeks, position updates, and when the duration
// becomes known.
type PositionChange struct {
	Position time.Duration
	Duration time.Duration
}

// VolumeChange is emitted when the volume level changes.
type VolumeChange struct {
	Volume float64
}

// ErrorEvent is emitted when the audio output fails or a queue operation is
// rejected.
type ErrorEvent struct {
	Operation errmsg.Op
	TrackID   string // empty when not tied to a track
	Err       error
}
