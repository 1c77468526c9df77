package playback

import (
	"context"
	"time"

	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/playlist"
)

// Service is the single entry point for playback. Every method is safe for
// concurrent use; calls and audio output events are applied one at a time.
type Service interface {
	// Queue intents. PlayTrack is additive and PlayCollection replaces the
	// queue; Enqueue never starts playback.
	PlayTrack(track playlist.Track)
	PlayCollection(tracks []playlist.Track, startIndex int)
	Enqueue(tracks ...playlist.Track)
	Dequeue(index int) (playlist.Track, error)
	ClearQueue()
	JumpTo(index int) error
	SkipNext() playlist.Step
	SkipPrevious() playlist.Step

	// Transport control
	Play()
	Pause()
	Toggle()
	Stop()
	Seek(delta time.Duration)
	SeekTo(position time.Duration)
	SetVolume(level float64)
	ToggleMute() float64

	// Mode control
	RepeatMode() playlist.RepeatMode
	SetRepeatMode(mode playlist.RepeatMode)
	CycleRepeatMode() playlist.RepeatMode
	Shuffle() bool
	SetShuffle(enabled bool)
	ToggleShuffle() bool

	// State queries
	State() State
	Position() time.Duration
	Duration() time.Duration
	Volume() float64
	CurrentTrack() *playlist.Track
	QueueTracks() []playlist.Track
	QueueCurrentIndex() int
	QueueLen() int
	LastError() error
	Snapshot() Snapshot

	// Audio output events
	HandleEvent(e player.Event) error
	Run(ctx context.Context) error

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}

// Snapshot is a consistent view of the service for rendering.
type Snapshot struct {
	State      State
	Track      *playlist.Track
	Index      int
	Tracks     []playlist.Track
	Position   time.Duration
	Duration   time.Duration
	Volume     float64
	RepeatMode playlist.RepeatMode
	Shuffle    bool
	Err        error
}
