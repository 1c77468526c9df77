package playback

import (
	"log/slog"
	"time"

	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/playlist"
)

// loadedTrack is what the audio output currently holds.
type loadedTrack struct {
	id     string
	source string
}

// transport bridges the queue and the audio output. It owns the playback
// status, position, duration and volume.
//
// transport is not safe for concurrent use; serviceImpl serializes access.
type transport struct {
	player player.Interface
	queue  *playlist.PlayingQueue
	logger *slog.Logger
	events *hub

	status        State
	position      time.Duration
	duration      time.Duration
	volume        float64
	unmuteVolume  float64
	defaultVolume float64

	// generation tags every Load; events from older loads are dropped.
	generation uint64
	loaded     *loadedTrack
	lastErr    error

	lastTrack *playlist.Track
	lastIndex int
}

func newTransport(p player.Interface, q *playlist.PlayingQueue, logger *slog.Logger, events *hub, volume float64) *transport {
	t := &transport{
		player:        p,
		queue:         q,
		logger:        logger,
		events:        events,
		defaultVolume: clampVolume(volume),
		lastIndex:     -1,
	}
	t.volume = t.defaultVolume
	t.unmuteVolume = t.defaultVolume
	p.SetVolume(t.volume)
	return t
}

// playCurrent plays the queue's current track, loading it first unless it is
// the one the output already holds. Re-invoking it while that track is
// playing does nothing.
func (t *transport) playCurrent() {
	cur := t.queue.Current()
	if cur == nil {
		return
	}

	if t.isLoaded(cur) {
		if t.status == StatePlaying {
			return
		}
		t.player.Play()
		t.setStatus(StatePlaying)
		return
	}

	t.load(cur)
	t.player.Play()
	// Optimistic: EventStarted confirms it later.
	t.setStatus(StatePlaying)
}

func (t *transport) isLoaded(track *playlist.Track) bool {
	return t.loaded != nil && t.loaded.id == track.ID && t.loaded.source == track.Source
}

func (t *transport) load(track *playlist.Track) {
	t.generation++
	t.loaded = &loadedTrack{id: track.ID, source: track.Source}
	t.position = 0
	t.duration = track.Duration
	t.lastErr = nil

	t.logger.Debug("loading track", "id", track.ID, "source", track.Source, "generation", t.generation)
	t.player.Load(t.generation, track.Source)

	current := *track
	index := t.queue.CurrentIndex()
	t.events.track(TrackChange{
		Previous:      t.lastTrack,
		Current:       &current,
		PreviousIndex: t.lastIndex,
		Index:         index,
	})
	t.events.position(PositionChange{Position: 0, Duration: t.duration})
	t.lastTrack = &current
	t.lastIndex = index
}

// pause asks the output to pause. The status follows EventPaused.
func (t *transport) pause() {
	if t.loaded == nil {
		return
	}
	t.player.Pause()
}

// stop silences the output, forgets the loaded track and drops any event
// still in flight for it.
func (t *transport) stop() {
	if t.loaded != nil {
		t.player.Pause()
	}
	t.generation++
	t.loaded = nil
	t.position = 0
	t.setStatus(StateStopped)
	t.events.position(PositionChange{Position: 0, Duration: t.duration})
}

// restart plays the current track again from the beginning.
func (t *transport) restart() {
	cur := t.queue.Current()
	if cur == nil || !t.isLoaded(cur) {
		t.playCurrent()
		return
	}
	t.seekTo(0)
	if t.status != StatePlaying {
		t.player.Play()
		t.setStatus(StatePlaying)
	}
}

// release makes the transport forget the loaded track after it was removed
// from the queue. The next playCurrent loads afresh.
func (t *transport) release() {
	wasPlaying := t.status == StatePlaying

	t.generation++
	t.loaded = nil
	t.position = 0
	t.duration = 0

	switch {
	case t.queue.IsEmpty():
		t.stop()
	case wasPlaying:
		t.playCurrent()
	default:
		t.player.Pause()
	}
}

// seekTo moves to position, clamped to [0, duration]. The position is
// updated immediately.
func (t *transport) seekTo(position time.Duration) {
	if t.loaded == nil {
		return
	}
	position = max(position, 0)
	if t.duration > 0 {
		position = min(position, t.duration)
	}
	t.player.Seek(position)
	t.position = position
	t.events.position(PositionChange{Position: position, Duration: t.duration})
}

func (t *transport) seekBy(delta time.Duration) {
	t.seekTo(t.position + delta)
}

func (t *transport) setVolume(level float64) {
	level = clampVolume(level)
	t.player.SetVolume(level)
	t.volume = level
	if level > 0 {
		t.unmuteVolume = level
	}
	t.events.volume(VolumeChange{Volume: level})
}

// toggleMute switches between silence and the last audible level.
func (t *transport) toggleMute() float64 {
	if t.volume > 0 {
		t.unmuteVolume = t.volume
		t.setVolume(0)
		return t.volume
	}
	restore := t.unmuteVolume
	if restore <= 0 {
		restore = t.defaultVolume
	}
	t.setVolume(restore)
	return t.volume
}

// handle reconciles an output event into transport state. It returns the
// AudioOutputError for EventError.
func (t *transport) handle(e player.Event) error {
	if e.Generation != t.generation {
		t.logger.Debug("dropping stale output event", "kind", e.Kind, "generation", e.Generation, "current", t.generation)
		return nil
	}

	switch e.Kind {
	case player.EventLoadedMetadata:
		t.duration = e.Duration
		t.events.position(PositionChange{Position: t.position, Duration: t.duration})
	case player.EventTimeUpdate:
		t.position = e.Position
		t.events.position(PositionChange{Position: t.position, Duration: t.duration})
	case player.EventStarted:
		t.setStatus(StatePlaying)
	case player.EventPaused:
		if t.status == StatePlaying {
			t.setStatus(StatePaused)
		}
	case player.EventEnded:
		t.onEnded()
	case player.EventError:
		return t.onError(e.Err)
	}
	return nil
}

func (t *transport) onEnded() {
	t.logger.Debug("track ended", "generation", t.generation)
	t.loaded = nil
	t.position = 0

	if t.queue.RepeatMode() == playlist.RepeatOne {
		t.playCurrent()
		return
	}

	if t.queue.Advance() == playlist.StepNoOp {
		t.setStatus(StateStopped)
		return
	}
	t.events.queue(QueueChange{Tracks: t.queue.Tracks(), Index: t.queue.CurrentIndex()})
	t.playCurrent()
}

func (t *transport) onError(cause error) error {
	err := &AudioOutputError{Cause: cause}
	if t.loaded != nil {
		err.TrackID = t.loaded.id
		err.Source = t.loaded.source
	}
	// The output no longer holds a playable track; retrying loads afresh.
	t.loaded = nil
	t.lastErr = err

	if t.status.IsActive() {
		t.setStatus(StatePaused)
	}

	t.logger.Warn("audio output failed", "track", err.TrackID, "source", err.Source, "error", cause)
	t.events.failure(ErrorEvent{Operation: errmsg.OpPlaybackStart, TrackID: err.TrackID, Err: err})
	return err
}

func (t *transport) setStatus(s State) {
	if s == t.status {
		return
	}
	prev := t.status
	t.status = s
	t.logger.Debug("playback state changed", "from", prev, "to", s)
	t.events.state(StateChange{Previous: prev, Current: s})
}

func clampVolume(level float64) float64 {
	return min(max(level, 0), 1)
}
