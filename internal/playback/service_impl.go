package playback

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/playlist"
)

// DefaultVolume is the level used at startup and when unmuting without a
// remembered level.
const DefaultVolume = 0.4

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

// Option configures the playback service.
type Option func(*options)

type options struct {
	logger *slog.Logger
	volume float64
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithDefaultVolume sets the startup volume (0.0 to 1.0).
func WithDefaultVolume(level float64) Option {
	return func(o *options) { o.volume = level }
}

type serviceImpl struct {
	// mu serializes every entry point and every audio output event.
	mu sync.Mutex

	player    player.Interface
	queue     *playlist.PlayingQueue
	transport *transport
	events    *hub
	logger    *slog.Logger

	done   chan struct{}
	closed bool
}

// New creates a new playback service driving p from q.
func New(p player.Interface, q *playlist.PlayingQueue, opts ...Option) Service {
	o := options{logger: slog.Default(), volume: DefaultVolume}
	for _, opt := range opts {
		opt(&o)
	}

	events := &hub{}
	return &serviceImpl{
		player:    p,
		queue:     q,
		transport: newTransport(p, q, o.logger, events, o.volume),
		events:    events,
		logger:    o.logger,
		done:      make(chan struct{}),
	}
}

// PlayTrack makes track current and plays it. A track already in the queue
// (by ID) is played at its position; otherwise it is appended.
func (s *serviceImpl) PlayTrack(track playlist.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.queue.IndexOf(track.ID)
	if index < 0 {
		s.queue.Append(track)
		index = s.queue.Len() - 1
	}
	_ = s.queue.SetCurrentIndex(index)
	s.publishQueue()
	s.transport.playCurrent()
}

// PlayCollection replaces the queue with tracks and plays from startIndex.
func (s *serviceImpl) PlayCollection(tracks []playlist.Track, startIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queue.LoadCollection(tracks, startIndex) == nil {
		s.transport.stop()
	}
	s.publishQueue()
	s.publishMode()
	s.transport.playCurrent()
}

// Enqueue appends tracks. Playback status is never changed.
func (s *serviceImpl) Enqueue(tracks ...playlist.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue.Append(tracks...)
	s.publishQueue()
}

// Dequeue removes the track at index. If it was the loaded track, the
// transport lets go of it: playback moves on to the new current track when
// it was playing, and stops when the queue became empty.
func (s *serviceImpl) Dequeue(index int) (playlist.Track, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasCurrent := index == s.queue.CurrentIndex()
	removed, err := s.queue.RemoveAt(index)
	if err != nil {
		s.events.failure(ErrorEvent{Operation: errmsg.OpQueueRemove, Err: err})
		return playlist.Track{}, err
	}

	// The loaded track may sit at any index once shuffle reordered the queue.
	cur := s.queue.Current()
	if s.transport.isLoaded(&removed) && (wasCurrent || cur == nil || !s.transport.isLoaded(cur)) {
		s.transport.release()
	} else if s.queue.IsEmpty() {
		s.transport.stop()
	}
	s.publishQueue()
	return removed, nil
}

// ClearQueue empties the queue and stops playback.
func (s *serviceImpl) ClearQueue() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue.Clear()
	s.transport.stop()
	s.publishQueue()
}

// JumpTo makes index current and plays it.
func (s *serviceImpl) JumpTo(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.queue.SetCurrentIndex(index); err != nil {
		s.events.failure(ErrorEvent{Operation: errmsg.OpQueueJump, Err: err})
		return err
	}
	s.publishQueue()
	s.transport.playCurrent()
	return nil
}

// SkipNext advances the queue and reacts to the outcome.
func (s *serviceImpl) SkipNext() playlist.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skip(s.queue.Advance())
}

// SkipPrevious retreats the queue and reacts to the outcome.
func (s *serviceImpl) SkipPrevious() playlist.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skip(s.queue.Retreat())
}

func (s *serviceImpl) skip(step playlist.Step) playlist.Step {
	switch step {
	case playlist.StepNoOp:
		s.transport.stop()
	case playlist.StepBoundary:
		s.transport.pause()
	case playlist.StepReplay:
		s.transport.restart()
	case playlist.StepAdvanced, playlist.StepRetreated, playlist.StepWrapped:
		s.publishQueue()
		s.transport.playCurrent()
	}
	return step
}

// Play starts or resumes the current track.
func (s *serviceImpl) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transport.playCurrent()
}

// Pause asks the output to pause.
func (s *serviceImpl) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transport.pause()
}

// Toggle pauses when playing, plays otherwise.
func (s *serviceImpl) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.transport.status == StatePlaying {
		s.transport.pause()
		return
	}
	s.transport.playCurrent()
}

// Stop stops playback. The queue is left untouched.
func (s *serviceImpl) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transport.stop()
}

// Seek moves the position by delta.
func (s *serviceImpl) Seek(delta time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transport.seekBy(delta)
}

// SeekTo moves to an absolute position.
func (s *serviceImpl) SeekTo(position time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transport.seekTo(position)
}

// SetVolume sets the volume, clamped to [0, 1].
func (s *serviceImpl) SetVolume(level float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transport.setVolume(level)
}

// ToggleMute mutes or restores the volume and returns the new level.
func (s *serviceImpl) ToggleMute() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transport.toggleMute()
}

// RepeatMode returns the current repeat mode.
func (s *serviceImpl) RepeatMode() playlist.RepeatMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.RepeatMode()
}

// SetRepeatMode sets the repeat mode.
func (s *serviceImpl) SetRepeatMode(mode playlist.RepeatMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.SetRepeatMode(mode)
	s.publishMode()
}

// CycleRepeatMode cycles none -> one -> all and returns the new mode.
func (s *serviceImpl) CycleRepeatMode() playlist.RepeatMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	mode := s.queue.CycleRepeatMode()
	s.publishMode()
	return mode
}

// Shuffle returns whether shuffle is enabled.
func (s *serviceImpl) Shuffle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Shuffle()
}

// SetShuffle enables or disables shuffle. Playback is not touched.
func (s *serviceImpl) SetShuffle(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.SetShuffle(enabled)
	s.publishMode()
	s.publishQueue()
}

// ToggleShuffle flips shuffle and returns the new setting.
func (s *serviceImpl) ToggleShuffle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	enabled := s.queue.ToggleShuffle()
	s.publishMode()
	s.publishQueue()
	return enabled
}

// State returns the current playback state.
func (s *serviceImpl) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transport.status
}

// Position returns the last known playback position.
func (s *serviceImpl) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transport.position
}

// Duration returns the current track duration.
func (s *serviceImpl) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transport.duration
}

// Volume returns the volume level.
func (s *serviceImpl) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transport.volume
}

// CurrentTrack returns a copy of the current track, or nil if none.
func (s *serviceImpl) CurrentTrack() *playlist.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTrackLocked()
}

func (s *serviceImpl) currentTrackLocked() *playlist.Track {
	t := s.queue.Current()
	if t == nil {
		return nil
	}
	track := *t
	return &track
}

// QueueTracks returns a copy of the live queue order.
func (s *serviceImpl) QueueTracks() []playlist.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Tracks()
}

// QueueCurrentIndex returns the current queue index (-1 if none).
func (s *serviceImpl) QueueCurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.CurrentIndex()
}

// QueueLen returns the number of queued tracks.
func (s *serviceImpl) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// LastError returns the last audio output error for the loaded track, if any.
func (s *serviceImpl) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transport.lastErr
}

// Snapshot returns the whole playback state at once.
func (s *serviceImpl) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:      s.transport.status,
		Track:      s.currentTrackLocked(),
		Index:      s.queue.CurrentIndex(),
		Tracks:     s.queue.Tracks(),
		Position:   s.transport.position,
		Duration:   s.transport.duration,
		Volume:     s.transport.volume,
		RepeatMode: s.queue.RepeatMode(),
		Shuffle:    s.queue.Shuffle(),
		Err:        s.transport.lastErr,
	}
}

// HandleEvent applies one audio output event.
func (s *serviceImpl) HandleEvent(e player.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transport.handle(e)
}

// Run applies audio output events until ctx is done, the service is closed,
// or the output closes its event channel. Errors are published to
// subscribers, not returned.
func (s *serviceImpl) Run(ctx context.Context) error {
	events := s.player.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			return nil
		case e, ok := <-events:
			if !ok {
				return nil
			}
			_ = s.HandleEvent(e)
		}
	}
}

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	return s.events.subscribe()
}

// Close stops playback and shuts down the service.
func (s *serviceImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.transport.stop()
	close(s.done)
	s.mu.Unlock()

	s.events.close()
	return nil
}

func (s *serviceImpl) publishQueue() {
	s.events.queue(QueueChange{Tracks: s.queue.Tracks(), Index: s.queue.CurrentIndex()})
}

func (s *serviceImpl) publishMode() {
	s.events.mode(ModeChange{RepeatMode: s.queue.RepeatMode(), Shuffle: s.queue.Shuffle()})
}
