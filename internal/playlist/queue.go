package playlist

import "math/rand/v2"

// Shuffler permutes n elements through swap, with the signature of rand.Shuffle.
type Shuffler func(n int, swap func(i, j int))

// Option configures a PlayingQueue.
type Option func(*PlayingQueue)

// WithShuffler replaces the random source used when shuffle is enabled.
func WithShuffler(s Shuffler) Option {
	return func(q *PlayingQueue) {
		q.shuffler = s
	}
}

// WithRepeatMode sets the initial repeat mode.
func WithRepeatMode(mode RepeatMode) Option {
	return func(q *PlayingQueue) {
		q.repeat = mode
	}
}

// PlayingQueue is the live play order plus the current position and modifiers.
//
// The shadow playlist keeps the order tracks were loaded and appended in, so
// that disabling shuffle restores it verbatim. While shuffle is off, live and
// shadow hold the same sequence.
//
// Every operation leaves currentIndex in [0, Len()) for a non-empty queue and
// at -1 for an empty one.
type PlayingQueue struct {
	live         *Playlist
	shadow       *Playlist
	currentIndex int // -1 if empty
	repeat       RepeatMode
	shuffle      bool
	shuffler     Shuffler
}

// NewQueue creates a new empty playing queue.
func NewQueue(opts ...Option) *PlayingQueue {
	q := &PlayingQueue{
		live:         NewPlaylist(),
		shadow:       NewPlaylist(),
		currentIndex: -1,
		shuffler:     rand.Shuffle,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Current returns the current track, or nil if the queue is empty.
func (q *PlayingQueue) Current() *Track {
	return q.live.Track(q.currentIndex)
}

// CurrentIndex returns the index of the current track (-1 if none).
func (q *PlayingQueue) CurrentIndex() int {
	return q.currentIndex
}

// LoadCollection replaces the queue and shadow order with tracks and selects
// startIndex, clamped to the valid range. Shuffle is reset; repeat is kept.
// Returns the new current track, or nil if tracks is empty.
func (q *PlayingQueue) LoadCollection(tracks []Track, startIndex int) *Track {
	q.live.Set(tracks)
	q.shadow.Set(tracks)
	q.shuffle = false

	if len(tracks) == 0 {
		q.currentIndex = -1
		return nil
	}
	q.currentIndex = min(max(startIndex, 0), len(tracks)-1)
	return q.Current()
}

// Append adds tracks to the end of both the live and the shadow order.
// If the queue was empty, the first appended track becomes current.
func (q *PlayingQueue) Append(tracks ...Track) {
	if len(tracks) == 0 {
		return
	}
	wasEmpty := q.live.Len() == 0
	q.live.Add(tracks...)
	q.shadow.Add(tracks...)
	if wasEmpty {
		q.currentIndex = 0
	}
}

// RemoveAt removes the track at index and returns it.
//
// Removing a track before the current one shifts the index so that it keeps
// pointing at the same track. Removing the current track leaves the index on
// whatever now occupies that slot, clamped to the new last index.
func (q *PlayingQueue) RemoveAt(index int) (Track, error) {
	removed := q.live.Track(index)
	if removed == nil {
		return Track{}, outOfRange(index, q.live.Len())
	}
	track := *removed

	q.live.Remove(index)
	if q.shuffle {
		q.shadow.Remove(q.shadow.IndexOf(track.ID))
	} else {
		q.shadow.Remove(index)
	}

	switch {
	case q.live.Len() == 0:
		q.currentIndex = -1
	case index < q.currentIndex:
		q.currentIndex--
	case q.currentIndex >= q.live.Len():
		q.currentIndex = q.live.Len() - 1
	}

	return track, nil
}

// SetCurrentIndex selects the track at index without touching playback.
func (q *PlayingQueue) SetCurrentIndex(index int) error {
	if q.live.Track(index) == nil {
		return outOfRange(index, q.live.Len())
	}
	q.currentIndex = index
	return nil
}

// Advance moves to the next track.
//
// Policy, evaluated in order: empty queue is a no-op; repeat one replays the
// current track; otherwise move forward, wrapping to the first track at the
// end regardless of repeat mode.
func (q *PlayingQueue) Advance() Step {
	switch {
	case q.live.Len() == 0:
		return StepNoOp
	case q.repeat == RepeatOne:
		return StepReplay
	case q.currentIndex < q.live.Len()-1:
		q.currentIndex++
		return StepAdvanced
	default:
		q.currentIndex = 0
		return StepWrapped
	}
}

// Retreat moves to the previous track.
// Unlike Advance, the start of the queue only wraps with repeat all.
func (q *PlayingQueue) Retreat() Step {
	switch {
	case q.live.Len() == 0:
		return StepNoOp
	case q.repeat == RepeatOne:
		return StepReplay
	case q.currentIndex > 0:
		q.currentIndex--
		return StepRetreated
	case q.repeat == RepeatAll:
		q.currentIndex = q.live.Len() - 1
		return StepWrapped
	default:
		return StepBoundary
	}
}

// SetShuffle enables or disables shuffle.
//
// Enabling permutes the live order and leaves the shadow order alone.
// Disabling restores the live order from the shadow order. In both cases the
// current index is kept as a raw position, so the current track may change.
func (q *PlayingQueue) SetShuffle(enabled bool) {
	if enabled == q.shuffle {
		return
	}
	q.shuffle = enabled

	if !enabled {
		q.live.Set(q.shadow.tracks)
		return
	}

	shuffled := q.live.Tracks()
	q.shuffler(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	q.live.Set(shuffled)
}

// ToggleShuffle flips shuffle and returns the new setting.
func (q *PlayingQueue) ToggleShuffle() bool {
	q.SetShuffle(!q.shuffle)
	return q.shuffle
}

// Shuffle returns whether shuffle is enabled.
func (q *PlayingQueue) Shuffle() bool {
	return q.shuffle
}

// SetRepeatMode sets the repeat mode.
func (q *PlayingQueue) SetRepeatMode(mode RepeatMode) {
	q.repeat = mode
}

// CycleRepeatMode moves to the next repeat mode and returns it.
func (q *PlayingQueue) CycleRepeatMode() RepeatMode {
	q.repeat = q.repeat.Next()
	return q.repeat
}

// RepeatMode returns the current repeat mode.
func (q *PlayingQueue) RepeatMode() RepeatMode {
	return q.repeat
}

// IndexOf returns the live position of the first track with the given ID, or -1.
func (q *PlayingQueue) IndexOf(id string) int {
	return q.live.IndexOf(id)
}

// Clear removes all tracks. Modifiers are kept.
func (q *PlayingQueue) Clear() {
	q.live.Clear()
	q.shadow.Clear()
	q.currentIndex = -1
}

// Tracks returns the live play order.
func (q *PlayingQueue) Tracks() []Track {
	return q.live.Tracks()
}

// OriginalTracks returns the shadow (pre-shuffle) order.
func (q *PlayingQueue) OriginalTracks() []Track {
	return q.shadow.Tracks()
}

// Len returns the number of tracks in the queue.
func (q *PlayingQueue) Len() int {
	return q.live.Len()
}

// IsEmpty returns true if the queue has no tracks.
func (q *PlayingQueue) IsEmpty() bool {
	return q.live.Len() == 0
}
