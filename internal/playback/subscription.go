package playback

import "sync"

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	StateChanged    <-chan StateChange
	TrackChanged    <-chan TrackChange
	PositionChanged <-chan PositionChange
	QueueChanged    <-chan QueueChange
	ModeChanged     <-chan ModeChange
	VolumeChanged   <-chan VolumeChange
	Error           <-chan ErrorEvent
	Done            <-chan struct{}

	// Internal write channels
	stateCh    chan StateChange
	trackCh    chan TrackChange
	positionCh chan PositionChange
	queueCh    chan QueueChange
	modeCh     chan ModeChange
	volumeCh   chan VolumeChange
	errorCh    chan ErrorEvent
	doneCh     chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:    make(chan StateChange, eventBufferSize),
		trackCh:    make(chan TrackChange, eventBufferSize),
		positionCh: make(chan PositionChange, eventBufferSize),
		queueCh:    make(chan QueueChange, eventBufferSize),
		modeCh:     make(chan ModeChange, eventBufferSize),
		volumeCh:   make(chan VolumeChange, eventBufferSize),
		errorCh:    make(chan ErrorEvent, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.TrackChanged = s.trackCh
	s.PositionChanged = s.positionCh
	s.QueueChanged = s.queueCh
	s.ModeChanged = s.modeCh
	s.VolumeChanged = s.volumeCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// send delivers e without blocking; it is dropped if the buffer is full.
func send[E any](ch chan E, e E) {
	select {
	case ch <- e:
	default:
	}
}

// hub fans events out to every subscription.
type hub struct {
	mu     sync.RWMutex
	subs   []*Subscription
	closed bool
}

func (h *hub) subscribe() *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	sub := newSubscription()
	if h.closed {
		sub.close()
		return sub
	}
	h.subs = append(h.subs, sub)
	return sub
}

func (h *hub) each(fn func(*Subscription)) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		fn(sub)
	}
}

func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, sub := range h.subs {
		sub.close()
	}
	h.subs = nil
}

func (h *hub) state(e StateChange) {
	h.each(func(s *Subscription) { send(s.stateCh, e) })
}

func (h *hub) track(e TrackChange) {
	h.each(func(s *Subscription) { send(s.trackCh, e) })
}

func (h *hub) position(e PositionChange) {
	h.each(func(s *Subscription) { send(s.positionCh, e) })
}

func (h *hub) queue(e QueueChange) {
	h.each(func(s *Subscription) { send(s.queueCh, e) })
}

func (h *hub) mode(e ModeChange) {
	h.each(func(s *Subscription) { send(s.modeCh, e) })
}

func (h *hub) volume(e VolumeChange) {
	h.each(func(s *Subscription) { send(s.volumeCh, e) })
}

func (h *hub) failure(e ErrorEvent) {
	h.each(func(s *Subscription) { send(s.errorCh, e) })
}
