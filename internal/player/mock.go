package player

import (
	"sync"
	"time"
)

// LoadCall records one Load on the Mock.
type LoadCall struct {
	Generation uint64
	Source     string
}

// Mock is a test double for Player. It records every command and only emits
// the events a test pushes with Emit.
type Mock struct {
	mu         sync.Mutex
	state      State
	generation uint64
	loads      []LoadCall
	plays      int
	pauses     int
	seekCalls  []time.Duration
	volumes    []float64
	events     chan Event
	closed     bool
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{
		state:  Stopped,
		events: make(chan Event, 64),
	}
}

func (m *Mock) Load(generation uint64, source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads = append(m.loads, LoadCall{Generation: generation, Source: source})
	m.generation = generation
	m.state = Stopped
}

func (m *Mock) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plays++
	if len(m.loads) > 0 {
		m.state = Playing
	}
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauses++
	if m.state.CanPause() {
		m.state = Paused
	}
}

func (m *Mock) Seek(position time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, position)
}

func (m *Mock) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volumes = append(m.volumes, level)
}

func (m *Mock) Events() <-chan Event {
	return m.events
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.events)
	}
	return nil
}

// Test helpers

// Emit queues an event as if the output reported it.
func (m *Mock) Emit(e Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.events <- e
}

// EmitCurrent queues an event tagged with the generation of the last Load.
func (m *Mock) EmitCurrent(kind EventKind) {
	m.Emit(Event{Kind: kind, Generation: m.Generation()})
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Generation returns the generation of the last Load, or 0 if none.
func (m *Mock) Generation() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generation
}

func (m *Mock) LoadCalls() []LoadCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]LoadCall(nil), m.loads...)
}

func (m *Mock) PlayCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.plays
}

func (m *Mock) PauseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauses
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

func (m *Mock) VolumeCalls() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.volumes...)
}
