// Package app is the root terminal UI model: it renders the queue and the
// player bar, and turns key presses into playback service calls.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/ui/queuepanel"
)

const (
	defaultSeekStep = 5 * time.Second
	volumeStep      = 0.05
)

// Model is the root application model.
type Model struct {
	service  playback.Service
	sub      *playback.Subscription
	snapshot playback.Snapshot

	QueuePanel queuepanel.Model

	seekStep time.Duration
	ErrorMsg string
	Width    int
	Height   int
}

// Option configures the model.
type Option func(*Model)

// WithSeekStep sets the distance of a relative seek.
func WithSeekStep(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.seekStep = d
		}
	}
}

// New creates the root model for service and subscribes to its events.
func New(service playback.Service, opts ...Option) Model {
	m := Model{
		service:    service,
		sub:        service.Subscribe(),
		QueuePanel: queuepanel.New(),
		seekStep:   defaultSeekStep,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.WatchServiceEvents()
}

// refresh re-reads the service state after a command or event.
func (m *Model) refresh() {
	m.snapshot = m.service.Snapshot()
	m.QueuePanel.SetQueue(m.snapshot.Tracks, m.snapshot.Index)
}
