package playback

// State is the transport status.
//
// Transitions:
//   - Stopped → Playing (playCurrent, optimistic)
//   - Playing → Paused  (output reported a pause, or an output error)
//   - Paused  → Playing (playCurrent/resume, or output reported start)
//   - Playing → Stopped (track ended on an empty queue, or Stop)
//   - Paused  → Stopped (Stop, or the queue became empty)
//
// Only the optimistic Playing in playCurrent happens without an output event.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}
