package player

import "time"

// EventKind identifies what an audio output is reporting.
type EventKind int

const (
	EventLoadedMetadata EventKind = iota // Duration is known
	EventTimeUpdate                      // Position advanced
	EventStarted                         // audio is flowing
	EventPaused                          // audio stopped flowing, track still loaded
	EventEnded                           // track played to the end
	EventError                           // load or decode failure, see Err
)

// String returns the event kind name for logging.
func (k EventKind) String() string {
	switch k {
	case EventLoadedMetadata:
		return "LoadedMetadata"
	case EventTimeUpdate:
		return "TimeUpdate"
	case EventStarted:
		return "Started"
	case EventPaused:
		return "Paused"
	case EventEnded:
		return "Ended"
	case EventError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Event is reported by an audio output for the load tagged with Generation.
// Events of one generation arrive in the order they happened.
type Event struct {
	Kind       EventKind
	Generation uint64
	Duration   time.Duration // EventLoadedMetadata
	Position   time.Duration // EventTimeUpdate
	Err        error         // EventError
}
