package playlist

import "fmt"

// RepeatMode defines how the queue behaves at track and sequence boundaries.
type RepeatMode int

const (
	RepeatNone RepeatMode = iota // default
	RepeatOne                    // loop the current track
	RepeatAll                    // loop the whole queue
)

// String returns the repeat mode name.
func (m RepeatMode) String() string {
	switch m {
	case RepeatNone:
		return "none"
	case RepeatOne:
		return "one"
	case RepeatAll:
		return "all"
	default:
		return "unknown"
	}
}

// Next returns the following mode in the cycle none -> one -> all -> none.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatNone:
		return RepeatOne
	case RepeatOne:
		return RepeatAll
	default:
		return RepeatNone
	}
}

// ParseRepeatMode converts a mode name back to a RepeatMode.
func ParseRepeatMode(s string) (RepeatMode, error) {
	switch s {
	case "", "none":
		return RepeatNone, nil
	case "one":
		return RepeatOne, nil
	case "all":
		return RepeatAll, nil
	default:
		return RepeatNone, fmt.Errorf("unknown repeat mode %q", s)
	}
}

// Step is the outcome of moving the current position with Advance or Retreat.
type Step int

const (
	StepNoOp      Step = iota // queue empty, nothing changed
	StepReplay                // repeat one: same track again from zero
	StepAdvanced              // moved forward by one
	StepRetreated             // moved back by one
	StepWrapped               // crossed a sequence boundary
	StepBoundary              // at the start without repeat all: unchanged, playback should pause
)

// String returns the step name.
func (s Step) String() string {
	switch s {
	case StepNoOp:
		return "NoOp"
	case StepReplay:
		return "Replay"
	case StepAdvanced:
		return "Advanced"
	case StepRetreated:
		return "Retreated"
	case StepWrapped:
		return "Wrapped"
	case StepBoundary:
		return "Boundary"
	default:
		return "Unknown"
	}
}

// Moved reports whether the step selected a different (or wrapped) track.
func (s Step) Moved() bool {
	return s == StepAdvanced || s == StepRetreated || s == StepWrapped
}
