package player

import "time"

// Interface is the audio output contract used by the playback transport.
//
// Every command returns immediately. Results come back on Events: Load is
// answered by EventLoadedMetadata or EventError, Play by EventStarted, Pause
// by EventPaused. Each Load carries a generation number and a new Load
// supersedes the previous one; events always carry the generation of the load
// they belong to.
type Interface interface {
	Load(generation uint64, source string)
	Play()
	Pause()
	Seek(position time.Duration)
	SetVolume(level float64)
	Events() <-chan Event
	Close() error
}

// Verify implementations satisfy Interface at compile time.
var (
	_ Interface = (*Player)(nil)
	_ Interface = (*Mock)(nil)
)
