package playback

import "fmt"

// AudioOutputError is reported when the audio output fails for a track.
// Playback pauses; the queue does not move on by itself.
type AudioOutputError struct {
	TrackID string
	Source  string
	Cause   error
}

func (e *AudioOutputError) Error() string {
	return fmt.Sprintf("audio output failed for %s: %v", e.Source, e.Cause)
}

func (e *AudioOutputError) Unwrap() error {
	return e.Cause
}
