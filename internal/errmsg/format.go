// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Catalog operations
	OpSongAdd    Op = "add song"
	OpSongList   Op = "list songs"
	OpSongLookup Op = "look up song"

	// Playlist operations
	OpPlaylistCreate   Op = "create playlist"
	OpPlaylistAddTrack Op = "add track to playlist"
	OpPlaylistRemove   Op = "remove track from playlist"
	OpPlaylistLoad     Op = "load playlist"
	OpPlaylistList     Op = "list playlists"

	// Queue operations
	OpQueueRemove Op = "remove from queue"
	OpQueueJump   Op = "jump to track"

	// Playback operations
	OpPlaybackStart Op = "start playback"

	// File operations
	OpFileLoad Op = "load file"

	// Initialization
	OpConfigLoad Op = "load configuration"
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
