package catalog

import "errors"

var (
	// ErrNotFound is returned when a song, playlist, or membership does not exist.
	ErrNotFound = errors.New("not found")
	// ErrExists is returned when creating a playlist whose name is taken.
	ErrExists = errors.New("already exists")
)
