package app

import "github.com/llehouerou/cadence/internal/playback"

// ServiceEventMsg is sent for any playback service event that only needs a
// redraw.
type ServiceEventMsg struct{}

// ServiceErrorMsg wraps an error event from the playback service.
type ServiceErrorMsg playback.ErrorEvent

// ServiceClosedMsg is sent when the service subscription is closed.
type ServiceClosedMsg struct{}
